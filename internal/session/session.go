// Package session turns loop and factor settings into rendered audio for
// a playback looper, recomputing only when it has to.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pvoc/internal/playback"
)

const (
	// MinFactor and MaxFactor bound the stretch and pitch settings.
	MinFactor = 0.5
	MaxFactor = 1.5

	defaultBlockSize      = 1024
	defaultContextSeconds = 3.0
)

var (
	// ErrFactorOutOfRange indicates a stretch or pitch outside
	// [MinFactor, MaxFactor].
	ErrFactorOutOfRange = errors.New("session: factor out of range")
	// ErrInvalidLoop indicates loop fractions outside [0, 1] or a loop
	// that is not longer than one output block.
	ErrInvalidLoop = errors.New("session: invalid loop")
	// ErrSuperseded indicates a render dropped because a later Apply
	// changed the state while it ran.
	ErrSuperseded = errors.New("session: render superseded")
)

// Processor renders stretched and pitch-shifted source ranges.
type Processor interface {
	Process(start, end int, stretch, pitchFactor float64) ([]float64, error)
	Len() int
	SampleRate() float64
}

// Settings select a loop as fractions of the source file plus the time
// and pitch factors to render it with.
type Settings struct {
	Start   float64
	End     float64
	Stretch float64
	Pitch   float64
}

// DefaultSettings loop over the whole file without processing.
func DefaultSettings() Settings {
	return Settings{Start: 0, End: 1, Stretch: 1, Pitch: 1}
}

// Config tunes the controller.
type Config struct {
	// BlockSize is the output device block length. Loops must be longer.
	BlockSize int
	// ContextSeconds of source audio are rendered on each side of the
	// loop so small loop moves do not need a new render.
	ContextSeconds float64
	// Logger receives decisions. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the device block size and context used by the
// interactive player.
func DefaultConfig() Config {
	return Config{
		BlockSize:      defaultBlockSize,
		ContextSeconds: defaultContextSeconds,
	}
}

// Outcome describes what Apply did.
type Outcome int

const (
	// OutcomeRejected means the settings were invalid and nothing changed.
	OutcomeRejected Outcome = iota
	// OutcomeLoopMoved means the loop moved inside the rendered buffer.
	OutcomeLoopMoved
	// OutcomeRendered means a new buffer was rendered and published.
	OutcomeRendered
	// OutcomeDiscarded means a render finished after its context was
	// cancelled and was dropped.
	OutcomeDiscarded
	// OutcomeUnchanged means the settings matched the current state.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeLoopMoved:
		return "loop-moved"
	case OutcomeRendered:
		return "rendered"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Controller owns the mapping between source positions and the rendered
// buffer held by a looper.
type Controller struct {
	proc   Processor
	looper *playback.Looper
	cfg    Config
	log    logrus.FieldLogger

	mu       sync.Mutex
	rendered bool
	settings Settings
	// Source range [startIndex, endIndex) the current buffer was rendered
	// from and the buffer length.
	startIndex int
	endIndex   int
	outLen     int
	loopStart  int
	loopEnd    int
	// gen counts state changes so a render can tell whether it is stale.
	gen uint64
}

// NewController binds proc to looper. Zero or negative config fields take
// their defaults.
func NewController(proc Processor, looper *playback.Looper, cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = def.BlockSize
	}
	if cfg.ContextSeconds <= 0 || math.IsNaN(cfg.ContextSeconds) {
		cfg.ContextSeconds = def.ContextSeconds
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Controller{
		proc:     proc,
		looper:   looper,
		cfg:      cfg,
		log:      cfg.Logger,
		settings: DefaultSettings(),
	}
}

// Apply brings the looper in line with s. Moving the loop inside the
// already rendered range only re-points the looper. Changing a factor, or
// moving the loop outside the rendered range, renders the loop plus
// ContextSeconds on each side on the calling goroutine. The controller is
// not locked while rendering, so Current and Progress stay responsive. If
// ctx is done when the render finishes, or a later Apply has started a
// render of its own, the result is dropped.
func (c *Controller) Apply(ctx context.Context, s Settings) (Outcome, error) {
	if err := validateFactor("stretch", s.Stretch); err != nil {
		return OutcomeRejected, err
	}
	if err := validateFactor("pitch", s.Pitch); err != nil {
		return OutcomeRejected, err
	}
	if err := validateLoop(s.Start, s.End); err != nil {
		return OutcomeRejected, err
	}

	c.mu.Lock()

	if c.rendered && s == c.settings {
		c.mu.Unlock()
		return OutcomeUnchanged, nil
	}

	fileLen := c.proc.Len()
	start := int(s.Start * float64(fileLen))
	end := min(int(s.End*float64(fileLen)), fileLen)

	fields := logrus.Fields{
		"function": "Apply",
		"start":    start,
		"end":      end,
		"stretch":  s.Stretch,
		"pitch":    s.Pitch,
	}

	paramChange := !c.rendered || s.Stretch != c.settings.Stretch || s.Pitch != c.settings.Pitch

	if !paramChange && c.startIndex <= start && start < end && end <= c.endIndex {
		if ps, pe := c.toOutput(start, end, s.Stretch); pe-ps > c.cfg.BlockSize {
			c.looper.SetLoop(ps, pe)
			c.loopStart, c.loopEnd = ps, pe
			c.settings = s
			c.gen++
			c.mu.Unlock()

			c.log.WithFields(fields).Debug("Loop moved inside rendered buffer")

			return OutcomeLoopMoved, nil
		}
	}

	loopLen := int(math.Round(float64(end-start) * s.Stretch))
	if start >= end || loopLen <= c.cfg.BlockSize {
		c.mu.Unlock()
		c.log.WithFields(fields).Warn("Loop rejected")

		return OutcomeRejected, fmt.Errorf("%w: [%d, %d) spans %d output samples", ErrInvalidLoop, start, end, loopLen)
	}

	if err := ctx.Err(); err != nil {
		c.mu.Unlock()
		return OutcomeDiscarded, err
	}

	c.gen++
	gen := c.gen
	c.mu.Unlock()

	pad := int(c.cfg.ContextSeconds * c.proc.SampleRate())
	renderStart := max(start-pad, 0)
	renderEnd := min(end+pad, fileLen-1)

	c.log.WithFields(fields).WithFields(logrus.Fields{
		"render_start": renderStart,
		"render_end":   renderEnd,
	}).Info("Rendering loop")

	out, err := c.proc.Process(renderStart, renderEnd, s.Stretch, s.Pitch)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Error("Render failed")
		return OutcomeRejected, fmt.Errorf("session: render: %w", err)
	}

	if err := ctx.Err(); err != nil {
		c.log.WithFields(fields).Info("Render discarded after cancellation")
		return OutcomeDiscarded, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.log.WithFields(fields).Info("Render discarded, superseded by a newer apply")
		return OutcomeDiscarded, ErrSuperseded
	}

	c.startIndex, c.endIndex = renderStart, renderEnd
	c.outLen = len(out)

	ps, pe := c.toOutput(start, end, s.Stretch)
	if pe <= ps {
		ps, pe = 0, c.outLen
	}

	c.looper.Swap(out, ps, pe)
	c.loopStart, c.loopEnd = ps, pe
	c.settings = s
	c.rendered = true

	c.log.WithFields(fields).WithField("samples", len(out)).Debug("Render published")

	return OutcomeRendered, nil
}

// Current returns the settings of the loop that is actually playing,
// derived from the rendered buffer. Use it to restore controls after a
// rejected Apply.
func (c *Controller) Current() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rendered {
		return c.settings
	}

	s := c.settings
	s.Start = c.fraction(c.loopStart)
	s.End = c.fraction(c.loopEnd)

	return s
}

// Progress returns the playback position as a fraction of the source.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rendered {
		return 0
	}

	return c.looper.Progress(c.startIndex, c.settings.Stretch, c.proc.Len())
}

// Rewind moves playback back to the loop start.
func (c *Controller) Rewind() {
	c.looper.Rewind()
}

// Timecode formats a fraction of the source as MM:SS:mmm.
func (c *Controller) Timecode(fraction float64) string {
	return FormatTimecode(fraction * float64(c.proc.Len()) / c.proc.SampleRate())
}

// FormatTimecode formats seconds as MM:SS:mmm.
func FormatTimecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	ms := int(math.Mod(seconds*1000, 1000))
	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))

	return fmt.Sprintf("%02d:%02d:%03d", minutes, secs, ms)
}

// toOutput maps source samples [start, end) onto the rendered buffer,
// clamped to its bounds.
func (c *Controller) toOutput(start, end int, stretch float64) (int, int) {
	ps := int(math.Round(float64(start-c.startIndex) * stretch))
	pe := int(math.Round(float64(end-c.startIndex) * stretch))

	return max(ps, 0), min(pe, c.outLen)
}

func (c *Controller) fraction(outIndex int) float64 {
	fileLen := c.proc.Len()
	if fileLen == 0 {
		return 0
	}

	return (float64(outIndex)/c.settings.Stretch + float64(c.startIndex)) / float64(fileLen)
}

func validateLoop(start, end float64) error {
	if !(start >= 0 && start <= 1) || !(end >= 0 && end <= 1) {
		return fmt.Errorf("%w: start=%f end=%f, want fractions in [0, 1]", ErrInvalidLoop, start, end)
	}

	return nil
}

func validateFactor(name string, v float64) error {
	if v < MinFactor || v > MaxFactor || math.IsNaN(v) {
		return fmt.Errorf("%w: %s=%f, want [%g, %g]", ErrFactorOutOfRange, name, v, MinFactor, MaxFactor)
	}

	return nil
}
