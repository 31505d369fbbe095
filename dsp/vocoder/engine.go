package vocoder

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pvoc/dsp/buffer"
	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/phase"
	"github.com/cwbudde/algo-pvoc/dsp/stft"
	"github.com/cwbudde/algo-pvoc/dsp/transient"
	"github.com/cwbudde/algo-pvoc/dsp/window"
)

var (
	// ErrInvalidConfig is returned by NewEngine for out-of-range options.
	ErrInvalidConfig = errors.New("vocoder: invalid configuration")
	// ErrInvalidFactor indicates a stretch factor that is not finite and
	// positive or that rounds the synthesis hop to zero.
	ErrInvalidFactor = errors.New("vocoder: invalid stretch factor")
	// ErrInsufficientLength indicates a segment shorter than one window.
	ErrInsufficientLength = errors.New("vocoder: segment shorter than window")
)

// Engine holds immutable vocoder settings. It is safe for concurrent use:
// every call builds its own transforms, phase state and output buffer.
type Engine struct {
	cfg    config
	window []float64
}

// Result is a rendered stretch before trimming.
type Result struct {
	// Buffer holds the normalized overlap-add output, frames*hop_s +
	// window samples long.
	Buffer *buffer.Buffer
	// Frames is the number of analysis frames processed.
	Frames int
	// Transients counts frames that restarted the phase trajectory,
	// excluding frame 0.
	Transients int
	// Peak is the absolute peak before normalization.
	Peak float64
}

// NewEngine creates an engine with practical defaults and optional
// overrides.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.hopA == 0 {
		cfg.hopA = cfg.windowLen / 4
	}

	if cfg.hopA >= cfg.windowLen {
		return nil, fmt.Errorf("%w: analysis hop %d must be below window length %d",
			ErrInvalidConfig, cfg.hopA, cfg.windowLen)
	}

	win, err := window.SqrtHann(cfg.windowLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Engine{cfg: cfg, window: win}, nil
}

// WindowLength returns the frame length in samples.
func (e *Engine) WindowLength() int { return e.cfg.windowLen }

// AnalysisHop returns the analysis hop in samples.
func (e *Engine) AnalysisHop() int { return e.cfg.hopA }

// SynthesisHop returns round(factor*AnalysisHop()).
func (e *Engine) SynthesisHop(factor float64) int {
	return core.RoundLength(e.cfg.hopA, factor)
}

// PhaseLock reports whether identity phase locking is enabled.
func (e *Engine) PhaseLock() bool { return e.cfg.phaseLock }

// TargetLength returns the output length of stretching n samples by factor.
func TargetLength(n int, factor float64) int {
	return core.RoundLength(n, factor)
}

// Stretch time-stretches segment by factor without changing its pitch.
// The result has exactly TargetLength(len(segment), factor) samples and a
// peak absolute value of at most 1.
func (e *Engine) Stretch(segment []float64, factor float64) ([]float64, error) {
	res, err := e.Render(segment, factor)
	if err != nil {
		return nil, err
	}

	return res.Buffer.Fit(TargetLength(len(segment), factor)), nil
}

// Render runs the vocoder and returns the normalized overlap-add buffer
// before it is fit to the target length.
func (e *Engine) Render(segment []float64, factor float64) (Result, error) {
	if !core.IsFinitePositive(factor) {
		return Result{}, fmt.Errorf("%w: %f", ErrInvalidFactor, factor)
	}

	n := e.cfg.windowLen
	hopA := e.cfg.hopA

	hopS := e.SynthesisHop(factor)
	if hopS < 1 {
		return Result{}, fmt.Errorf("%w: %f gives a synthesis hop of %d", ErrInvalidFactor, factor, hopS)
	}

	if len(segment) < n {
		return Result{}, fmt.Errorf("%w: %d samples, window is %d", ErrInsufficientLength, len(segment), n)
	}

	frames := (len(segment)-n)/hopA + 1

	analyzer, err := stft.NewAnalyzer(e.window)
	if err != nil {
		return Result{}, err
	}

	synth, err := stft.NewSynthesizer(e.window)
	if err != nil {
		return Result{}, err
	}

	acc := phase.NewAccumulator(n, hopA, hopS, e.locker())
	detector := transient.New(e.cfg.transientDB)
	state := phase.NewState(analyzer.Bins())
	out := buffer.New(frames*hopS + n)

	res := Result{Buffer: out, Frames: frames}

	var block, frame []float64

	for f := range frames {
		block = analyzer.Frame(segment, f*hopA, block)

		spec, err := analyzer.Analyze(block)
		if err != nil {
			return Result{}, err
		}

		isTransient, energy := detector.Detect(block, state.EnergyDB)
		state.EnergyDB = energy

		if f == 0 || isTransient {
			if f > 0 {
				res.Transients++
			}
			state = acc.Reset(state, spec.Phase)
		} else {
			state = acc.Advance(state, spec.Magnitude, spec.Phase)
		}

		frame, err = synth.Synthesize(spec.Magnitude, state.Synthesis, frame)
		if err != nil {
			return Result{}, err
		}

		synth.OverlapAdd(out, f*hopS, frame)
	}

	res.Peak = out.Normalize()

	return res, nil
}

func (e *Engine) locker() phase.Locker {
	if !e.cfg.phaseLock {
		return nil
	}

	return phase.PeakLocker(e.cfg.peakRel, e.cfg.neighbours)
}
