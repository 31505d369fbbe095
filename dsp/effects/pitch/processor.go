package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/resample"
	"github.com/cwbudde/algo-pvoc/dsp/vocoder"
)

var (
	// ErrInvalidRange indicates a sample range outside the source.
	ErrInvalidRange = errors.New("pitch: invalid index range")
	// ErrInvalidFactor indicates a stretch or pitch factor that is not
	// finite and positive.
	ErrInvalidFactor = errors.New("pitch: invalid factor")
)

// Processor renders stretched and pitch-shifted ranges of a source signal.
// It is safe for concurrent use.
type Processor struct {
	seg    core.Segment
	engine *vocoder.Engine
}

// NewProcessor creates a processor over seg. Options configure the
// underlying vocoder engine.
func NewProcessor(seg core.Segment, opts ...vocoder.Option) (*Processor, error) {
	if seg.SampleRate() <= 0 {
		return nil, fmt.Errorf("pitch: %w", core.ErrInvalidSampleRate)
	}

	engine, err := vocoder.NewEngine(opts...)
	if err != nil {
		return nil, err
	}

	return &Processor{seg: seg, engine: engine}, nil
}

// SampleRate returns the source sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.seg.SampleRate() }

// Len returns the number of source samples.
func (p *Processor) Len() int { return p.seg.Len() }

// Duration returns the source duration in seconds.
func (p *Processor) Duration() float64 { return p.seg.Duration() }

// Engine returns the vocoder engine used for stretching.
func (p *Processor) Engine() *vocoder.Engine { return p.engine }

// Process renders samples [start, end) stretched in time by stretch and
// shifted in pitch by pitchFactor. The result has round((end-start)*stretch)
// samples. With both factors equal to 1 it is an exact copy of the range;
// otherwise it is peak-normalized.
//
// end must be strictly below Len().
func (p *Processor) Process(start, end int, stretch, pitchFactor float64) ([]float64, error) {
	if start < 0 || start >= end || start >= p.seg.Len() || end >= p.seg.Len() {
		return nil, fmt.Errorf("%w: [%d, %d) of %d samples", ErrInvalidRange, start, end, p.seg.Len())
	}

	if !core.IsFinitePositive(stretch) || !core.IsFinitePositive(pitchFactor) {
		return nil, fmt.Errorf("%w: stretch=%f pitch=%f", ErrInvalidFactor, stretch, pitchFactor)
	}

	segment := p.seg.View(start, end)

	switch {
	case stretch == 1 && pitchFactor == 1:
		return p.seg.Slice(start, end), nil
	case pitchFactor == 1:
		return p.engine.Stretch(segment, stretch)
	}

	stretched, err := p.engine.Stretch(segment, stretch*pitchFactor)
	if err != nil {
		return nil, err
	}

	return resample.Linear(stretched, core.RoundLength(len(segment), stretch)), nil
}

// RatioFromSemitones converts a shift in semitones to a pitch factor.
func RatioFromSemitones(semitones float64) float64 {
	return math.Pow(2, semitones/12.0)
}

// Semitones converts a pitch factor to semitones.
func Semitones(ratio float64) float64 {
	return 12.0 * math.Log2(ratio)
}
