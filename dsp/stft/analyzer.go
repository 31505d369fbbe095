package stft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/spectrum"
	"github.com/cwbudde/algo-pvoc/dsp/window"
)

const minFrameSize = 4

// ErrInvalidSize indicates a frame or spectrum of the wrong length.
var ErrInvalidSize = errors.New("stft: invalid size")

// Spectrum is the non-negative-frequency half of a real signal's DFT,
// bins 0..size/2.
type Spectrum struct {
	Magnitude []float64
	Phase     []float64
}

// Bins returns the number of bins.
func (s Spectrum) Bins() int { return len(s.Magnitude) }

// Analyzer computes windowed STFT frames.
type Analyzer struct {
	size   int
	window []float64
	plan   *algofft.Plan[complex128]

	work []complex128
	re   []float64
	im   []float64
}

// NewAnalyzer creates an analyzer for frames of len(window) samples.
// The window length must be a power of two.
func NewAnalyzer(window []float64) (*Analyzer, error) {
	size := len(window)

	err := validateSize(size)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	bins := size/2 + 1

	return &Analyzer{
		size:   size,
		window: append([]float64(nil), window...),
		plan:   plan,
		work:   make([]complex128, size),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
	}, nil
}

// Size returns the frame length in samples.
func (a *Analyzer) Size() int { return a.size }

// Bins returns size/2 + 1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// Frame copies size samples of src starting at offset into dst and applies
// the analysis window. Samples past the end of src read as zero. dst is
// reused when it has enough capacity.
func (a *Analyzer) Frame(src []float64, offset int, dst []float64) []float64 {
	dst = core.EnsureLen(dst, a.size)
	core.Zero(dst)

	if offset < len(src) && offset >= 0 {
		copy(dst, src[offset:])
	}

	// Lengths always match here.
	_ = window.ApplyCoefficientsInPlace(dst, a.window)

	return dst
}

// Analyze transforms an already windowed block into magnitude and phase.
// The returned slices are freshly allocated and owned by the caller.
func (a *Analyzer) Analyze(block []float64) (Spectrum, error) {
	if len(block) != a.size {
		return Spectrum{}, fmt.Errorf("%w: block has %d samples, want %d", ErrInvalidSize, len(block), a.size)
	}

	for i, v := range block {
		a.work[i] = complex(v, 0)
	}

	err := a.plan.Forward(a.work, a.work)
	if err != nil {
		return Spectrum{}, fmt.Errorf("stft: forward FFT failed: %w", err)
	}

	bins := a.Bins()
	spec := Spectrum{
		Magnitude: make([]float64, bins),
		Phase:     make([]float64, bins),
	}

	spectrum.Split(a.work, a.re, a.im)
	spectrum.ToPolar(spec.Magnitude, spec.Phase, a.re, a.im)

	return spec, nil
}

func validateSize(size int) error {
	if size < minFrameSize || size&(size-1) != 0 {
		return fmt.Errorf("%w: frame size must be a power of two >= %d: %d", ErrInvalidSize, minFrameSize, size)
	}

	return nil
}
