package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-pvoc/dsp/buffer"
	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/spectrum"
	"github.com/cwbudde/algo-pvoc/dsp/window"
)

// Synthesizer rebuilds windowed time blocks from magnitude and phase.
type Synthesizer struct {
	size   int
	window []float64
	plan   *algofft.Plan[complex128]

	work      []complex128
	timeFrame []complex128
}

// NewSynthesizer creates a synthesizer for frames of len(window) samples.
func NewSynthesizer(window []float64) (*Synthesizer, error) {
	size := len(window)

	err := validateSize(size)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	return &Synthesizer{
		size:      size,
		window:    append([]float64(nil), window...),
		plan:      plan,
		work:      make([]complex128, size),
		timeFrame: make([]complex128, size),
	}, nil
}

// Size returns the frame length in samples.
func (s *Synthesizer) Size() int { return s.size }

// Synthesize builds mag·e^{i·phase} over bins 0..size/2, inverse transforms
// it as the spectrum of a real signal and applies the synthesis window.
// The result is written to dst, which is reused when large enough.
func (s *Synthesizer) Synthesize(mag, phase, dst []float64) ([]float64, error) {
	bins := s.size/2 + 1
	if len(mag) != bins || len(phase) != bins {
		return nil, fmt.Errorf("%w: got %d magnitudes and %d phases, want %d",
			ErrInvalidSize, len(mag), len(phase), bins)
	}

	spectrum.FromPolar(s.work, mag, phase)
	spectrum.MirrorHermitian(s.work)

	err := s.plan.Inverse(s.timeFrame, s.work)
	if err != nil {
		return nil, fmt.Errorf("stft: inverse FFT failed: %w", err)
	}

	dst = core.EnsureLen(dst, s.size)
	for i := range dst {
		dst[i] = real(s.timeFrame[i])
	}

	// Lengths always match here.
	_ = window.ApplyCoefficientsInPlace(dst, s.window)

	return dst, nil
}

// OverlapAdd sums block into out at offset.
func (s *Synthesizer) OverlapAdd(out *buffer.Buffer, offset int, block []float64) {
	out.AddAt(offset, block)
}
