package testutil

import (
	"math"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DominantFrequency returns the frequency in Hz of the strongest bin of a
// Hann-windowed FFT over the largest power-of-two prefix of signal.
// Parabolic interpolation around the peak refines the estimate.
func DominantFrequency(t *testing.T, signal []float64, sampleRate float64) float64 {
	t.Helper()

	n := 1
	for n*2 <= len(signal) {
		n *= 2
	}

	if n < 4 {
		t.Fatalf("signal too short for spectral analysis: %d", len(signal))
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		t.Fatalf("failed to create FFT plan: %v", err)
	}

	in := make([]complex128, n)
	out := make([]complex128, n)

	for i := range in {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
		in[i] = complex(signal[i]*w, 0)
	}

	if err := plan.Forward(out, in); err != nil {
		t.Fatalf("forward FFT failed: %v", err)
	}

	mag := make([]float64, n/2+1)
	for k := range mag {
		re := real(out[k])
		im := imag(out[k])
		mag[k] = math.Sqrt(re*re + im*im)
	}

	maxBin := 1
	for k := 1; k < len(mag); k++ {
		if mag[k] > mag[maxBin] {
			maxBin = k
		}
	}

	offset := 0.0
	if maxBin > 0 && maxBin < len(mag)-1 {
		a, b, c := mag[maxBin-1], mag[maxBin], mag[maxBin+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	return sampleRate * (float64(maxBin) + offset) / float64(n)
}
