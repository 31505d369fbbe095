// Package time computes level statistics of rendered signals.
package time

import "math"

// Stats holds time-domain level statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor_dB float64 // peak / RMS
	ZeroCrossings  int
	Clipped        int // samples with |x| >= 1
}

func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics in a single pass. An empty signal
// reports -Inf for the dB fields.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	var (
		sum, sumSq    float64
		peak          float64
		peakPos       int
		zeroCrossings int
		clipped       int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		a := math.Abs(x)
		if a > peak {
			peak = a
			peakPos = i
		}

		if a >= 1 {
			clipped++
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	crest := 0.0
	if rms > 0 {
		crest = 20 * math.Log10(peak/rms)
	}

	return Stats{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		PeakPos:        peakPos,
		Peak_dB:        ampTodB(peak),
		CrestFactor_dB: crest,
		ZeroCrossings:  zeroCrossings,
		Clipped:        clipped,
	}
}
