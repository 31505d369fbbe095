package resample

import (
	"math"

	"github.com/cwbudde/algo-pvoc/dsp/interp"
)

// Linear resamples input to exactly newLen samples.
//
// Output sample i reads input at position i*(len(input)-1)/(newLen-1), so the
// first and last input samples map onto the first and last output samples.
// Each output is a linear interpolation between the two neighbouring input
// samples. A non-positive newLen or an empty input is degenerate and yields
// an empty slice.
func Linear(input []float64, newLen int) []float64 {
	if newLen <= 0 || len(input) == 0 {
		return []float64{}
	}

	out := make([]float64, newLen)
	if newLen == 1 {
		out[0] = input[0]
		return out
	}

	span := float64(len(input) - 1)
	den := float64(newLen - 1)

	for i := range out {
		out[i] = interp.LinearAt(input, float64(i)*span/den)
	}

	return out
}

// Ratio resamples input to round(len(input)*ratio) samples with [Linear].
func Ratio(input []float64, ratio float64) []float64 {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return []float64{}
	}

	return Linear(input, int(math.Round(float64(len(input))*ratio)))
}
