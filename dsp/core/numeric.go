package core

import "math"

// Clamp limits value to [lo, hi]. The bounds may be given in either order.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Max(lo, math.Min(hi, value))
}

// IsFinitePositive reports whether v is a positive, finite number.
// Stretch and pitch factors, sample rates and durations must pass it.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// RoundLength returns round(n*factor), the sample count of n samples
// scaled by factor. Halves round away from zero.
func RoundLength(n int, factor float64) int {
	return int(math.Round(float64(n) * factor))
}

// LinearPowerToDB converts a power ratio to dB (10*log10). Zero maps to
// -Inf and negative values to NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0 || math.IsNaN(power):
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
