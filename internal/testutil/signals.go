package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns amplitude·sin(2π·freqHz·i/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return Onset(freqHz, sampleRate, amplitude, 0, length)
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude)
// that depends only on seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5eed))

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Onset returns silence for the first onset samples followed by a sine
// starting at phase zero, the shape of a percussive attack.
func Onset(freqHz, sampleRate, amplitude float64, onset, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := max(onset, 0); i < length; i++ {
		out[i] = amplitude * math.Sin(step*float64(i-max(onset, 0)))
	}

	return out
}
