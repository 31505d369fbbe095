package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT term over all samples processed since the
// last Reset. It is used to measure how much of a signal sits at one
// frequency without computing a full transform.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock feeds input into the analyzer.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff

	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X|^2 for the processed samples.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X| for the processed samples.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Amplitude estimates the peak amplitude of a sinusoid at the analyzer
// frequency, 2|X|/N.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	return 2 * g.Magnitude() / float64(g.n)
}

// Frequency returns the target frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude estimates the amplitude of the component of input at
// frequency in one call.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Amplitude(), nil
}
