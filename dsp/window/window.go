package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
)

// Cosine-sum coefficients a0, a1, ... of w(x) = Σ a_k cos(2πkx).
var cosineCoeffs = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
}

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeHamming:
		return "Hamming"
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic   bool
	squareRoot bool
}

// WithPeriodic generates the periodic form, w[i] = f(i/N), used for FFT
// framing. The default is the symmetric form f(i/(N-1)).
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithSquareRoot takes the square root of every coefficient, so that
// analysis and synthesis with the same window apply the base window once.
func WithSquareRoot() Option {
	return func(c *config) {
		c.squareRoot = true
	}
}

// Generate returns length coefficients of window t. Unknown types give a
// rectangular window; a non-positive length gives nil.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	coeffs, ok := cosineCoeffs[t]
	if !ok {
		coeffs = cosineCoeffs[TypeRectangular]
	}

	den := float64(length - 1)
	if cfg.periodic || length == 1 {
		den = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / den

		v := 0.0
		for k, a := range coeffs {
			v += a * math.Cos(float64(k)*phase)
		}

		if cfg.squareRoot {
			// Cosine sums can dip a hair below zero at the edges.
			v = math.Sqrt(math.Max(v, 0))
		}

		out[i] = v
	}

	return out
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	return Generate(TypeHann, size, opts...), nil
}

// SqrtHann returns the periodic square-root Hann window used for
// phase-vocoder analysis and resynthesis.
func SqrtHann(size int) ([]float64, error) {
	return Hann(size, WithPeriodic(), WithSquareRoot())
}

// OverlapAddGain returns, for each of the hop positions in one period, the
// sum of squared coefficients of all frames overlapping that position.
// A flat result means analysis and synthesis with coeffs at this hop
// reconstruct the input up to a constant gain.
func OverlapAddGain(coeffs []float64, hop int) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, errEmptyCoeffs
	}

	if hop <= 0 || hop > len(coeffs) {
		return nil, errInvalidHop
	}

	gain := make([]float64, hop)
	for i, c := range coeffs {
		gain[i%hop] += c * c
	}

	return gain, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
