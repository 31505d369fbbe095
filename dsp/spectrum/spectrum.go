package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Split copies the real and imaginary parts of the first len(re) bins.
func Split(bins []complex128, re, im []float64) {
	for k := range re {
		re[k] = real(bins[k])
		im[k] = imag(bins[k])
	}
}

// ToPolar computes |X[k]| and arg(X[k]) from separate real and imaginary
// parts. Phases lie in (-π, π]. All four slices must have the same length.
func ToPolar(mag, phase, re, im []float64) {
	vecmath.Magnitude(mag, re, im)

	for k := range phase {
		p := math.Atan2(im[k], re[k])
		// Atan2 yields -π for a negative real part with imaginary -0.
		if p == -math.Pi {
			p = math.Pi
		}

		phase[k] = p
	}
}

// FromPolar writes mag[k]·e^{i·phase[k]} into dst[k] for every bin of mag.
func FromPolar(dst []complex128, mag, phase []float64) {
	for k, m := range mag {
		sin, cos := math.Sincos(phase[k])
		dst[k] = complex(m*cos, m*sin)
	}
}

// MirrorHermitian completes a full-length spectrum of a real signal from
// its bins 0..n/2: the DC and Nyquist bins lose their imaginary part and
// bins above n/2 become conjugates of their mirror images.
func MirrorHermitian(full []complex128) {
	n := len(full)
	if n == 0 {
		return
	}

	half := n / 2
	full[0] = complex(real(full[0]), 0)
	if n%2 == 0 {
		full[half] = complex(real(full[half]), 0)
	}

	for k := 1; k < (n+1)/2; k++ {
		v := full[k]
		full[n-k] = complex(real(v), -imag(v))
	}
}

// Power computes |X[k]|^2 from separate real and imaginary parts into dst.
func Power(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}
