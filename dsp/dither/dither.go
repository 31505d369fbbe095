// Package dither quantizes normalized samples to integer PCM, optionally
// adding dither noise and first-order error feedback before rounding.
package dither

import "fmt"

// Type selects the probability distribution used for dither noise.
type Type int

const (
	// None rounds without added noise.
	None Type = iota
	// Rectangular uses a uniform PDF one LSB wide.
	Rectangular
	// Triangular uses a triangular PDF two LSB wide (TPDF).
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rectangular", "triangular"}

// String returns the name of the dither type.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType returns the Type named s ("none", "rectangular"/"rpdf" or
// "triangular"/"tpdf").
func ParseType(s string) (Type, error) {
	switch s {
	case "none", "off":
		return None, nil
	case "rectangular", "rpdf":
		return Rectangular, nil
	case "triangular", "tpdf":
		return Triangular, nil
	}

	return None, fmt.Errorf("dither: unknown dither type %q", s)
}
