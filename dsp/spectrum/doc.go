// Package spectrum converts between complex DFT bins and the polar form a
// phase vocoder works in, and measures single tones with the Goertzel
// algorithm.
//
// The package does not implement an FFT. It operates on bins produced by
// an external FFT backend.
package spectrum
