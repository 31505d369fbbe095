// Package stft implements the short-time Fourier framing used by the phase
// vocoder.
//
// An [Analyzer] cuts a windowed frame out of a signal and returns its
// non-negative-frequency half as magnitudes and phases. A [Synthesizer]
// turns magnitudes and (modified) phases back into a windowed time block
// ready for overlap-add. Both own their FFT plan and scratch memory, so a
// pair must not be shared between goroutines; create one pair per run.
package stft
