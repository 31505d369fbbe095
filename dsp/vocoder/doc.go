// Package vocoder time-stretches mono signals with a phase vocoder.
//
// The signal is cut into overlapping frames of WindowLength samples read
// AnalysisHop apart, each frame is transformed, its phases are advanced to
// match a synthesis hop of round(factor*AnalysisHop), and the resynthesized
// frames are overlap-added. Identity phase locking keeps the bins around
// each spectral peak coherent, and frames whose energy jumps sharply restart
// the phase trajectory so onsets are not smeared.
//
// The stretched buffer is peak-normalized and then trimmed or zero-padded
// to round(len*factor) samples.
package vocoder
