// Package window generates the tapering windows used for STFT framing.
//
// The phase vocoder frames with a periodic square-root Hann window (see
// [SqrtHann]) on both analysis and synthesis, so the effective
// overlap-add window is Hann. [OverlapAddGain] checks the constant-overlap
// property for a given hop.
package window
