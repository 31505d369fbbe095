// Package resample provides linear-interpolation length conversion.
//
// The phase vocoder turns time stretching into pitch shifting by
// stretching with stretch*pitch and resampling the result back to the
// stretch-only duration with [Linear]. No anti-aliasing filter is applied.
//
// Common workflows:
//   - Linear(input, newLen)
//   - Ratio(input, ratio)
package resample
