// Package interp provides the interpolation primitives used by the linear
// resampler.
//
//   - [Linear2]:  2-point linear interpolation
//   - [LinearAt]: linear read at a fractional index with edge clamping
package interp
