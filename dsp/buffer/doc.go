// Package buffer provides the overlap-add accumulator used by the phase
// vocoder. Frames are summed in with AddAt, the result is peak-normalized
// with Normalize and cut to the target duration with Fit.
package buffer
