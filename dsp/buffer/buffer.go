package buffer

import "github.com/cwbudde/algo-vecmath"

// Buffer accumulates overlapping synthesis frames. The zero value is an
// empty buffer ready for use.
type Buffer struct {
	samples []float64
}

// New returns a silent Buffer of length samples. Negative lengths give an
// empty buffer.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float64, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// AddAt sums block into the buffer starting at offset. A block that runs
// past the end extends the buffer with silence first; the part of a block
// before sample 0 is dropped.
func (b *Buffer) AddAt(offset int, block []float64) {
	if offset < 0 {
		if -offset >= len(block) {
			return
		}

		block = block[-offset:]
		offset = 0
	}

	end := offset + len(block)
	if end > len(b.samples) {
		b.samples = append(b.samples, make([]float64, end-len(b.samples))...)
	}

	vecmath.AddBlockInPlace(b.samples[offset:end], block)
}

// PeakAbs returns the largest absolute sample value, 0 when empty.
func (b *Buffer) PeakAbs() float64 {
	if len(b.samples) == 0 {
		return 0
	}

	return vecmath.MaxAbs(b.samples)
}

// Normalize scales the buffer to a peak absolute value of 1 and returns
// the peak it had before. Silent buffers are left untouched.
func (b *Buffer) Normalize() float64 {
	peak := b.PeakAbs()
	if peak == 0 {
		return 0
	}

	vecmath.ScaleBlockInPlace(b.samples, 1/peak)

	return peak
}

// Fit returns a copy cut or zero-padded to exactly n samples.
func (b *Buffer) Fit(n int) []float64 {
	out := make([]float64, max(n, 0))
	copy(out, b.samples)

	return out
}
