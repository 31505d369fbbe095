package core

// EnsureLen returns buf resliced to n samples, allocating only when its
// capacity is too small. Samples beyond the old length are not cleared.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) < n {
		return make([]float64, n)
	}

	return buf[:n]
}

// Zero clears buf.
func Zero(buf []float64) {
	clear(buf)
}
