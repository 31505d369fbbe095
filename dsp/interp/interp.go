package interp

// Linear2 computes 2-point linear interpolation between x0 (t = 0) and
// x1 (t = 1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// LinearAt reads src at fractional position pos, interpolating between
// floor(pos) and the following sample. Positions are clamped to the valid
// range, so the last sample is returned for pos >= len(src)-1.
func LinearAt(src []float64, pos float64) float64 {
	n := len(src)
	if n == 0 {
		return 0
	}

	if pos <= 0 {
		return src[0]
	}

	left := int(pos)
	if left >= n-1 {
		return src[n-1]
	}

	return Linear2(pos-float64(left), src[left], src[left+1])
}
