package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-pvoc/internal/testutil"
)

func TestToPolarRoundTrip(t *testing.T) {
	bins := []complex128{3 + 4i, -1, 1i, -2 - 2i, 0}
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))
	Split(bins, re, im)

	mag := make([]float64, len(bins))
	phase := make([]float64, len(bins))
	ToPolar(mag, phase, re, im)

	for k, b := range bins {
		if math.Abs(mag[k]-cmplx.Abs(b)) > 1e-12 {
			t.Fatalf("bin %d magnitude = %g, want %g", k, mag[k], cmplx.Abs(b))
		}
		if math.Abs(phase[k]-cmplx.Phase(b)) > 1e-12 {
			t.Fatalf("bin %d phase = %g, want %g", k, phase[k], cmplx.Phase(b))
		}
	}

	back := make([]complex128, len(bins))
	FromPolar(back, mag, phase)

	for k := range bins {
		if cmplx.Abs(back[k]-bins[k]) > 1e-12 {
			t.Fatalf("bin %d = %v, want %v", k, back[k], bins[k])
		}
	}
}

func TestToPolarPhaseRange(t *testing.T) {
	negZero := math.Copysign(0, -1)
	re := []float64{-1, -1, 1, 0, -2}
	im := []float64{negZero, 0, negZero, -1, -1e-300}
	mag := make([]float64, len(re))
	phase := make([]float64, len(re))

	ToPolar(mag, phase, re, im)

	for k, p := range phase {
		if p <= -math.Pi || p > math.Pi {
			t.Fatalf("phase[%d] = %g, want (-π, π]", k, p)
		}
	}

	if phase[0] != math.Pi {
		t.Fatalf("phase of -1-0i = %g, want π", phase[0])
	}

	if phase[1] != math.Pi {
		t.Fatalf("phase of -1+0i = %g, want π", phase[1])
	}
}

func TestMirrorHermitian(t *testing.T) {
	full := []complex128{1 + 1i, 2 + 3i, 4 - 1i, 5 + 2i, 0, 0, 0, 0}
	MirrorHermitian(full)

	want := []complex128{1, 2 + 3i, 4 - 1i, 5 + 2i, 0, 5 - 2i, 4 + 1i, 2 - 3i}
	want[4] = 0

	for k := range want {
		if full[k] != want[k] {
			t.Fatalf("bin %d = %v, want %v", k, full[k], want[k])
		}
	}

	odd := []complex128{1i, 2 + 1i, 3 + 1i, 0, 0}
	MirrorHermitian(odd)

	if odd[0] != 0 || odd[4] != 2-1i || odd[3] != 3-1i {
		t.Fatalf("odd length mirror = %v", odd)
	}

	MirrorHermitian(nil)
}

func TestPower(t *testing.T) {
	dst := make([]float64, 2)
	Power(dst, []float64{3, 1}, []float64{4, -1})
	testutil.RequireSliceNearlyEqual(t, dst, []float64{25, 2}, 1e-12)
}
