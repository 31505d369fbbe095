package phase

import (
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-pvoc/dsp/peaks"
)

func TestWrapRange(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{5*math.Pi/2 + 4*math.Pi, math.Pi / 2},
	}

	for _, tt := range tests {
		got := Wrap(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("Wrap(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}

	for i := -1000; i <= 1000; i++ {
		x := float64(i) * 0.0371
		got := Wrap(x)
		if got <= -math.Pi || got > math.Pi {
			t.Fatalf("Wrap(%g) = %g outside (-π, π]", x, got)
		}

		if d := math.Remainder(got-x, 2*math.Pi); math.Abs(d) > 1e-9 {
			t.Fatalf("Wrap(%g) = %g differs by a non-multiple of 2π", x, got)
		}
	}
}

func TestNewState(t *testing.T) {
	st := NewState(5)
	if st.Bins() != 5 || len(st.Synthesis) != 5 || st.EnergyDB != 0 {
		t.Fatalf("NewState(5) = %+v", st)
	}
}

func TestPeakLockerMatchesLocate(t *testing.T) {
	mags := []float64{0.1, 0.2, 1, 0.3, 0.05, 0.4, 0.6, 0.2, 0.1}

	for _, rel := range []float64{0, 0.5, 0.9} {
		got := PeakLocker(rel, 1)(mags)
		want := peaks.Locate(mags, rel, 1)

		if !slices.Equal(got.Peaks, want.Peaks) || !slices.Equal(got.Regions, want.Regions) {
			t.Fatalf("rel %g: PeakLocker = %+v, want %+v", rel, got, want)
		}
	}
}

func TestReset(t *testing.T) {
	acc := NewAccumulator(8, 2, 4, nil)
	cur := []float64{0.1, -0.2, 0.3, 0.4, -0.5}

	st := NewState(5)
	st.EnergyDB = -12

	got := acc.Reset(st, cur)
	for k := range cur {
		if got.Analysis[k] != cur[k] || got.Synthesis[k] != cur[k] {
			t.Fatalf("bin %d: got (%g, %g), want %g", k, got.Analysis[k], got.Synthesis[k], cur[k])
		}
	}

	if got.EnergyDB != -12 {
		t.Fatalf("EnergyDB = %g, want -12", got.EnergyDB)
	}

	cur[0] = 7
	if got.Analysis[0] == 7 {
		t.Fatal("Reset aliases its input")
	}
}

func TestFrequenciesOfStationarySinusoid(t *testing.T) {
	const (
		n    = 64
		hopA = 16
	)

	acc := NewAccumulator(n, hopA, hopA, nil)

	// A sinusoid between bins advances by omega*hopA between frames.
	omega := 2 * math.Pi * 5.3 / n
	bins := n/2 + 1
	prev := make([]float64, bins)
	cur := make([]float64, bins)

	for k := range bins {
		prev[k] = Wrap(0.7 * float64(k))
		cur[k] = Wrap(prev[k] + omega*hopA)
	}

	freq := acc.Frequencies(prev, cur, make([]float64, bins))
	for _, k := range []int{4, 5, 6} {
		if math.Abs(freq[k]-omega) > 1e-9 {
			t.Fatalf("bin %d frequency = %g, want %g", k, freq[k], omega)
		}
	}
}

func TestFrequenciesExpectedAdvance(t *testing.T) {
	acc := NewAccumulator(32, 8, 8, nil)
	bins := 17
	zero := make([]float64, bins)

	// Zero phase difference modulo 2π maps to the bin centre frequency
	// whenever hop*k/N is an integer.
	freq := acc.Frequencies(zero, zero, make([]float64, bins))
	for _, k := range []int{0, 4, 8, 12, 16} {
		want := 2 * math.Pi * float64(k) / 32
		if math.Abs(freq[k]-want) > 1e-9 {
			t.Fatalf("bin %d frequency = %g, want %g", k, freq[k], want)
		}
	}
}

func TestAdvanceUnlocked(t *testing.T) {
	const (
		n    = 32
		hopA = 8
		hopS = 12
	)

	acc := NewAccumulator(n, hopA, hopS, nil)
	if acc.Locked() {
		t.Fatal("nil locker should be unlocked")
	}

	bins := n/2 + 1
	st := acc.Reset(NewState(bins), make([]float64, bins))

	cur := make([]float64, bins)
	for k := range bins {
		cur[k] = Wrap(0.3 * float64(k))
	}

	next := acc.Advance(st, make([]float64, bins), cur)
	freq := acc.Frequencies(st.Analysis, cur, make([]float64, bins))

	for k := range bins {
		want := st.Synthesis[k] + freq[k]*hopS
		if math.Abs(next.Synthesis[k]-want) > 1e-12 {
			t.Fatalf("bin %d synthesis = %g, want %g", k, next.Synthesis[k], want)
		}

		if next.Analysis[k] != cur[k] {
			t.Fatalf("bin %d analysis = %g, want %g", k, next.Analysis[k], cur[k])
		}
	}
}

func TestAdvanceLockedPreservesRelativePhase(t *testing.T) {
	const (
		n    = 64
		hopA = 16
		hopS = 24
	)

	acc := NewAccumulator(n, hopA, hopS, PeakLocker(peaks.DefaultRelThreshold, peaks.DefaultNeighbours))
	if !acc.Locked() {
		t.Fatal("a peak locker should lock")
	}

	bins := n/2 + 1
	mags := make([]float64, bins)
	mags[8] = 1
	mags[7], mags[9] = 0.6, 0.6
	mags[20] = 0.8

	prev := make([]float64, bins)
	cur := make([]float64, bins)

	for k := range bins {
		prev[k] = Wrap(0.11 * float64(k*k))
		cur[k] = Wrap(0.37*float64(k) + 0.2)
	}

	st := acc.Reset(NewState(bins), prev)
	st.Synthesis[8] = 1.5
	st.Synthesis[20] = -0.5

	next := acc.Advance(st, mags, cur)
	res := peaks.Locate(mags, peaks.DefaultRelThreshold, peaks.DefaultNeighbours)
	freq := acc.Frequencies(prev, cur, make([]float64, bins))

	if len(res.Peaks) != 2 {
		t.Fatalf("test spectrum peaks = %v, want two", res.Peaks)
	}

	for _, r := range res.Regions {
		p := r.Peak
		want := st.Synthesis[p] + freq[p]*hopS

		if math.Abs(next.Synthesis[p]-want) > 1e-12 {
			t.Fatalf("peak %d synthesis = %g, want %g", p, next.Synthesis[p], want)
		}

		for b := r.Start; b < r.End; b++ {
			got := next.Synthesis[b] - next.Synthesis[p]
			if math.Abs(got-(cur[b]-cur[p])) > 1e-12 {
				t.Fatalf("bin %d relative phase = %g, want %g", b, got, cur[b]-cur[p])
			}
		}
	}
}

func TestAdvanceDoesNotModifyState(t *testing.T) {
	acc := NewAccumulator(16, 4, 8, PeakLocker(peaks.DefaultRelThreshold, peaks.DefaultNeighbours))
	bins := 9

	st := NewState(bins)
	for k := range bins {
		st.Analysis[k] = 0.1 * float64(k)
		st.Synthesis[k] = -0.2 * float64(k)
	}

	before := State{
		Analysis:  slices.Clone(st.Analysis),
		Synthesis: slices.Clone(st.Synthesis),
	}
	mags := make([]float64, bins)
	mags[4] = 1

	acc.Advance(st, mags, make([]float64, bins))

	for k := range bins {
		if st.Analysis[k] != before.Analysis[k] || st.Synthesis[k] != before.Synthesis[k] {
			t.Fatalf("Advance mutated bin %d of its input state", k)
		}
	}
}
