// Package phase propagates analysis phases into synthesis phases for a
// phase vocoder, with optional identity phase locking around spectral
// peaks (Laroche & Dolson 1999).
package phase

import (
	"math"

	"github.com/cwbudde/algo-pvoc/dsp/peaks"
)

// State carries per-bin phase memory between consecutive frames.
type State struct {
	// Analysis is the previous frame's analysis phase per bin.
	Analysis []float64
	// Synthesis is the previous frame's synthesis phase per bin.
	Synthesis []float64
	// EnergyDB is the previous frame's energy in dB. It starts at 0.
	EnergyDB float64
}

// NewState returns a zeroed state for bins frequency bins.
func NewState(bins int) State {
	return State{
		Analysis:  make([]float64, bins),
		Synthesis: make([]float64, bins),
	}
}

// Bins returns the number of bins tracked by the state.
func (s State) Bins() int { return len(s.Analysis) }

// Wrap maps x into (-π, π].
func Wrap(x float64) float64 {
	r := math.Mod(x+math.Pi, 2*math.Pi)
	if r <= 0 {
		r += 2 * math.Pi
	}

	return r - math.Pi
}

// Locker partitions a magnitude spectrum into peak regions.
type Locker func(mags []float64) peaks.Result

// PeakLocker returns a Locker that finds peaks at least rel times the
// largest magnitude that dominate neighbours bins on each side.
func PeakLocker(rel float64, neighbours int) Locker {
	return func(mags []float64) peaks.Result {
		return peaks.Locate(mags, rel, neighbours)
	}
}

// Accumulator advances phase states frame by frame. It holds only
// immutable configuration and may be shared between goroutines.
type Accumulator struct {
	windowLen int
	hopA      float64
	hopS      float64
	locker    Locker
}

// NewAccumulator returns an accumulator for frames of windowLen samples
// read hopA apart and written hopS apart. A nil locker selects per-bin
// accumulation without phase locking.
func NewAccumulator(windowLen, hopA, hopS int, locker Locker) *Accumulator {
	return &Accumulator{
		windowLen: windowLen,
		hopA:      float64(hopA),
		hopS:      float64(hopS),
		locker:    locker,
	}
}

// Locked reports whether identity phase locking is enabled.
func (a *Accumulator) Locked() bool { return a.locker != nil }

// Reset starts a new phase trajectory at cur: both the analysis and the
// synthesis phase take the current analysis phase. EnergyDB is carried
// over unchanged.
func (a *Accumulator) Reset(st State, cur []float64) State {
	return State{
		Analysis:  append([]float64(nil), cur...),
		Synthesis: append([]float64(nil), cur...),
		EnergyDB:  st.EnergyDB,
	}
}

// Frequencies writes the instantaneous angular frequency of every bin, in
// radians per sample, given the previous and current analysis phases.
func (a *Accumulator) Frequencies(prev, cur, dst []float64) []float64 {
	dst = dst[:len(cur)]
	step := 2 * math.Pi * a.hopA / float64(a.windowLen)

	for k := range cur {
		expected := step * float64(k)
		dst[k] = (expected + Wrap(cur[k]-prev[k]-expected)) / a.hopA
	}

	return dst
}

// Advance propagates st by one frame whose magnitudes and analysis phases
// are mags and cur, and returns the new state. st is not modified.
func (a *Accumulator) Advance(st State, mags, cur []float64) State {
	bins := len(cur)
	freq := a.Frequencies(st.Analysis, cur, make([]float64, bins))
	syn := make([]float64, bins)

	if a.locker == nil {
		for k := range bins {
			syn[k] = st.Synthesis[k] + freq[k]*a.hopS
		}
	} else {
		for _, r := range a.locker(mags).Regions {
			p := r.Peak
			syn[p] = st.Synthesis[p] + freq[p]*a.hopS

			for b := r.Start; b < r.End; b++ {
				if b != p {
					syn[b] = syn[p] + cur[b] - cur[p]
				}
			}
		}
	}

	return State{
		Analysis:  append([]float64(nil), cur...),
		Synthesis: syn,
		EnergyDB:  st.EnergyDB,
	}
}
