// Package transient flags frames whose energy jumps abruptly relative to
// the previous frame, the onset of a percussive event.
package transient

import (
	"math"

	"github.com/cwbudde/algo-pvoc/dsp/core"
)

const (
	// DefaultThresholdDB is the energy rise that marks a transient.
	DefaultThresholdDB = 6.0
	// FloorDB is reported for blocks without measurable energy.
	FloorDB = -120.0

	silenceEnergy = 1e-12
)

// Detector compares consecutive block energies.
// The zero value flags any energy increase.
type Detector struct {
	ThresholdDB float64
}

// New returns a Detector with the given rise threshold in dB.
func New(thresholdDB float64) Detector {
	return Detector{ThresholdDB: thresholdDB}
}

// EnergyDB returns 10*log10 of the block's sum of squares, or FloorDB when
// the energy is at or below 1e-12. The value is relative, not calibrated.
func EnergyDB(block []float64) float64 {
	energy := 0.0
	for _, v := range block {
		energy += v * v
	}

	if energy <= silenceEnergy || math.IsNaN(energy) {
		return FloorDB
	}

	return core.LinearPowerToDB(energy)
}

// Detect reports whether block rises more than ThresholdDB above prevDB.
// It always returns the block's energy so the caller can carry it to the
// next frame.
func (d Detector) Detect(block []float64, prevDB float64) (bool, float64) {
	cur := EnergyDB(block)
	return d.IsRise(cur, prevDB), cur
}

// IsRise reports whether curDB exceeds prevDB by more than ThresholdDB.
func (d Detector) IsRise(curDB, prevDB float64) bool {
	return curDB-prevDB > d.ThresholdDB
}
