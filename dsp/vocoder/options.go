package vocoder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pvoc/dsp/peaks"
	"github.com/cwbudde/algo-pvoc/dsp/transient"
)

const (
	// DefaultWindowLength is the analysis and synthesis frame length.
	DefaultWindowLength = 4096

	minWindowLength = 64
)

// Option mutates engine construction parameters.
type Option func(*config) error

type config struct {
	windowLen   int
	hopA        int
	phaseLock   bool
	transientDB float64
	peakRel     float64
	neighbours  int
}

func defaultConfig() config {
	return config{
		windowLen:   DefaultWindowLength,
		phaseLock:   true,
		transientDB: transient.DefaultThresholdDB,
		peakRel:     peaks.DefaultRelThreshold,
		neighbours:  peaks.DefaultNeighbours,
	}
}

// WithWindowLength sets the frame length. It must be a power of two of at
// least 64 samples.
func WithWindowLength(n int) Option {
	return func(cfg *config) error {
		if n < minWindowLength || n&(n-1) != 0 {
			return fmt.Errorf("%w: window length must be a power of two >= %d: %d",
				ErrInvalidConfig, minWindowLength, n)
		}
		cfg.windowLen = n
		return nil
	}
}

// WithAnalysisHop sets the distance between analysis frames. The default
// is a quarter of the window length, i.e. 75% overlap.
func WithAnalysisHop(hop int) Option {
	return func(cfg *config) error {
		if hop < 1 {
			return fmt.Errorf("%w: analysis hop must be >= 1: %d", ErrInvalidConfig, hop)
		}
		cfg.hopA = hop
		return nil
	}
}

// WithPhaseLock enables or disables identity phase locking.
func WithPhaseLock(enabled bool) Option {
	return func(cfg *config) error {
		cfg.phaseLock = enabled
		return nil
	}
}

// WithTransientThreshold sets the frame energy rise in dB that restarts
// the phase trajectory.
func WithTransientThreshold(db float64) Option {
	return func(cfg *config) error {
		if db < 0 || math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("%w: transient threshold must be >= 0 and finite: %f", ErrInvalidConfig, db)
		}
		cfg.transientDB = db
		return nil
	}
}

// WithPeakThreshold sets the minimum peak height relative to the frame's
// largest magnitude.
func WithPeakThreshold(rel float64) Option {
	return func(cfg *config) error {
		if rel < 0 || rel > 1 || math.IsNaN(rel) {
			return fmt.Errorf("%w: peak threshold must be in [0, 1]: %f", ErrInvalidConfig, rel)
		}
		cfg.peakRel = rel
		return nil
	}
}

// WithPeakNeighbours sets how many bins on each side a peak must dominate.
func WithPeakNeighbours(k int) Option {
	return func(cfg *config) error {
		if k < 1 {
			return fmt.Errorf("%w: peak neighbours must be >= 1: %d", ErrInvalidConfig, k)
		}
		cfg.neighbours = k
		return nil
	}
}
