package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] onto signed integers of a fixed bit
// depth. It keeps error feedback state and is not safe for concurrent use.
type Quantizer struct {
	bitDepth  int
	kind      Type
	amplitude float64
	shaping   bool
	rng       *rand.Rand

	scale   float64
	limitLo int
	limitHi int
	lastErr float64
}

// NewQuantizer creates a Quantizer. The default is 16-bit triangular
// dither without noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	seed := cfg.seed
	if !cfg.seeded {
		seed = rand.Uint64()
	}

	full := math.Exp2(float64(cfg.bitDepth - 1))

	return &Quantizer{
		bitDepth:  cfg.bitDepth,
		kind:      cfg.kind,
		amplitude: cfg.amplitude,
		shaping:   cfg.shaping,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		scale:     full - 1,
		limitLo:   -int(full),
		limitHi:   int(full) - 1,
	}, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither noise PDF.
func (q *Quantizer) Type() Type { return q.kind }

// ProcessInteger quantizes one sample. Inputs outside [-1, 1] are limited
// to the integer range of the bit depth.
func (q *Quantizer) ProcessInteger(input float64) int {
	scaled := input * q.scale
	if q.shaping {
		scaled -= q.lastErr
	}

	out := int(math.Round(scaled + q.noise()))
	out = max(q.limitLo, min(q.limitHi, out))

	if q.shaping {
		q.lastErr = float64(out) - scaled
	}

	return out
}

// Quantize converts samples into dst, which is grown as needed.
func (q *Quantizer) Quantize(dst []int, samples []float64) []int {
	if cap(dst) < len(samples) {
		dst = make([]int, len(samples))
	}

	dst = dst[:len(samples)]
	for i, v := range samples {
		dst[i] = q.ProcessInteger(v)
	}

	return dst
}

// Reset clears the error feedback state.
func (q *Quantizer) Reset() {
	q.lastErr = 0
}

func (q *Quantizer) noise() float64 {
	switch q.kind {
	case Rectangular:
		return q.amplitude * (q.rng.Float64() - 0.5)
	case Triangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
