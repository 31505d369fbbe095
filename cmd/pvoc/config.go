package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/dither"
	"github.com/cwbudde/algo-pvoc/dsp/effects/pitch"
	"github.com/cwbudde/algo-pvoc/dsp/transient"
	"github.com/cwbudde/algo-pvoc/dsp/vocoder"
)

var errInvalidFlag = errors.New("invalid flag")

type config struct {
	stretch     float64
	pitch       float64
	semitones   float64
	startSec    float64
	endSec      float64
	window      int
	hop         int
	noLock      bool
	transientDB float64
	outDir      string
	bits        int
	dither      string
	shaping     bool
	ditherType  dither.Type
	loopSeconds float64
	workers     int
	progress    bool
}

func defaultConfig() config {
	return config{
		stretch:     1,
		pitch:       1,
		semitones:   math.NaN(),
		window:      vocoder.DefaultWindowLength,
		transientDB: transient.DefaultThresholdDB,
		bits:        16,
		dither:      "tpdf",
		workers:     1,
		progress:    true,
	}
}

// resolve folds -semitones into the pitch factor and checks the flags that
// are not validated further down.
func (c *config) resolve() error {
	if !math.IsNaN(c.semitones) {
		c.pitch = pitch.RatioFromSemitones(c.semitones)
	}

	if !core.IsFinitePositive(c.stretch) {
		return fmt.Errorf("%w: -stretch must be positive: %g", errInvalidFlag, c.stretch)
	}

	if !core.IsFinitePositive(c.pitch) {
		return fmt.Errorf("%w: -pitch must be positive: %g", errInvalidFlag, c.pitch)
	}

	if c.startSec < 0 || c.endSec < 0 || (c.endSec > 0 && c.endSec <= c.startSec) {
		return fmt.Errorf("%w: range [%g, %g] seconds", errInvalidFlag, c.startSec, c.endSec)
	}

	dt, err := dither.ParseType(c.dither)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidFlag, err)
	}

	c.ditherType = dt

	if c.loopSeconds < 0 {
		return fmt.Errorf("%w: -loop-seconds must be >= 0: %g", errInvalidFlag, c.loopSeconds)
	}

	if c.workers < 1 {
		c.workers = 1
	}

	return nil
}

func (c *config) quantizer() (*dither.Quantizer, error) {
	return dither.NewQuantizer(
		dither.WithBitDepth(c.bits),
		dither.WithType(c.ditherType),
		dither.WithNoiseShaping(c.shaping),
	)
}

func (c *config) vocoderOptions() []vocoder.Option {
	opts := []vocoder.Option{
		vocoder.WithWindowLength(c.window),
		vocoder.WithPhaseLock(!c.noLock),
		vocoder.WithTransientThreshold(c.transientDB),
	}

	if c.hop > 0 {
		opts = append(opts, vocoder.WithAnalysisHop(c.hop))
	}

	return opts
}

// sampleRange converts the -start/-end seconds into sample indices that
// Process accepts.
func (c *config) sampleRange(length int, sampleRate float64) (int, int) {
	last := length - 1

	start := min(int(c.startSec*sampleRate), last)
	end := last
	if c.endSec > 0 {
		end = min(int(c.endSec*sampleRate), last)
	}

	return start, end
}
