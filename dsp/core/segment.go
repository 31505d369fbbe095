package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySegment indicates a segment without samples.
	ErrEmptySegment = errors.New("core: segment must contain at least one sample")
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("core: sample rate must be positive and finite")
)

// Segment is an immutable run of mono samples at a fixed sample rate.
type Segment struct {
	samples    []float64
	sampleRate float64
}

// NewSegment copies samples into a new Segment.
func NewSegment(samples []float64, sampleRate float64) (Segment, error) {
	if len(samples) == 0 {
		return Segment{}, ErrEmptySegment
	}

	if !IsFinitePositive(sampleRate) {
		return Segment{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	owned := make([]float64, len(samples))
	copy(owned, samples)

	return Segment{samples: owned, sampleRate: sampleRate}, nil
}

// Len returns the number of samples.
func (s Segment) Len() int { return len(s.samples) }

// SampleRate returns the sample rate in Hz.
func (s Segment) SampleRate() float64 { return s.sampleRate }

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	if s.sampleRate == 0 {
		return 0
	}

	return float64(len(s.samples)) / s.sampleRate
}

// At returns sample i.
func (s Segment) At(i int) float64 { return s.samples[i] }

// View returns the backing samples of [start, end) without copying.
// Callers must treat the result as read-only.
func (s Segment) View(start, end int) []float64 {
	return s.samples[start:end:end]
}

// Slice returns a copy of the samples in [start, end).
func (s Segment) Slice(start, end int) []float64 {
	out := make([]float64, end-start)
	copy(out, s.samples[start:end])

	return out
}
