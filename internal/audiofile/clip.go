package audiofile

import (
	"fmt"

	"github.com/cwbudde/algo-pvoc/dsp/core"
)

// Clip is decoded audio with interleaved samples in [-1, 1].
type Clip struct {
	Samples    []float64
	Channels   int
	SampleRate int
}

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}

	return len(c.Samples) / c.Channels
}

// Mono averages all channels into a single channel.
func (c *Clip) Mono() []float64 {
	frames := c.Frames()
	out := make([]float64, frames)

	if c.Channels == 1 {
		copy(out, c.Samples)
		return out
	}

	scale := 1 / float64(c.Channels)
	for f := range frames {
		sum := 0.0
		for _, v := range c.Samples[f*c.Channels : (f+1)*c.Channels] {
			sum += v
		}
		out[f] = sum * scale
	}

	return out
}

// Segment downmixes the clip into a mono segment.
func (c *Clip) Segment() (core.Segment, error) {
	seg, err := core.NewSegment(c.Mono(), float64(c.SampleRate))
	if err != nil {
		return core.Segment{}, fmt.Errorf("audiofile: %w", err)
	}

	return seg, nil
}

func pcmFullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(int64(1) << (bitDepth - 1)), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

func intsToFloat(data []int, bitDepth int) ([]float64, error) {
	scale, err := pcmFullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v) / scale
	}

	return out, nil
}
