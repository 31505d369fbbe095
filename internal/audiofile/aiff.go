package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

const aiffChunkSamples = 4096

func decodeAIFF(r io.ReadSeeker) (*Clip, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF stream", ErrInvalidFile)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: missing AIFF format", ErrInvalidFile)
	}

	bitDepth := int(dec.BitDepth)
	if _, err := pcmFullScale(bitDepth); err != nil {
		return nil, err
	}

	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, aiffChunkSamples*format.NumChannels),
	}

	var data []int

	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
	}

	samples, err := intsToFloat(data, bitDepth)
	if err != nil {
		return nil, err
	}

	return &Clip{
		Samples:    samples,
		Channels:   format.NumChannels,
		SampleRate: format.SampleRate,
	}, nil
}
