package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	mp3Channels = 2
	mp3Scale    = 32768.0
)

func decodeMP3(r io.ReadSeeker) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 frames: %w", err)
	}

	samples := make([]float64, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		samples[i] = float64(v) / mp3Scale
	}

	return &Clip{
		Samples:    samples,
		Channels:   mp3Channels,
		SampleRate: dec.SampleRate(),
	}, nil
}
