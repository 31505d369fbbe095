package audiofile

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/dither"
)

func decodeWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a PCM WAV stream", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav samples: %w", err)
	}

	samples, err := intsToFloat(buf.Data, int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	return &Clip{
		Samples:    samples,
		Channels:   int(dec.NumChans),
		SampleRate: int(dec.SampleRate),
	}, nil
}

// WriteWAV encodes samples as mono integer PCM at sampleRate without
// dither. Samples are clamped to [-1, 1]. bitDepth must be 16, 24 or 32.
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if _, err := pcmFullScale(bitDepth); err != nil {
		return err
	}

	q, err := dither.NewQuantizer(dither.WithBitDepth(bitDepth), dither.WithType(dither.None))
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	return EncodeWAV(w, samples, sampleRate, q)
}

// EncodeWAV encodes samples as mono integer PCM, quantizing through q.
// The bit depth of q must be 16, 24 or 32.
func EncodeWAV(w io.WriteSeeker, samples []float64, sampleRate int, q *dither.Quantizer) error {
	bitDepth := q.BitDepth()
	if _, err := pcmFullScale(bitDepth); err != nil {
		return err
	}

	if sampleRate <= 0 {
		return fmt.Errorf("audiofile: %w: %d", core.ErrInvalidSampleRate, sampleRate)
	}

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = q.ProcessInteger(core.Clamp(v, -1, 1))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)

	err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return fmt.Errorf("audiofile: writing wav samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: finalizing wav: %w", err)
	}

	return nil
}
