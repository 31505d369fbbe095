package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

func decodeFLAC(r io.ReadSeeker) (*Clip, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)

	scale, err := flacFullScale(int(info.BitsPerSample))
	if err != nil {
		return nil, err
	}

	samples := make([]float64, 0, int(info.NSamples)*channels)

	for {
		f, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading flac frame: %w", err)
		}

		samples, err = appendFLACFrame(samples, f, channels, scale)
		if err != nil {
			return nil, err
		}
	}

	return &Clip{
		Samples:    samples,
		Channels:   channels,
		SampleRate: int(info.SampleRate),
	}, nil
}

// appendFLACFrame interleaves the decoded subframes of f onto dst.
func appendFLACFrame(dst []float64, f *frame.Frame, channels int, scale float64) ([]float64, error) {
	if len(f.Subframes) != channels {
		return nil, fmt.Errorf("%w: flac frame has %d channels, stream has %d", ErrInvalidFile, len(f.Subframes), channels)
	}

	chans := make([][]int32, channels)
	for ch, sub := range f.Subframes {
		chans[ch] = sub.Samples
	}

	return interleaveInt32(dst, chans, scale), nil
}

// interleaveInt32 appends chans, sample by sample across channels, to dst
// scaled by 1/scale. The shortest channel bounds the frame length.
func interleaveInt32(dst []float64, chans [][]int32, scale float64) []float64 {
	if len(chans) == 0 {
		return dst
	}

	n := len(chans[0])
	for _, c := range chans[1:] {
		n = min(n, len(c))
	}

	for i := range n {
		for _, c := range chans {
			dst = append(dst, float64(c[i])/scale)
		}
	}

	return dst
}

// FLAC allows any sample width from 4 to 32 bits.
func flacFullScale(bitDepth int) (float64, error) {
	if bitDepth < 4 || bitDepth > 32 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return float64(int64(1) << (bitDepth - 1)), nil
}
