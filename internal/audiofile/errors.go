package audiofile

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension without a decoder.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrInvalidFile indicates data that the decoder does not recognize.
	ErrInvalidFile = errors.New("audiofile: invalid file")
	// ErrUnsupportedBitDepth indicates a PCM sample width that cannot be
	// read or written.
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")
)
