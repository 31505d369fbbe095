package audiofile

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-pvoc/dsp/core"
)

// Decoder turns an encoded stream into a Clip.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Clip, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.ReadSeeker) (*Clip, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.ReadSeeker) (*Clip, error) { return f(r) }

// Registry maps lowercase file extensions, without the dot, to decoders.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", DecoderFunc(decodeWAV))
	r.Register("wave", DecoderFunc(decodeWAV))
	r.Register("aif", DecoderFunc(decodeAIFF))
	r.Register("aiff", DecoderFunc(decodeAIFF))
	r.Register("mp3", DecoderFunc(decodeMP3))
	r.Register("ogg", DecoderFunc(decodeVorbis))
	r.Register("flac", DecoderFunc(decodeFLAC))

	return r
}

// Register installs d for format, replacing any previous decoder.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats returns the registered extensions in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.codecs))
}

// Open decodes the file at path with the decoder registered for its
// extension.
func (r *Registry) Open(path string) (*Clip, error) {
	ext := filepath.Ext(path)

	dec, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	clip, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decoding %s: %w", filepath.Base(path), err)
	}

	return clip, nil
}

// Load decodes path with r and downmixes it to a mono segment.
func (r *Registry) Load(path string) (core.Segment, error) {
	clip, err := r.Open(path)
	if err != nil {
		return core.Segment{}, err
	}

	return clip.Segment()
}

// Load decodes path with the default registry.
func Load(path string) (core.Segment, error) {
	return DefaultRegistry().Load(path)
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
