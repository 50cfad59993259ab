package event

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrFormat is returned for inputs that cannot be read as SCT events.
	ErrFormat = errors.New("event: unsupported input")
	// ErrOutOfRange is returned for event indices outside the source.
	ErrOutOfRange = errors.New("event: index out of range")
	// ErrEmpty is returned when a source holds no events.
	ErrEmpty = errors.New("event: no events")
)

// Source gives random access to the events of an input.
type Source interface {
	// Len returns the number of events.
	Len() int64
	// Read returns the events with indices in [start, stop).
	Read(start, stop int64) ([]Event, error)
	Close() error
}

type options struct {
	logger *zap.Logger

	tree string

	mcTag    string
	finalTag string
	trackTag string
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		mcTag:    "Particle",
		finalTag: "GenStable",
		trackTag: "Reconstructed",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Source.
type Option func(*options)

// WithLogger sets the logger used by a Source.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTree selects the ROOT tree to read. By default "sct" is used, then
// "ana".
func WithTree(name string) Option {
	return func(o *options) { o.tree = name }
}

// WithProioTags sets the proio tags of generator particles, of final-state
// generator particles and of reconstructed tracks.
func WithProioTags(mc, final, track string) Option {
	return func(o *options) {
		o.mcTag, o.finalTag, o.trackTag = mc, final, track
	}
}

// Open opens path with the reader matching its extension.
func Open(path string, opts ...Option) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".root":
		return OpenROOT(path, opts...)
	case ".proio":
		return OpenProio(path, opts...)
	default:
		return nil, fmt.Errorf("%s: extension %q: %w", path, ext, ErrFormat)
	}
}

func checkRange(start, stop, n int64) error {
	if start < 0 || stop > n || start > stop {
		return fmt.Errorf("range [%d, %d) of %d events: %w", start, stop, n, ErrOutOfRange)
	}
	return nil
}
