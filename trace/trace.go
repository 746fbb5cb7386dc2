package trace

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"slices"

	"github.com/klauspost/readahead"

	"github.com/ardnew/ckview/log"
	"github.com/ardnew/ckview/profile"
)

// Trace is a parsed checkpoint trace.
type Trace struct {
	// Checkpoints holds the checkpoint names indexed by id.
	Checkpoints []string
	// Records holds the code locations in input order.
	Records []profile.Record
}

// All returns an iterator over the records in input order.
func (t *Trace) All() iter.Seq[profile.Record] {
	return slices.Values(t.Records)
}

// Profile builds the unsynchronized profile of t.
func (t *Trace) Profile(opts ...profile.Option) *profile.Profile {
	return profile.Build(t.Checkpoints, t.All(), opts...)
}

// Option configures [Parse] and [ParseFile].
type Option func(*options)

type options struct {
	logger log.Logger
	name   string
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithName sets the input name reported by parse errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Parse reads a complete trace from r.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Trace, error) {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("name", o.name))
	}

	t, err := newParser(o.name).parse(ctx, string(data))
	if err != nil {
		return nil, err
	}

	o.logger.DebugContext(ctx, "trace parsed",
		slog.String("name", o.name),
		slog.Int("checkpoints", len(t.Checkpoints)),
		slog.Int("records", len(t.Records)),
	)

	return t, nil
}

// ParseFile parses the trace stored at path.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	return Parse(ctx, f, append([]Option{WithName(path)}, opts...)...)
}
