package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ckview/log"
	"github.com/ardnew/ckview/profile"
	"github.com/ardnew/ckview/source"
	"github.com/ardnew/ckview/trace"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name, or "" if ctx has no kong context.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

// Settings are the global options shared by every command.
type Settings struct {
	// SourcePath lists directories searched for source files, before those
	// of [source.EnvSearchPath].
	SourcePath []string

	// Jobs limits concurrent file reads; values less than 1 select
	// GOMAXPROCS.
	Jobs int
}

type (
	settingsKey struct{}
	outputKey   struct{}
)

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	return s
}

// WithOutput returns a new context.Context whose commands write to w
// instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinTrace is the trace argument that selects standard input.
const stdinTrace = "-"

// loader produces the profile of one trace. The parsed profile is kept so
// that it can be synchronized again with the same source cache.
type loader struct {
	logger log.Logger
	parsed *profile.Profile
	cache  *source.Cache
	name   string
	jobs   int
}

func newLoader(ctx context.Context, path string) (*loader, error) {
	logger := log.Default()

	var (
		tr  *trace.Trace
		err error
	)

	if path == stdinTrace {
		tr, err = trace.Parse(ctx, os.Stdin,
			trace.WithName("<stdin>"), trace.WithLogger(logger))
	} else {
		tr, err = trace.ParseFile(ctx, path, trace.WithLogger(logger))
	}

	if err != nil {
		return nil, ErrLoadTrace.Wrap(err).With(slog.String("trace", path))
	}

	s := settingsFrom(ctx)

	dirs := slices.Clone(s.SourcePath)
	if path != stdinTrace {
		dirs = append(dirs, filepath.Dir(path))
	}

	l := &loader{
		logger: logger,
		parsed: tr.Profile(profile.WithLogger(logger)),
		cache: source.NewCache(
			source.WithSearchPath(source.SearchPath(source.EnvSearchPath, dirs...)...),
			source.WithLogger(logger),
		),
		name: path,
		jobs: s.Jobs,
	}

	logger.DebugContext(ctx, "trace loaded",
		slog.String("trace", path),
		slog.Int("items", l.parsed.Len()),
		slog.Any("search_path", l.cache.SearchPath()),
	)

	return l, nil
}

// sync returns the parsed profile merged with the current content of its
// source files.
func (l *loader) sync(ctx context.Context) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stats profile.SyncStats

	p := l.parsed.Synced(ctx,
		profile.WithReader(l.cache),
		profile.WithJobs(l.jobs),
		profile.WithStats(&stats),
		profile.WithLogger(l.logger),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.DebugContext(ctx, "profile synchronized",
		slog.String("trace", l.name),
		slog.Any("stats", stats),
	)

	return p, nil
}

// load returns the profile of the trace at path, synchronized unless
// noSync is set.
func load(ctx context.Context, path string, noSync bool) (*profile.Profile, error) {
	l, err := newLoader(ctx, path)
	if err != nil {
		return nil, err
	}

	if noSync {
		return l.parsed, nil
	}

	return l.sync(ctx)
}
