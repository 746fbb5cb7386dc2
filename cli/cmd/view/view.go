package view

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ckview/log"
	"github.com/ardnew/ckview/profile"
	"github.com/ardnew/ckview/query"
)

// Resync reloads the profile, typically by synchronizing it with the
// source files on disk again.
type Resync func(ctx context.Context) (*profile.Profile, error)

// Option configures the viewer.
type Option func(*config)

type config struct {
	logger  log.Logger
	filter  *query.Filter
	resync  Resync
	title   string
	program []tea.ProgramOption
}

// WithLogger sets the logger for diagnostics. The logger must not write to
// the terminal the viewer draws on.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFilter sets the initial filter.
func WithFilter(f *query.Filter) Option {
	return func(c *config) { c.filter = f }
}

// WithResync enables the resync key.
func WithResync(fn Resync) Option {
	return func(c *config) { c.resync = fn }
}

// WithTitle sets the text shown above the source column.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithProgramOptions passes opts to the underlying [tea.Program].
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *config) { c.program = append(c.program, opts...) }
}

// Run displays p until the user quits or ctx is cancelled.
func Run(ctx context.Context, p *profile.Profile, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.logger.DebugContext(
		ctx,
		"view start",
		slog.Int("items", p.Len()),
		slog.String("filter", cfg.filter.String()),
	)

	m := newModel(ctx, p, cfg)

	prog := tea.NewProgram(
		m,
		append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()},
			cfg.program...)...,
	)

	_, err = prog.Run()

	cfg.logger.DebugContext(ctx, "view stop", slog.Any("error", err))

	return err
}
