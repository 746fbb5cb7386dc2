package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ckview/cli/cmd/view"
	"github.com/ardnew/ckview/log"
	"github.com/ardnew/ckview/query"
)

// baseViewLog is the name of the log file written while the viewer owns
// the terminal.
const baseViewLog = "view.log"

// View browses a trace interactively.
type View struct {
	Trace  string `arg:"" help:"Trace file, or '-' for standard input"`
	Filter string `help:"Dim lines not matching the expression" placeholder:"EXPR" short:"e"`
	NoSync bool   `help:"Start without reading source files"`
}

// Run executes the view command.
func (v *View) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := query.Compile(v.Filter)
	if err != nil {
		return ErrFilter.Wrap(err)
	}

	defer redirectLog(ctx)()

	l, err := newLoader(ctx, v.Trace)
	if err != nil {
		return err
	}

	p := l.parsed
	if !v.NoSync {
		if p, err = l.sync(ctx); err != nil {
			return ErrLoadTrace.Wrap(err).With(slog.String("trace", v.Trace))
		}
	}

	opts := []view.Option{
		view.WithLogger(log.Default()),
		view.WithFilter(filter),
		view.WithResync(l.sync),
		view.WithTitle(v.Trace),
	}

	// The trace occupies standard input.
	if v.Trace == stdinTrace {
		opts = append(opts, view.WithProgramOptions(tea.WithInputTTY()))
	}

	if err := view.Run(ctx, p, opts...); err != nil {
		return ErrView.Wrap(err)
	}

	return nil
}

// redirectLog sends the default logger to a file in the cache directory,
// or discards it if there is none, and returns a function that restores the
// previous logger.
func redirectLog(ctx context.Context) (restore func()) {
	var file *os.File

	if dir := kongVar(ctx, CacheIdentifier); dir != "" {
		path := filepath.Join(dir, baseViewLog)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			log.WarnContext(ctx, "cannot open view log",
				slog.String("path", path), slog.Any("error", err))
		} else {
			file = f
		}
	}

	var prev log.Logger

	if file != nil {
		prev = log.SetDefault(log.Default().Wrap(log.WithOutput(file), log.WithPretty(false)))
		log.DebugContext(ctx, "view log opened", slog.String("path", file.Name()))
	} else {
		prev = log.SetDefault(log.Default().Wrap(log.WithOutput(nil)))
	}

	return func() {
		log.SetDefault(prev)

		if file != nil {
			_ = file.Close()
		}
	}
}
