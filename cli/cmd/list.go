package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ckview/cli/cmd/view"
	"github.com/ardnew/ckview/profile"
	"github.com/ardnew/ckview/query"
)

// List prints a trace as text columns.
type List struct {
	Trace  string `arg:"" help:"Trace file, or '-' for standard input"`
	Filter string `help:"Print only lines matching the expression" placeholder:"EXPR"    short:"e"`
	File   string `help:"Print only files matching the fuzzy pattern" placeholder:"PATTERN" short:"F"`
	NoSync bool   `help:"Do not read source files"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := query.Compile(l.Filter)
	if err != nil {
		return ErrFilter.Wrap(err)
	}

	p, err := load(ctx, l.Trace, l.NoSync)
	if err != nil {
		return err
	}

	var rows [][3]string

	err = selectItems(p, filter, l.File, func(item profile.Item) {
		ck, addr, src := view.Columns(p, item)
		rows = append(rows, [3]string{ck, addr, src})
	})
	if err != nil {
		return err
	}

	if err := writeRows(outputFrom(ctx), rows); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// selectItems calls fn with each item of p in order, restricted to the
// files matching pattern and the lines matching filter. A file is kept
// only while at least one of its lines is.
func selectItems(
	p *profile.Profile,
	filter *query.Filter,
	pattern string,
	fn func(profile.Item),
) error {
	files := matchFiles(p, pattern)

	for s := range p.FileSections() {
		if files != nil && !files[s.ID()] {
			continue
		}

		ok, err := filter.MatchSection(p, s)
		if err != nil {
			return ErrFilter.Wrap(err)
		}

		if !ok {
			continue
		}

		for item := range s.Items() {
			if !item.IsFile() {
				ok, err := filter.Match(p, item)
				if err != nil {
					return ErrFilter.Wrap(err)
				}

				if !ok {
					continue
				}
			}

			fn(item)
		}
	}

	return nil
}

// matchFiles returns the files of p whose path fuzzily matches pattern, or
// nil when there is no pattern.
func matchFiles(p *profile.Profile, pattern string) map[profile.FileID]bool {
	if pattern == "" {
		return nil
	}

	var (
		ids   []profile.FileID
		paths []string
	)

	for id, info := range p.Files().All() {
		ids = append(ids, id)
		paths = append(paths, info.Path.Expand())
	}

	keep := make(map[profile.FileID]bool)
	for _, m := range fuzzy.Find(pattern, paths) {
		keep[ids[m.Index]] = true
	}

	return keep
}

// addrColumn is the width of a formatted [profile.AddrRange].
const addrColumn = 24

func writeRows(w io.Writer, rows [][3]string) error {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}

	bw := bufio.NewWriter(w)

	for _, r := range rows {
		line := fmt.Sprintf("%-*s  %-*s  %s", width, r[0], addrColumn, r[1], r[2])
		if _, err := bw.WriteString(strings.TrimRight(line, " ") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
