package profile

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"
)

// SourceReader provides the physical lines of source files.
type SourceReader interface {
	// ReadLines returns the lines of the file at path without line
	// terminators. An empty file has no lines.
	ReadLines(ctx context.Context, path PathInfo) ([]string, error)
}

// FileReader reads source files directly from the local filesystem.
type FileReader struct{}

// ReadLines implements [SourceReader].
func (FileReader) ReadLines(_ context.Context, path PathInfo) ([]string, error) {
	data, err := os.ReadFile(path.Expand())
	if err != nil {
		return nil, err
	}

	return SplitLines(data), nil
}

// SplitLines splits data into lines of any length. Lines end at "\n" or
// "\r\n"; the terminator is not included and a final terminator does not
// start an empty line.
func SplitLines(data []byte) []string {
	var lines []string

	for line := range bytes.Lines(data) {
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		lines = append(lines, string(line))
	}

	return lines
}

// SyncStats counts the outcome of [Profile.Synced].
type SyncStats struct {
	// Synced is the number of sections merged with file contents.
	Synced int
	// PassThrough is the number of sections copied unchanged, either
	// because the file has no debug information or could not be read.
	PassThrough int
	// Filled is the number of lines synthesized for unrecorded lines.
	Filled int
	// Dropped is the number of records that matched no physical line.
	Dropped int
}

func (s *SyncStats) add(o SyncStats) {
	s.Synced += o.Synced
	s.PassThrough += o.PassThrough
	s.Filled += o.Filled
	s.Dropped += o.Dropped
}

// LogValue implements [slog.LogValuer].
func (s SyncStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("synced", s.Synced),
		slog.Int("pass_through", s.PassThrough),
		slog.Int("filled", s.Filled),
		slog.Int("dropped", s.Dropped),
	)
}

// Synced returns a new profile in which every section of a readable file
// with debug information holds exactly one line per physical line of the
// file. Recorded lines keep their data and gain their content; unrecorded
// lines are filled with empty records. Records numbered below 1 or past
// the end of the file are dropped with a warning.
//
// Sections are merged concurrently. The receiver is not modified, and the
// result shares its file arena.
func (p *Profile) Synced(ctx context.Context, opts ...Option) *Profile {
	o := makeOptions(opts...)

	sections := slices.Collect(p.FileSections())
	results := make([][]Item, len(sections))
	stats := make([]SyncStats, len(sections))

	var g errgroup.Group

	g.SetLimit(o.jobs)

	for i, s := range sections {
		g.Go(func() error {
			results[i], stats[i] = syncSection(ctx, s, o)

			return nil
		})
	}

	_ = g.Wait()

	synced := New(p.files, p.names...)

	var total SyncStats

	for i := range sections {
		for _, item := range results[i] {
			synced.Insert(item)
		}

		total.add(stats[i])
	}

	o.logger.DebugContext(ctx, "profile synced",
		slog.Int("sections", len(sections)),
		slog.Int("items", synced.Len()),
		slog.Any("stats", total),
	)

	if o.stats != nil {
		*o.stats = total
	}

	return synced
}

// syncSection merges the lines of section s with the lines of its file.
func syncSection(
	ctx context.Context,
	s Section,
	o options,
) ([]Item, SyncStats) {
	var stats SyncStats

	file := s.File()
	items := slices.Collect(s.Items())

	if !file.HasDebugInfo {
		stats.PassThrough++

		return items, stats
	}

	lines, err := o.reader.ReadLines(ctx, file.Path)
	if err != nil {
		o.logger.DebugContext(ctx, "source unavailable",
			slog.String("path", file.Path.Expand()),
			slog.Any("error", err),
		)

		stats.PassThrough++

		return items, stats
	}

	stats.Synced++

	records := items
	if len(records) > 0 && records[0].IsFile() {
		records = records[1:]
	}

	out := make([]Item, 0, len(lines)+1)
	out = append(out, s.Head())

	var skipped []int

	for i, text := range lines {
		nb := i + 1

		for len(records) > 0 && records[0].Line.Nb < nb {
			skipped = append(skipped, records[0].Line.Nb)
			records = records[1:]
		}

		if len(records) > 0 && records[0].Line.Nb == nb {
			line := records[0].Line
			line.Content = stringRef(text)
			line.Checkpoints = line.Checkpoints.Clone()
			records = records[1:]

			out = append(out, LineItem(s.file, line))

			continue
		}

		stats.Filled++

		out = append(out, LineItem(s.file, LineInfo{
			Nb:           nb,
			Content:      stringRef(text),
			HasDebugInfo: true,
		}))
	}

	if len(skipped) > 0 {
		stats.Dropped += len(skipped)

		o.logger.WarnContext(ctx, "records without a physical line",
			slog.String("path", file.Path.Expand()),
			slog.Int("dropped", len(skipped)),
			slog.Any("lines", skipped),
		)
	}

	if len(records) > 0 {
		stats.Dropped += len(records)

		o.logger.WarnContext(ctx, "records beyond end of file",
			slog.String("path", file.Path.Expand()),
			slog.Int("lines", len(lines)),
			slog.Int("dropped", len(records)),
			slog.Int("last", records[len(records)-1].Line.Nb),
		)
	}

	return out, stats
}
