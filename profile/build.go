package profile

import (
	"iter"
	"log/slog"
)

// Record is one line record of a trace.
type Record struct {
	// File is the file name as recorded, or [UnknownName].
	File string
	// Function is the enclosing function, or [UnknownName].
	Function string
	// Checkpoints lists the ids of the checkpoints that executed the line.
	Checkpoints []uint32
	Line        int
	AddrMin     uint64
	AddrMax     uint64
}

// Builder accumulates records into a [Profile].
type Builder struct {
	profile *Profile
	opts    options
	records int
}

// NewBuilder returns a builder for a profile with the given checkpoint
// names.
func NewBuilder(names []string, opts ...Option) *Builder {
	return &Builder{
		profile: New(NewFiles(), names...),
		opts:    makeOptions(opts...),
	}
}

// Add inserts the file of r, if it is new, and a line item for r.
// A record with the same ordering key as an earlier record replaces it.
func (b *Builder) Add(r Record) {
	fs := b.profile.files

	id, created := fs.Intern(NewPathInfo(b.opts.directory, r.File))
	if created {
		b.profile.Insert(FileItem(id))

		b.opts.logger.Trace("file added",
			slog.String("file", r.File),
			slog.Int("id", int(id)),
		)
	}

	set := SetOf(r.Checkpoints...)
	fs.merge(id, set)

	line := LineInfo{
		Nb:           r.Line,
		AddrRange:    AddrRange{Min: r.AddrMin, Max: r.AddrMax},
		Checkpoints:  set,
		HasDebugInfo: fs.Info(id).HasDebugInfo,
	}

	if r.Function != "" && r.Function != UnknownName {
		line.Function = stringRef(r.Function)
	}

	b.profile.Insert(LineItem(id, line))
	b.records++
}

// Profile returns the profile built so far. The builder must not be used
// after the profile is handed to concurrent readers.
func (b *Builder) Profile() *Profile {
	b.opts.logger.Debug("profile built",
		slog.Int("records", b.records),
		slog.Int("files", b.profile.files.Len()),
		slog.Int("items", b.profile.Len()),
	)

	return b.profile
}

// Build returns the profile of the given records.
func Build(names []string, records iter.Seq[Record], opts ...Option) *Profile {
	b := NewBuilder(names, opts...)

	for r := range records {
		b.Add(r)
	}

	return b.Profile()
}
