package profile

import (
	"iter"
	"log/slog"
)

// FileInfo describes one source file referenced by the trace.
type FileInfo struct {
	Path PathInfo

	// Checkpoints is the union of the checkpoint sets of every record of
	// the file.
	Checkpoints Set

	// HasDebugInfo is false only for the unknown file.
	HasDebugInfo bool
}

// NewFileInfo returns the description of the file at path with no
// checkpoints.
func NewFileInfo(path PathInfo) FileInfo {
	return FileInfo{
		Path:         path,
		HasDebugInfo: !path.IsUnknown(),
	}
}

// Compare orders files by path, except that the unknown file sorts before
// every other file.
func (f FileInfo) Compare(o FileInfo) int {
	c := f.Path.Compare(o.Path)
	if c == 0 {
		return 0
	}

	switch {
	case f.Path.IsUnknown():
		return -1
	case o.Path.IsUnknown():
		return +1
	}

	return c
}

// LogValue implements [slog.LogValuer].
func (f FileInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", f.Path.Expand()),
		slog.Bool("debug_info", f.HasDebugInfo),
		slog.Int("checkpoints", f.Checkpoints.Len()),
	)
}

// FileID is the index of a [FileInfo] in a [Files] arena.
type FileID int32

// Files is an arena of interned [FileInfo] values.
//
// Files may be read from many goroutines at once, but must not be modified
// while any reader is active.
type Files struct {
	info  []FileInfo
	index map[PathInfo]FileID
}

// NewFiles returns an empty arena.
func NewFiles() *Files {
	return &Files{index: make(map[PathInfo]FileID)}
}

// Intern returns the id of the file at path, adding it to the arena if it
// is not yet known. The second result reports whether the file was added.
func (fs *Files) Intern(path PathInfo) (FileID, bool) {
	if id, ok := fs.index[path]; ok {
		return id, false
	}

	id := FileID(len(fs.info))

	fs.info = append(fs.info, NewFileInfo(path))
	fs.index[path] = id

	return id, true
}

// Lookup returns the id of the file at path.
func (fs *Files) Lookup(path PathInfo) (FileID, bool) {
	id, ok := fs.index[path]

	return id, ok
}

// Info returns the description of file id.
func (fs *Files) Info(id FileID) FileInfo {
	if int(id) < 0 || int(id) >= len(fs.info) {
		return NewFileInfo(NewPathInfo("", UnknownName))
	}

	return fs.info[id]
}

// Len returns the number of files in the arena.
func (fs *Files) Len() int { return len(fs.info) }

// All returns an iterator over every file in the arena in id order.
func (fs *Files) All() iter.Seq2[FileID, FileInfo] {
	return func(yield func(FileID, FileInfo) bool) {
		for i, info := range fs.info {
			if !yield(FileID(i), info) {
				return
			}
		}
	}
}

// merge adds the ids of set to the aggregate checkpoints of file id.
func (fs *Files) merge(id FileID, set Set) {
	if set.Len() == 0 {
		return
	}

	fs.info[id].Checkpoints = fs.info[id].Checkpoints.Union(set)
}

// Compare orders items by file, then by kind, then by line.
func (fs *Files) Compare(a, b Item) int {
	if a.File != b.File {
		if c := fs.Info(a.File).Compare(fs.Info(b.File)); c != 0 {
			return c
		}
	}

	switch {
	case a.Kind == KindFile && b.Kind == KindFile:
		return 0
	case a.Kind == KindFile:
		return -1
	case b.Kind == KindFile:
		return +1
	}

	return a.Line.Compare(b.Line)
}
