package profile

import (
	"cmp"
	"path/filepath"
)

// UnknownName is the name the trace records for a file or function that has
// no debug information.
const UnknownName = "???"

// PathInfo identifies a source file by directory and file name.
type PathInfo struct {
	Directory string
	File      string
}

// NewPathInfo returns the path of file in dir.
// The directory of an unknown file is always empty, so every unknown file
// shares one identity.
func NewPathInfo(dir, file string) PathInfo {
	if file == UnknownName {
		dir = ""
	}

	return PathInfo{Directory: dir, File: file}
}

// IsUnknown reports whether p names the unknown file.
func (p PathInfo) IsUnknown() bool { return p.File == UnknownName }

// Expand joins the directory and file name into a filesystem path.
// An absolute file name is returned as is.
func (p PathInfo) Expand() string {
	if p.Directory == "" || filepath.IsAbs(p.File) {
		return p.File
	}

	return filepath.Join(p.Directory, p.File)
}

// Compare orders paths lexicographically by directory, then file name.
func (p PathInfo) Compare(o PathInfo) int {
	return cmp.Or(
		cmp.Compare(p.Directory, o.Directory),
		cmp.Compare(p.File, o.File),
	)
}

func (p PathInfo) String() string { return p.Expand() }
