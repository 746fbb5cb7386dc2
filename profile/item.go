package profile

// Kind distinguishes file headers from source lines.
type Kind uint8

const (
	KindFile Kind = iota // file
	KindLine             // line
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Item is one element of a [Profile]: either the header of a file, or a
// line of that file.
type Item struct {
	// Line is the zero value for file items.
	Line LineInfo
	File FileID
	Kind Kind
}

// FileItem returns the header item of file id.
func FileItem(id FileID) Item {
	return Item{File: id, Kind: KindFile}
}

// LineItem returns an item for line in file id.
func LineItem(id FileID, line LineInfo) Item {
	return Item{File: id, Kind: KindLine, Line: line}
}

// IsFile reports whether i is a file header.
func (i Item) IsFile() bool { return i.Kind == KindFile }

// SameFile reports whether i and o belong to the same file.
func (i Item) SameFile(o Item) bool { return i.File == o.File }

// Equal reports whether i and o are the same kind of item of the same file,
// and for lines, whether the lines are identical.
func (i Item) Equal(o Item) bool {
	if i.Kind != o.Kind || i.File != o.File {
		return false
	}

	return i.Kind == KindFile || i.Line.Equal(o.Line)
}
