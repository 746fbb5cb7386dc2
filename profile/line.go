package profile

import (
	"cmp"
	"fmt"
	"log/slog"
)

// AddrRange is the span of instruction addresses executed for one line.
type AddrRange struct {
	Min, Max uint64
}

// IsZero reports whether r is the empty range (0, 0).
func (r AddrRange) IsZero() bool { return r.Min == 0 && r.Max == 0 }

// String formats r as two zero-padded hexadecimal addresses, or returns an
// empty string for the zero range.
func (r AddrRange) String() string {
	if r.IsZero() {
		return ""
	}

	return fmt.Sprintf("%010x -> %010x", r.Min, r.Max)
}

// LineInfo describes one source line of a file.
type LineInfo struct {
	// Content is the text of the line, nil until the profile is synced.
	Content *string

	// Function is the enclosing function, nil when unknown.
	Function *string

	Checkpoints Set
	AddrRange   AddrRange

	// Nb is the 1-based line number. It is not validated.
	Nb int

	// HasDebugInfo selects the ordering rule, see [LineInfo.Compare].
	HasDebugInfo bool
}

// Compare orders lines by number when the receiver has debug information
// or both lines belong to the same function. Otherwise lines are ordered by
// function with [CompareFunction].
func (l LineInfo) Compare(o LineInfo) int {
	fn := CompareFunction(l.Function, o.Function)
	if l.HasDebugInfo || fn == 0 {
		return cmp.Compare(l.Nb, o.Nb)
	}

	return fn
}

// CompareFunction compares two optional function names.
// Present names compare lexicographically and an absent name is greater
// than any present name.
func CompareFunction(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return +1
	case b == nil:
		return -1
	}

	return cmp.Compare(*a, *b)
}

// Equal reports whether l and o are identical in every field.
func (l LineInfo) Equal(o LineInfo) bool {
	return l.Nb == o.Nb &&
		l.AddrRange == o.AddrRange &&
		l.HasDebugInfo == o.HasDebugInfo &&
		equalString(l.Content, o.Content) &&
		equalString(l.Function, o.Function) &&
		l.Checkpoints.Equal(o.Checkpoints)
}

// Text returns the content of the line, or an empty string when the content
// is unknown.
func (l LineInfo) Text() string {
	if l.Content == nil {
		return ""
	}

	return *l.Content
}

// FunctionName returns the enclosing function, or [UnknownName].
func (l LineInfo) FunctionName() string {
	if l.Function == nil {
		return UnknownName
	}

	return *l.Function
}

// LogValue implements [slog.LogValuer].
func (l LineInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("nb", l.Nb),
		slog.String("function", l.FunctionName()),
		slog.String("addr", l.AddrRange.String()),
		slog.Any("checkpoints", []uint32(l.Checkpoints)),
	)
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

func stringRef(s string) *string { return &s }
