package trace

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrParse     = NewError("parse error")
	ErrReadInput = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.err == nil && len(t.attrs) == 0 && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...),
	}
}

// ParseError locates a malformed line of a trace.
type ParseError struct {
	Name   string // input name, empty for anonymous readers
	Msg    string
	Text   string // the offending line
	Line   int    // 1-based
	Column int    // 1-based, 0 if unknown
}

// Error formats the position, the message, and a snippet of the line with
// a marker under the offending column.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error")

	if e.Name != "" {
		buf.WriteString(" in ")
		buf.WriteString(e.Name)
	}

	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(e.Line))

	if e.Column > 0 {
		buf.WriteString(", column ")
		buf.WriteString(strconv.Itoa(e.Column))
	}

	buf.WriteString(": ")
	buf.WriteString(e.Msg)

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteByte('\n')
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Snippet returns the offending line prefixed by its number, followed by
// a caret under the offending column.
func (e *ParseError) Snippet() string {
	if e.Text == "" {
		return ""
	}

	num := strconv.Itoa(e.Line)

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(e.Text)

	if e.Column > 0 {
		buf.WriteByte('\n')
		// 2 leading spaces + " | "
		buf.WriteString(strings.Repeat(" ", len(num)+5+e.Column-1))
		buf.WriteByte('^')
	}

	return buf.String()
}

// Unwrap returns [ErrParse].
func (e *ParseError) Unwrap() error { return ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Msg),
		slog.Int("line", e.Line),
	}

	if e.Column > 0 {
		attrs = append(attrs, slog.Int("column", e.Column))
	}

	if e.Name != "" {
		attrs = append(attrs, slog.String("name", e.Name))
	}

	return slog.GroupValue(attrs...)
}
