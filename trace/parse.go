package trace

import (
	"context"
	"strconv"
	"strings"

	"github.com/ardnew/ckview/profile"
)

const (
	headerCheckpoints = "checkpoints:"
	headerCode        = "code locations:"
	headerFile        = "file:"
	headerFunction    = "function:"
	arrow             = "->"
)

type state uint8

const (
	stateStart       state = iota // before the checkpoints section
	stateCheckpoints              // inside the checkpoints section
	stateCode                     // after "code locations:", before any file
	stateFile                     // inside a file block, before any function
	stateFunction                 // inside a function block
)

// checkInterval is the number of lines parsed between context checks.
const checkInterval = 4096

type parser struct {
	trace    *Trace
	name     string
	file     string
	function string
	text     string // current line
	line     int
	state    state
}

func newParser(name string) *parser {
	return &parser{trace: &Trace{}, name: name}
}

func (p *parser) fail(col int, msg string) *ParseError {
	return &ParseError{
		Name:   p.name,
		Msg:    msg,
		Text:   p.text,
		Line:   p.line,
		Column: col,
	}
}

func (p *parser) parse(ctx context.Context, src string) (*Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for raw := range strings.Lines(src) {
		p.line++
		p.text = strings.TrimRight(raw, "\r\n")

		if p.line%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		body := strings.TrimSpace(p.text)
		if body == "" || body[0] == '#' {
			continue
		}

		if err := p.parseLine(body); err != nil {
			return nil, err
		}
	}

	if p.state < stateCode {
		p.line++
		p.text = ""

		if p.state == stateStart {
			return nil, p.fail(0, "missing checkpoints section")
		}

		return nil, p.fail(0, "missing code locations section")
	}

	return p.trace, nil
}

func (p *parser) parseLine(body string) error {
	col := strings.Index(p.text, body) + 1

	switch {
	case body == headerCheckpoints:
		if p.state != stateStart {
			return p.fail(col, "duplicate checkpoints section")
		}

		p.state = stateCheckpoints

	case body == headerCode:
		switch p.state {
		case stateStart:
			return p.fail(col, "code locations before checkpoints section")
		case stateCheckpoints:
			p.state = stateCode
		default:
			return p.fail(col, "duplicate code locations section")
		}

	case p.state == stateCheckpoints:
		p.trace.Checkpoints = append(p.trace.Checkpoints, body)

	case strings.HasPrefix(body, headerFile):
		if p.state < stateCode {
			return p.fail(col, "file block outside code locations section")
		}

		name, err := p.header(body, headerFile, col)
		if err != nil {
			return err
		}

		p.file, p.function = name, ""
		p.state = stateFile

	case strings.HasPrefix(body, headerFunction):
		if p.state < stateFile {
			return p.fail(col, "function block outside file block")
		}

		name, err := p.header(body, headerFunction, col)
		if err != nil {
			return err
		}

		p.function = name
		p.state = stateFunction

	case p.state == stateFunction:
		return p.record()

	case p.state == stateStart:
		return p.fail(col, "expected "+strconv.Quote(headerCheckpoints))

	default:
		return p.fail(col, "record outside function block")
	}

	return nil
}

func (p *parser) header(body, keyword string, col int) (string, error) {
	name := strings.TrimSpace(body[len(keyword):])
	if name == "" {
		return "", p.fail(col+len(keyword), "missing name after "+strconv.Quote(keyword))
	}

	return name, nil
}

// field is a whitespace-separated token and its 1-based column.
type field struct {
	text string
	col  int
}

func (p *parser) fields() []field {
	var out []field

	start := -1

	for i, c := range p.text + " " {
		space := c == ' ' || c == '\t'

		switch {
		case space && start >= 0:
			out = append(out, field{p.text[start:i], start + 1})
			start = -1
		case !space && start < 0:
			start = i
		}
	}

	return out
}

func (p *parser) record() error {
	f := p.fields()

	if len(f) < 4 {
		col := len(p.text) + 1
		if len(f) > 0 {
			col = f[len(f)-1].col + len(f[len(f)-1].text)
		}

		return p.fail(col, "incomplete record, want LINE ADDR -> ADDR [CHECKPOINT...]")
	}

	nb, err := strconv.Atoi(f[0].text)
	if err != nil || nb < 0 {
		return p.fail(f[0].col, "invalid line number "+strconv.Quote(f[0].text))
	}

	lo, err := parseHex(f[1].text)
	if err != nil {
		return p.fail(f[1].col, "invalid address "+strconv.Quote(f[1].text))
	}

	if f[2].text != arrow {
		return p.fail(f[2].col, "expected "+strconv.Quote(arrow))
	}

	hi, err := parseHex(f[3].text)
	if err != nil {
		return p.fail(f[3].col, "invalid address "+strconv.Quote(f[3].text))
	}

	ids := make([]uint32, 0, len(f)-4)

	for _, c := range f[4:] {
		id, err := strconv.ParseUint(c.text, 10, 32)
		if err != nil {
			return p.fail(c.col, "invalid checkpoint id "+strconv.Quote(c.text))
		}

		if id >= uint64(len(p.trace.Checkpoints)) {
			return p.fail(c.col, "undeclared checkpoint id "+c.text)
		}

		ids = append(ids, uint32(id))
	}

	p.trace.Records = append(p.trace.Records, profile.Record{
		File:        p.file,
		Function:    p.function,
		Checkpoints: ids,
		Line:        nb,
		AddrMin:     lo,
		AddrMax:     hi,
	})

	return nil
}

func parseHex(s string) (uint64, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		digits, ok = strings.CutPrefix(s, "0X")
	}

	if !ok || digits == "" {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseUint(digits, 16, 64)
}
