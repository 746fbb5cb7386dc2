package trace

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/ckview/profile"
)

func TestParseFile_Hello(t *testing.T) {
	tr, err := ParseFile(t.Context(), filepath.Join("testdata", "hello.trace"))
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"memviz_begin", "Before_hello"}; !slices.Equal(tr.Checkpoints, want) {
		t.Errorf("Checkpoints = %v, want %v", tr.Checkpoints, want)
	}

	if len(tr.Records) != 7 {
		t.Fatalf("got %d records, want 7", len(tr.Records))
	}

	got := tr.Records[2]
	want := profile.Record{
		File:        "hello.c",
		Function:    "main",
		Checkpoints: []uint32{0, 1},
		Line:        13,
		AddrMin:     0x1089d1,
		AddrMax:     0x108a29,
	}

	if got.File != want.File || got.Function != want.Function || got.Line != want.Line ||
		got.AddrMin != want.AddrMin || got.AddrMax != want.AddrMax ||
		!slices.Equal(got.Checkpoints, want.Checkpoints) {
		t.Errorf("Records[2] = %+v, want %+v", got, want)
	}

	last := tr.Records[6]
	if last.File != profile.UnknownName || last.Function != "_dl_start" {
		t.Errorf("last record = %+v", last)
	}

	if n := len(slices.Collect(tr.All())); n != len(tr.Records) {
		t.Errorf("All() yields %d records, want %d", n, len(tr.Records))
	}
}

func TestTrace_Profile(t *testing.T) {
	tr, err := ParseFile(t.Context(), filepath.Join("testdata", "hello.trace"))
	if err != nil {
		t.Fatal(err)
	}

	p := tr.Profile()

	// 2 files + 5 hello.c lines; both unknown-file records share
	// line 0 but differ by function.
	if got := p.Len(); got != 9 {
		t.Errorf("Len() = %d, want 9", got)
	}

	var files []string
	for s := range p.FileSections() {
		files = append(files, s.File().Path.File)
	}

	if want := []string{profile.UnknownName, "hello.c"}; !slices.Equal(files, want) {
		t.Errorf("sections = %v, want %v", files, want)
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		names   int
		records int
	}{
		{"empty sections", "checkpoints:\ncode locations:\n", 0, 0},
		{"no trailing newline", "checkpoints:\na\ncode locations:\nfile: x.c\nfunction: f\n1 0x0 -> 0x1 0", 1, 1},
		{"comments and blanks", "\n# header\ncheckpoints:\n  # none\n\ncode locations:\n", 0, 0},
		{"crlf", "checkpoints:\r\na\r\ncode locations:\r\nfile: x.c\r\nfunction: f\r\n2 0xA -> 0xB\r\n", 1, 1},
		{"file without functions", "checkpoints:\ncode locations:\nfile: a.c\nfile: b.c\n", 0, 0},
		{"header-like names", "checkpoints:\nfile:open\nfunction: f\ncode locations:\nfile: x.c\nfunction: f\n1 0x0 -> 0x1 0 1\n", 2, 1},
		{"upper hex prefix", "checkpoints:\na\ncode locations:\nfile: x.c\nfunction: f\n3 0X1f -> 0X2F 0\n", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Parse(t.Context(), strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if len(tr.Checkpoints) != tt.names || len(tr.Records) != tt.records {
				t.Errorf("got %d checkpoints and %d records, want %d and %d",
					len(tr.Checkpoints), len(tr.Records), tt.names, tt.records)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	const head = "checkpoints:\na\ncode locations:\nfile: x.c\nfunction: f\n"

	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		message string
	}{
		{"empty input", "", 1, 0, "missing checkpoints section"},
		{"no code section", "checkpoints:\na\n", 3, 0, "missing code locations section"},
		{"garbage first", "hello\n", 1, 1, `expected "checkpoints:"`},
		{"code first", "code locations:\n", 1, 1, "code locations before checkpoints section"},
		{"duplicate checkpoints", "checkpoints:\ncode locations:\ncheckpoints:\n", 3, 1, "duplicate checkpoints section"},
		{"file first", "file: x.c\n", 1, 1, "file block outside code locations section"},
		{"function outside file", "checkpoints:\ncode locations:\n  function: f\n", 3, 3, "function block outside file block"},
		{"record outside function", "checkpoints:\ncode locations:\nfile: x.c\n1 0x0 -> 0x1\n", 4, 1, "record outside function block"},
		{"missing file name", "checkpoints:\ncode locations:\nfile:\n", 3, 6, `missing name after "file:"`},
		{"short record", head + "1 0x0 ->\n", 6, 9, "incomplete record"},
		{"bad line", head + "x 0x0 -> 0x1\n", 6, 1, `invalid line number "x"`},
		{"negative line", head + "-1 0x0 -> 0x1\n", 6, 1, "invalid line number"},
		{"bad hex", head + "1 12 -> 0x1\n", 6, 3, `invalid address "12"`},
		{"empty hex", head + "1 0x0 -> 0x\n", 6, 10, `invalid address "0x"`},
		{"missing arrow", head + "1 0x0 => 0x1\n", 6, 7, `expected "->"`},
		{"bad checkpoint", head + "1 0x0 -> 0x1 z\n", 6, 14, `invalid checkpoint id "z"`},
		{"undeclared checkpoint", head + "    1 0x0 -> 0x1 0 1\n", 6, 20, "undeclared checkpoint id 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Parse(t.Context(), strings.NewReader(tt.input), WithName("test.trace"))
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", tr)
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not match ErrParse", err)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}

			if pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", pe.Line, pe.Column, tt.line, tt.column)
			}

			if !strings.Contains(pe.Msg, tt.message) {
				t.Errorf("message = %q, want it to contain %q", pe.Msg, tt.message)
			}

			if pe.Name != "test.trace" {
				t.Errorf("Name = %q", pe.Name)
			}
		})
	}
}

func TestParseError_Snippet(t *testing.T) {
	err := &ParseError{Name: "x.trace", Msg: "bad", Text: "  1 0x0 -> 0x1 z", Line: 12, Column: 16}

	want := "parse error in x.trace at line 12, column 16: bad\n" +
		"  12 |   1 0x0 -> 0x1 z\n" +
		"                      ^"

	if got := err.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestParse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Parse(ctx, strings.NewReader("checkpoints:\ncode locations:\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(t.Context(), filepath.Join(t.TempDir(), "absent.trace"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("ParseFile() error = %v, want ErrReadInput", err)
	}

	if errors.Is(err, ErrParse) {
		t.Error("read failure reported as parse error")
	}
}

func TestParse_HeaderLikeCheckpointNames(t *testing.T) {
	const input = "checkpoints:\n  file:open\n  function: exit\ncode locations:\n" +
		"file: x.c\nfunction: f\n1 0x0 -> 0x1 0 1\n"

	tr, err := Parse(t.Context(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if want := []string{"file:open", "function: exit"}; !slices.Equal(tr.Checkpoints, want) {
		t.Errorf("Checkpoints = %q, want %q", tr.Checkpoints, want)
	}

	if len(tr.Records) != 1 || tr.Records[0].File != "x.c" || tr.Records[0].Function != "f" {
		t.Errorf("Records = %+v", tr.Records)
	}
}
