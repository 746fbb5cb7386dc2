package profile

import (
	"slices"
	"testing"
)

func TestBuild_AggregatesFileCheckpoints(t *testing.T) {
	p := Build([]string{"A", "B", "C"}, slices.Values([]Record{
		{File: "x.c", Function: "f", Line: 1, Checkpoints: []uint32{0}},
		{File: "x.c", Function: "f", Line: 2, Checkpoints: []uint32{2, 0}},
		{File: "y.c", Function: "g", Line: 1, Checkpoints: []uint32{1}},
	}))

	tests := []struct {
		file string
		want Set
	}{
		{"x.c", SetOf(0, 2)},
		{"y.c", SetOf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			id, ok := p.Files().Lookup(NewPathInfo("", tt.file))
			if !ok {
				t.Fatalf("file %s not found", tt.file)
			}

			if got := p.File(id).Checkpoints; !got.Equal(tt.want) {
				t.Errorf("checkpoints = %v, want %v", got, tt.want)
			}
		})
	}

	if p.Len() != 5 {
		t.Errorf("Len() = %d, want 5", p.Len())
	}
}

func TestBuild_OneFileItemPerFile(t *testing.T) {
	p := Build(nil, slices.Values([]Record{
		{File: "x.c", Function: "f", Line: 3},
		{File: "x.c", Function: "f", Line: 1},
		{File: "x.c", Function: "g", Line: 2},
	}))

	files := 0
	for item := range p.Items() {
		if item.IsFile() {
			files++
		}
	}

	if files != 1 {
		t.Errorf("profile has %d file items, want 1", files)
	}
}

func TestBuild_LaterRecordReplacesEarlier(t *testing.T) {
	p := Build(nil, slices.Values([]Record{
		{File: "x.c", Function: "f", Line: 4, AddrMin: 1, AddrMax: 2},
		{File: "x.c", Function: "g", Line: 4, AddrMin: 3, AddrMax: 4},
	}))

	lines := slices.Collect(p.FileSection(FileItem(0)).Lines())
	if len(lines) != 1 {
		t.Fatalf("section has %d lines, want 1", len(lines))
	}

	if got := lines[0].AddrRange; got != (AddrRange{3, 4}) {
		t.Errorf("AddrRange = %v, want {3 4}", got)
	}

	if got := lines[0].FunctionName(); got != "g" {
		t.Errorf("FunctionName() = %q, want g", got)
	}
}

func TestBuild_UnknownFunctionIsAbsent(t *testing.T) {
	p := Build(nil, slices.Values([]Record{
		{File: UnknownName, Function: UnknownName, Line: 1},
		{File: "x.c", Function: "f", Line: 1},
	}))

	for item := range p.Items() {
		if item.IsFile() {
			continue
		}

		info := p.File(item.File)

		if item.Line.HasDebugInfo != info.HasDebugInfo {
			t.Errorf("%s: line HasDebugInfo = %v, file = %v",
				info.Path, item.Line.HasDebugInfo, info.HasDebugInfo)
		}

		if info.Path.IsUnknown() && item.Line.Function != nil {
			t.Errorf("unknown function recorded as %q", *item.Line.Function)
		}
	}
}

func TestBuild_WithDirectory(t *testing.T) {
	p := Build(nil, slices.Values([]Record{
		{File: "x.c", Line: 1},
		{File: UnknownName, Line: 1},
	}), WithDirectory("src"))

	for _, info := range p.Files().All() {
		want := "src"
		if info.Path.IsUnknown() {
			want = ""
		}

		if info.Path.Directory != want {
			t.Errorf("%s: Directory = %q, want %q", info.Path.File, info.Path.Directory, want)
		}
	}
}
