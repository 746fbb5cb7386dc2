package profile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ardnew/ckview/log"
)

// helloRecords are the records traced from testdata/hello/hello.c between
// checkpoints memviz_begin (0) and Before_hello (1).
var helloRecords = []Record{
	{File: "hello.c", Function: "main", Line: 9, AddrMin: 0x1089ac, AddrMax: 0x1089c4, Checkpoints: []uint32{0}},
	{File: "hello.c", Function: "main", Line: 11, AddrMin: 0x1089c6, AddrMax: 0x1089cb, Checkpoints: []uint32{0}},
	{File: "hello.c", Function: "main", Line: 13, AddrMin: 0x1089d1, AddrMax: 0x108a29, Checkpoints: []uint32{0, 1}},
	{File: "hello.c", Function: "main", Line: 15, AddrMin: 0x108a2d, AddrMax: 0x108a34, Checkpoints: []uint32{1}},
	{File: "hello.c", Function: "main", Line: 19, AddrMin: 0x108a4e, AddrMax: 0x108a55, Checkpoints: []uint32{1}},
}

func helloProfile() *Profile {
	return Build(
		[]string{"memviz_begin", "Before_hello"},
		slices.Values(helloRecords),
		WithDirectory(filepath.Join("testdata", "hello")),
	)
}

func TestProfile_Synced_HelloWorld(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "hello", "hello.c"))
	if err != nil {
		t.Fatal(err)
	}

	physical := SplitLines(data)
	if len(physical) != 25 {
		t.Fatalf("fixture has %d lines, want 25", len(physical))
	}

	recorded := make(map[int]Record)
	for _, r := range helloRecords {
		recorded[r.Line] = r
	}

	var stats SyncStats

	synced := helloProfile().Synced(context.Background(), WithStats(&stats))

	items := slices.Collect(synced.Items())
	if len(items) != 26 {
		t.Fatalf("synced profile has %d items, want 26", len(items))
	}

	if !items[0].IsFile() {
		t.Fatalf("first item is not a file: %+v", items[0])
	}

	for nb := 1; nb <= 25; nb++ {
		line := items[nb].Line

		want := LineInfo{
			Nb:           nb,
			Content:      stringRef(physical[nb-1]),
			HasDebugInfo: true,
		}

		if r, ok := recorded[nb]; ok {
			want.AddrRange = AddrRange{r.AddrMin, r.AddrMax}
			want.Function = stringRef(r.Function)
			want.Checkpoints = SetOf(r.Checkpoints...)
		}

		if !line.Equal(want) {
			t.Errorf("line %d = %+v, want %+v", nb, line, want)
		}
	}

	if got := items[13].Line.Checkpoints; !got.Equal(SetOf(0, 1)) {
		t.Errorf("line 13 checkpoints = %v, want [0 1]", got)
	}

	if got := items[14].Line.Text(); got != "    " {
		t.Errorf("line 14 content = %q, want four spaces", got)
	}

	want := SyncStats{Synced: 1, Filled: 20}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestProfile_Synced_Idempotent(t *testing.T) {
	once := helloProfile().Synced(context.Background())
	twice := once.Synced(context.Background())

	a := slices.Collect(once.Items())
	b := slices.Collect(twice.Items())

	if !slices.EqualFunc(a, b, Item.Equal) {
		t.Error("synchronizing twice changed the profile")
	}
}

func TestProfile_Synced_DoesNotModifyReceiver(t *testing.T) {
	p := helloProfile()
	before := slices.Collect(p.Items())

	_ = p.Synced(context.Background())

	after := slices.Collect(p.Items())
	if !slices.EqualFunc(before, after, Item.Equal) {
		t.Error("Synced() modified the receiver")
	}

	for _, item := range after {
		if item.Line.Content != nil {
			t.Errorf("receiver line %d gained content", item.Line.Nb)
		}
	}
}

func TestProfile_Synced_PassThrough(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{
			name: "unreadable file",
			records: []Record{
				{File: "missing.c", Function: "f", Line: 3},
				{File: "missing.c", Function: "f", Line: 1},
			},
		},
		{
			name: "unknown file",
			records: []Record{
				{File: UnknownName, Function: "g", Line: 7},
				{File: UnknownName, Function: UnknownName, Line: 2},
				{File: UnknownName, Function: "f", Line: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(nil, slices.Values(tt.records), WithDirectory(t.TempDir()))

			var stats SyncStats

			synced := p.Synced(context.Background(), WithStats(&stats))

			a := slices.Collect(p.Items())
			b := slices.Collect(synced.Items())

			if !slices.EqualFunc(a, b, Item.Equal) {
				t.Errorf("section changed:\n got %+v\nwant %+v", b, a)
			}

			if stats.PassThrough != 1 || stats.Synced != 0 {
				t.Errorf("stats = %+v, want one pass-through", stats)
			}
		})
	}
}

func TestProfile_Synced_UnknownFileOrdersByFunction(t *testing.T) {
	p := Build(nil, slices.Values([]Record{
		{File: UnknownName, Function: UnknownName, Line: 1},
		{File: UnknownName, Function: "g", Line: 2},
		{File: UnknownName, Function: "f", Line: 3},
		{File: "a.c", Function: "f", Line: 1},
	}))

	var got []string
	for item := range p.Items() {
		if item.IsFile() {
			got = append(got, p.File(item.File).Path.File)

			continue
		}

		got = append(got, item.Line.FunctionName())
	}

	want := []string{UnknownName, "f", "g", UnknownName, "a.c", "f"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// staticReader serves fixed file contents and counts reads.
type staticReader struct {
	files map[string][]string
	reads atomic.Int32
}

func (r *staticReader) ReadLines(_ context.Context, path PathInfo) ([]string, error) {
	r.reads.Add(1)

	lines, ok := r.files[path.Expand()]
	if !ok {
		return nil, os.ErrNotExist
	}

	return lines, nil
}

func TestProfile_Synced_DropsRecordsBeyondEOF(t *testing.T) {
	reader := &staticReader{files: map[string][]string{
		"short.c": {"int a;", "int b;"},
	}}

	p := Build(nil, slices.Values([]Record{
		{File: "short.c", Function: "f", Line: 0},
		{File: "short.c", Function: "f", Line: 2, Checkpoints: []uint32{0}},
		{File: "short.c", Function: "f", Line: 5},
		{File: "short.c", Function: "f", Line: 8},
	}))

	var (
		stats SyncStats
		out   bytes.Buffer
	)

	synced := p.Synced(context.Background(),
		WithReader(reader),
		WithStats(&stats),
		WithLogger(log.Make(&out, log.WithTimeLayout("none"), log.WithPretty(false))),
	)

	var nbs []int
	for line := range synced.FileSection(FileItem(0)).Lines() {
		nbs = append(nbs, line.Nb)
	}

	if !slices.Equal(nbs, []int{1, 2}) {
		t.Errorf("line numbers = %v, want [1 2]", nbs)
	}

	want := SyncStats{Synced: 1, Filled: 1, Dropped: 3}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	for _, msg := range []string{"records without a physical line", "records beyond end of file"} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("log output is missing %q:\n%s", msg, out.String())
		}
	}
}

func TestProfile_Synced_LongLine(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 2<<20)

	err := os.WriteFile(filepath.Join(dir, "long.c"), []byte("int a;\n"+long+"\nint b;\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	p := Build(nil, slices.Values([]Record{
		{File: "long.c", Function: "f", Line: 3},
	}), WithDirectory(dir))

	var stats SyncStats

	synced := p.Synced(context.Background(), WithStats(&stats))

	lines := slices.Collect(synced.FileSection(FileItem(0)).Lines())
	if len(lines) != 3 {
		t.Fatalf("synced section has %d lines, want 3", len(lines))
	}

	if got := lines[1].Text(); got != long {
		t.Errorf("line 2 has %d bytes, want %d", len(got), len(long))
	}

	if got := lines[2].Text(); got != "int b;" || lines[2].FunctionName() != "f" {
		t.Errorf("line 3 = %q in %q, want the recorded line", got, lines[2].FunctionName())
	}

	if want := (SyncStats{Synced: 1, Filled: 2}); stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestProfile_Synced_CopiesCheckpoints(t *testing.T) {
	p := helloProfile()
	synced := p.Synced(context.Background())

	key := LineItem(0, LineInfo{Nb: 13, HasDebugInfo: true})

	got, ok := synced.Find(key)
	if !ok {
		t.Fatal("line 13 missing from the synced profile")
	}

	got.Line.Checkpoints[0] = 7

	orig, _ := p.Find(key)
	if want := SetOf(0, 1); !orig.Line.Checkpoints.Equal(want) {
		t.Errorf("receiver checkpoints = %v, want %v", orig.Line.Checkpoints, want)
	}
}

func TestProfile_Synced_EmptyFile(t *testing.T) {
	reader := &staticReader{files: map[string][]string{"empty.c": nil}}

	p := Build(nil, slices.Values([]Record{
		{File: "empty.c", Function: "f", Line: 1},
	}))

	synced := p.Synced(context.Background(), WithReader(reader))

	items := slices.Collect(synced.Items())
	if len(items) != 1 || !items[0].IsFile() {
		t.Errorf("items = %+v, want only the file item", items)
	}
}

func TestProfile_Synced_ManyFilesConcurrently(t *testing.T) {
	const n = 32

	reader := &staticReader{files: make(map[string][]string)}

	var records []Record

	for i := range n {
		name := string(rune('a'+i%26)) + string(rune('0'+i/26)) + ".c"
		reader.files[name] = []string{"one", "two", "three"}
		records = append(records, Record{File: name, Function: "f", Line: 2})
	}

	p := Build(nil, slices.Values(records))

	synced := p.Synced(context.Background(), WithReader(reader), WithJobs(4))

	if got := reader.reads.Load(); got != n {
		t.Errorf("reads = %d, want %d", got, n)
	}

	if synced.Len() != n*4 {
		t.Errorf("Len() = %d, want %d", synced.Len(), n*4)
	}

	sections := 0
	for s := range synced.FileSections() {
		sections++

		if s.Len() != 4 {
			t.Errorf("section %s has %d items, want 4", s.File().Path, s.Len())
		}
	}

	if sections != n {
		t.Errorf("sections = %d, want %d", sections, n)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"empty", "", nil},
		{"no terminator", "a", []string{"a"}},
		{"trailing terminator", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines", "\n\nx", []string{"", "", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines([]byte(tt.data));  !slices.Equal(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestFileReader_MissingFile(t *testing.T) {
	_, err := FileReader{}.ReadLines(context.Background(), NewPathInfo(t.TempDir(), "nope.c"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadLines() error = %v, want not exist", err)
	}
}
