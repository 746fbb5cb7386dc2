package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/ardnew/ckview/profile"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(name), 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCache_Resolve(t *testing.T) {
	root := t.TempDir()
	recorded := filepath.Join(root, "build")
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")

	writeFile(t, filepath.Join(recorded, "a.c"), "a\n")
	writeFile(t, filepath.Join(first, "b.c"), "first b\n")
	writeFile(t, filepath.Join(second, "b.c"), "second b\n")
	writeFile(t, filepath.Join(second, "c.c"), "c\n")

	c := NewCache(WithSearchPath(first, second))

	tests := []struct {
		name string
		path profile.PathInfo
		want string
	}{
		{"recorded directory", profile.NewPathInfo(recorded, "a.c"), filepath.Join(recorded, "a.c")},
		{"first search dir wins", profile.NewPathInfo(recorded, "b.c"), filepath.Join(first, "b.c")},
		{"later search dir", profile.NewPathInfo("", "c.c"), filepath.Join(second, "c.c")},
		{"absolute", profile.NewPathInfo("/elsewhere", filepath.Join(second, "c.c")), filepath.Join(second, "c.c")},
		{"missing", profile.NewPathInfo(recorded, "z.c"), ""},
		{"unknown", profile.NewPathInfo(recorded, profile.UnknownName), ""},
		{"directory is not a file", profile.NewPathInfo(root, "build"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Resolve(tt.path)

			if tt.want == "" {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Resolve() = %q, %v, want ErrNotFound", got, err)
				}

				return
			}

			if err != nil || got != tt.want {
				t.Errorf("Resolve() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestCache_ReadLines(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "x.c")
	path := profile.NewPathInfo(dir, "x.c")

	writeFile(t, name, "one\ntwo\n")

	c := NewCache()

	lines, err := c.ReadLines(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"one", "two"}; !slices.Equal(lines, want) {
		t.Errorf("ReadLines() = %q, want %q", lines, want)
	}

	again, err := c.ReadLines(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	if &again[0] != &lines[0] {
		t.Error("unchanged file was split again")
	}

	writeFile(t, name, "one\ntwo\nthree")

	changed, err := c.ReadLines(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"one", "two", "three"}; !slices.Equal(changed, want) {
		t.Errorf("ReadLines() after change = %q, want %q", changed, want)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	c.Reset()

	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", c.Len())
	}
}

func TestCache_ReadLinesErrors(t *testing.T) {
	c := NewCache()

	_, err := c.ReadLines(t.Context(), profile.NewPathInfo(t.TempDir(), "absent.c"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file: error = %v, want ErrNotFound", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = c.ReadLines(ctx, profile.NewPathInfo("", "x.c"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: error = %v, want context.Canceled", err)
	}
}

func TestCache_Concurrent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.c"), "a\nb\nc\n")

	c := NewCache()
	path := profile.NewPathInfo(dir, "x.c")

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			lines, err := c.ReadLines(context.Background(), path)
			if err != nil || len(lines) != 3 {
				t.Errorf("ReadLines() = %q, %v", lines, err)
			}
		}()
	}

	wg.Wait()
}

func TestCache_Synced(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.c"), "int x;\nint y;\n")

	p := profile.Build(
		[]string{"start"},
		slices.Values([]profile.Record{{File: "x.c", Function: "f", Line: 2, Checkpoints: []uint32{0}}}),
	)

	var stats profile.SyncStats

	synced := p.Synced(t.Context(),
		profile.WithReader(NewCache(WithSearchPath(dir))),
		profile.WithStats(&stats),
	)

	if synced.Len() != 3 {
		t.Errorf("Len() = %d, want 3", synced.Len())
	}

	if stats.Synced != 1 || stats.Filled != 1 {
		t.Errorf("stats = %+v, want 1 synced and 1 filled", stats)
	}
}
