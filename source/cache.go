package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/ckview/log"
	"github.com/ardnew/ckview/profile"
)

// Cache reads source files and caches their lines.
// A Cache is safe for concurrent use.
type Cache struct {
	logger  log.Logger
	entries map[string]entry
	search  []string
	mu      sync.Mutex
}

type entry struct {
	lines []string
	sum   uint64
}

// Option configures a [Cache].
type Option func(*Cache)

// WithSearchPath appends directories tried, in order, after the directory
// recorded for a file.
func WithSearchPath(dirs ...string) Option {
	return func(c *Cache) { c.search = append(c.search, dirs...) }
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// NewCache returns an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{entries: make(map[string]entry)}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchPath returns the directories searched for relative file names.
func (c *Cache) SearchPath() []string { return slices.Clone(c.search) }

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Reset drops every cached file.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Resolve returns the name of the regular file path refers to.
//
// An absolute file name is used as is. Otherwise the file is looked up
// under the recorded directory, or the working directory when none was
// recorded, and then under each search path directory.
func (c *Cache) Resolve(path profile.PathInfo) (string, error) {
	if path.IsUnknown() {
		return "", ErrNotFound.With(slog.String("file", path.File))
	}

	candidates := []string{path.Expand()}

	if !filepath.IsAbs(path.File) {
		for _, dir := range c.search {
			candidates = append(candidates, filepath.Join(dir, path.File))
		}
	}

	for _, name := range candidates {
		if isFile(name) {
			return name, nil
		}
	}

	return "", ErrNotFound.With(
		slog.String("file", path.Expand()),
		slog.Int("searched", len(candidates)),
	)
}

// ReadLines implements [profile.SourceReader]. The returned slice is
// shared with the cache and must not be modified.
func (c *Cache) ReadLines(ctx context.Context, path profile.PathInfo) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("file", name))
	}

	sum := xxh3.Hash(data)
	attrs := []slog.Attr{
		slog.String("file", name),
		slog.String("sum", strconv.FormatUint(sum, 36)),
	}

	c.mu.Lock()
	prev, cached := c.entries[name]
	c.mu.Unlock()

	if cached && prev.sum == sum {
		c.logger.TraceContext(ctx, "source cache hit", attrs...)

		return prev.lines, nil
	}

	lines := profile.SplitLines(data)

	c.mu.Lock()
	c.entries[name] = entry{lines: lines, sum: sum}
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "source cached",
		append(attrs, slog.Int("lines", len(lines)), slog.Bool("changed", cached))...)

	return lines, nil
}
