// Package query filters profile lines with boolean expressions.
//
// Expressions use the expr language (https://expr-lang.org) over these
// variables of the line being tested:
//
//	nb           line number
//	file         expanded path of the enclosing file
//	function     enclosing function name, "???" if unknown
//	content      source text, "" if not synchronized
//	addr_min     first instruction address
//	addr_max     last instruction address
//	checkpoints  names of the checkpoints that executed the line
//	debug        whether the file has debug information
//	hit(name)    whether the named checkpoint executed the line
//
// For example:
//
//	hit("Before_hello") && !hit("memviz_begin")
//	len(checkpoints) > 0 && content contains "printf"
package query

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/ckview/profile"
)

// Filter is a compiled line filter. The nil Filter matches every line.
type Filter struct {
	program *vm.Program
	source  string
}

// Compile compiles src into a filter. An empty or blank source yields the
// nil Filter.
func Compile(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	program, err := expr.Compile(src, expr.Env(exemplar()), expr.AsBool())
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", src))
	}

	return &Filter{program: program, source: src}, nil
}

// String returns the source of the filter.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.source
}

// Match reports whether the line item of p satisfies f. File items match
// when f is nil; use [Filter.MatchSection] to test a whole section.
func (f *Filter) Match(p *profile.Profile, item profile.Item) (bool, error) {
	if f == nil {
		return true, nil
	}

	if item.IsFile() {
		return false, nil
	}

	out, err := vm.Run(f.program, environment(p, item))
	if err != nil {
		return false, ErrEvaluate.Wrap(err).With(
			slog.String("source", f.source),
			slog.Int("nb", item.Line.Nb),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// MatchSection reports whether any line of s satisfies f.
func (f *Filter) MatchSection(p *profile.Profile, s profile.Section) (bool, error) {
	if f == nil {
		return true, nil
	}

	for item := range s.Items() {
		if item.IsFile() {
			continue
		}

		ok, err := f.Match(p, item)
		if ok || err != nil {
			return ok, err
		}
	}

	return false, nil
}

func exemplar() map[string]any {
	return map[string]any{
		"nb":          0,
		"file":        "",
		"function":    "",
		"content":     "",
		"addr_min":    uint64(0),
		"addr_max":    uint64(0),
		"checkpoints": []string{},
		"debug":       false,
		"hit":         func(string) bool { return false },
	}
}

func environment(p *profile.Profile, item profile.Item) map[string]any {
	line := item.Line
	names := p.Names(line.Checkpoints)

	return map[string]any{
		"nb":          line.Nb,
		"file":        p.File(item.File).Path.Expand(),
		"function":    line.FunctionName(),
		"content":     line.Text(),
		"addr_min":    line.AddrRange.Min,
		"addr_max":    line.AddrRange.Max,
		"checkpoints": names,
		"debug":       line.HasDebugInfo,
		"hit":         func(name string) bool { return slices.Contains(names, name) },
	}
}
