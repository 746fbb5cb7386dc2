package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ckview/profile"
	"github.com/ardnew/ckview/query"
)

// Export writes a trace as a JSON or YAML document.
type Export struct {
	Trace  string `arg:"" help:"Trace file, or '-' for standard input"`
	Format string `default:"yaml" enum:"json,yaml" help:"Output format"                      short:"o"`
	Indent int    `default:"2"                     help:"Spaces per indentation level"`
	Filter string `help:"Export only lines matching the expression" placeholder:"EXPR" short:"e"`
	NoSync bool   `help:"Do not read source files"`
}

type document struct {
	Checkpoints []string       `json:"checkpoints" yaml:"checkpoints"`
	Files       []fileDocument `json:"files"       yaml:"files"`
}

type fileDocument struct {
	Path        string         `json:"path"        yaml:"path"`
	Checkpoints []string       `json:"checkpoints" yaml:"checkpoints"`
	Lines       []lineDocument `json:"lines"       yaml:"lines"`
	DebugInfo   bool           `json:"debug_info"  yaml:"debug_info"`
}

type lineDocument struct {
	Function    string   `json:"function"          yaml:"function"`
	Content     *string  `json:"content,omitempty" yaml:"content,omitempty"`
	Checkpoints []string `json:"checkpoints"       yaml:"checkpoints"`
	Nb          int      `json:"nb"                yaml:"nb"`
	AddrMin     uint64   `json:"addr_min"          yaml:"addr_min"`
	AddrMax     uint64   `json:"addr_max"          yaml:"addr_max"`
}

// Run executes the export command.
func (e *Export) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := query.Compile(e.Filter)
	if err != nil {
		return ErrFilter.Wrap(err)
	}

	p, err := load(ctx, e.Trace, e.NoSync)
	if err != nil {
		return err
	}

	doc, err := makeDocument(p, filter)
	if err != nil {
		return err
	}

	data, err := e.marshal(doc)
	if err != nil {
		return err
	}

	if _, err := outputFrom(ctx).Write(data); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func (e *Export) marshal(doc document) ([]byte, error) {
	indent := e.Indent
	if indent < 1 {
		indent = 2
	}

	if e.Format == "json" {
		data, err := json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, ErrJSONMarshal.Wrap(err)
		}

		return append(data, '\n'), nil
	}

	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return nil, ErrYAMLMarshal.Wrap(err).With(slog.Int("indent", indent))
	}

	return data, nil
}

func makeDocument(p *profile.Profile, filter *query.Filter) (document, error) {
	doc := document{
		Checkpoints: nonNil(p.Checkpoints()),
		Files:       []fileDocument{},
	}

	err := selectItems(p, filter, "", func(item profile.Item) {
		if item.IsFile() {
			info := p.File(item.File)
			doc.Files = append(doc.Files, fileDocument{
				Path:        info.Path.Expand(),
				Checkpoints: nonNil(p.Names(info.Checkpoints)),
				Lines:       []lineDocument{},
				DebugInfo:   info.HasDebugInfo,
			})

			return
		}

		line := item.Line
		last := &doc.Files[len(doc.Files)-1]
		last.Lines = append(last.Lines, lineDocument{
			Function:    line.FunctionName(),
			Content:     line.Content,
			Checkpoints: nonNil(p.Names(line.Checkpoints)),
			Nb:          line.Nb,
			AddrMin:     line.AddrRange.Min,
			AddrMax:     line.AddrRange.Max,
		})
	})

	return doc, err
}

// nonNil returns s, or an empty slice if s is nil, so that documents list
// empty sets as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
