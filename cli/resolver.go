package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ckview/log"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads a flat YAML
// mapping of flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// Keys are flag names with either hyphens or underscores:
//
//	log-level: debug
//	log_format: json
//	source-path:
//	  - /usr/src/glibc
//	  - ~/src
//	jobs: 4
//
// Command-line flags override config file values. A file that is not a
// valid mapping is ignored with a warning.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.Any("error", err))
		}

		return config{}, nil
	}

	c := make(config, len(m))
	for k, v := range m {
		c[k] = flagInput(v)
	}

	return c, nil
}

// flagInput converts a decoded YAML value to a form kong parses: numbers
// become strings and lists become comma-separated strings.
func flagInput(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			s, ok := flagInput(item).(string)
			if !ok {
				s = yamlScalar(item)
			}

			items[i] = strings.ReplaceAll(s, ",", `\,`)
		}

		return strings.Join(items, ",")
	}

	return v
}

func yamlScalar(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// config implements [kong.Resolver] for flat configuration maps.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
