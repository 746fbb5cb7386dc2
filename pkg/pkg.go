//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of ckview embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name; it also names the configuration and cache
	// directories.
	Name = "ckview"
	// Description is the one-line summary shown in help output.
	Description = "Checkpoint trace source viewer"
	// EnvPrefix prefixes the environment variables read by the command.
	EnvPrefix = "CKVIEW_"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
