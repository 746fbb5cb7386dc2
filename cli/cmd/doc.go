// Package cmd implements the ckview subcommands.
//
// Every command that reads a trace shares one pipeline: parse the trace,
// build the profile, and, unless disabled, synchronize it with the source
// files found through the search path.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the YAML configuration file.
	ConfigIdentifier = "config"
)
