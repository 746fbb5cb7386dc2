// Package cli contains the command line interface for ckview.
//
// # Usage
//
//	ckview [flags] TRACE              browse TRACE (same as "view")
//	ckview list [flags] TRACE         print TRACE as text
//	ckview export [flags] TRACE       write TRACE as JSON or YAML
//	ckview init [--force]             write the configuration file
//
// TRACE may be "-" to read standard input.
//
// # Source files
//
// Files named by the trace are resolved relative to the working directory,
// then to each --source-path directory, then to each directory listed in
// CKVIEW_SOURCE_PATH, and finally to the directory of the trace.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory ($XDG_CONFIG_HOME/ckview on Linux). The YAML file
// is a flat mapping of flag names to values; "ckview init" writes one from
// the current flags:
//
//	log-level: debug
//	source-path:
//	  - /usr/src/glibc
//
// Command-line flags override both files.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// While the viewer runs, log output goes to view.log in the user cache
// directory.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ckview .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/ckview/pprof)
//
// # Examples
//
//	# Browse a trace with sources from a second tree
//	ckview -I ~/src/project memviz.trace
//
//	# Lines run by the checkpoint "Before_hello"
//	ckview list --filter 'hit("Before_hello")' memviz.trace
//
//	# Debug logging with CPU profiling
//	ckview --log-level=debug --pprof-mode=cpu list memviz.trace
package cli
