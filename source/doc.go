// Package source locates and reads the source files named by a trace.
//
// [Cache] implements [profile.SourceReader]. It resolves a file against
// the directory recorded in the trace and then against a search path, and
// keeps the split lines of every file it reads keyed by an xxh3
// fingerprint of the content, so re-synchronizing a profile only splits
// files that changed on disk.
//
// [SearchPath] builds the search path from command-line directories and
// the PATH-like environment variable named by [EnvSearchPath].
package source
