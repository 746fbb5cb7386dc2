// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured with functional options at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// The zero [Logger] discards everything, so types that accept an optional
// logger can hold one by value.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded.
//
// # Output
//
// [FormatText] (default) and [FormatJSON] are supported. With
// [WithPretty] both are colorized when the output is a terminal; pretty
// JSON is indented. Values implementing [slog.LogValuer] that resolve to
// groups are flattened to dotted keys in text output and nested objects
// in JSON output.
//
// # Package Logger
//
// The package-level functions write through [Default], which [Config]
// reconfigures. Context-unaware variants use [DefaultContextProvider].
package log
