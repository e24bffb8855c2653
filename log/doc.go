// Package log wraps [log/slog] with a small configuration layer and an
// additional [LevelTrace] severity.
//
// A [Logger] is built with [Make] and functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
// Derived loggers override individual settings with [Logger.Wrap] or add
// attributes with [Logger.With]. Every level has a context-aware variant;
// the plain variants use [DefaultContextProvider].
//
// The package-level functions ([Info], [Debug], ...) log through a default
// logger that [Config] reconfigures.
//
// With [WithPretty], text output is colorized when written to a terminal.
package log
