// Package cli contains the command line interface for confgen.
//
// # Usage
//
// Each subcommand reads a configuration file written in the confgen
// language, a sequence of bracketed sections holding typed key/value
// entries:
//
//	# database settings
//	[Database]
//	HOST = "localhost"
//	PORT = 5432
//	TIMEOUT = 2.5
//	TLS = false
//
// The commands are:
//
//	confgen gen -p example.com/app/config app.conf   # Go constants
//	confgen gen -l java -p com.example.config app.conf
//	confgen check *.conf
//	confgen fmt json app.conf
//	confgen get app.conf Database.PORT
//	confgen eval app.conf 'Database.PORT > 1024'
//	confgen repl app.conf
//	confgen init
//
// A source of "-" reads standard input.
//
// # Configuration Loader
//
// Flag defaults are read from the [config] section of the file at
// ~/.config/confgen/config, itself written in the confgen language (see
// [resolve]). Keys are flag names with dashes replaced by underscores:
//
//	[config]
//	log_level = "info"
//	log_pretty = false
//
// The init command writes such a file from the current flag values. A JSON
// file at the same path with a ".json" suffix is also consulted, and every
// flag may be set from an environment variable prefixed with CONFGEN_.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o confgen .
//
// That build adds two flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     ~/.cache/confgen/pprof)
package cli
