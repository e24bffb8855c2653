// Package profile starts optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the [Tag] build tag:
//
//	go build -tags pprof ./...
//
// Without the tag [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper].
//
// Profiles are written to [Profiler.Dir] using the file names chosen by
// pkg/profile (cpu.pprof, mem.pprof, trace.out, ...) and are analyzed with
// go tool pprof:
//
//	go tool pprof -http=: confgen $XDG_CACHE_HOME/confgen/pprof/cpu.pprof
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
