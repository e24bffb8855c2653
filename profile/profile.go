package profile

import (
	"fmt"
	"slices"
	"strings"
)

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode selects what to profile; one of [Modes]. Empty disables profiling.
	Mode string
	// Dir is the output directory. Empty uses the working directory.
	Dir string
	// Quiet suppresses the messages pkg/profile prints on start and stop.
	Quiet bool
}

// Option modifies a [Profiler].
type Option func(Profiler) Profiler

func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = strings.ToLower(mode)

		return p
	}
}

func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// New returns a [Profiler] with opts applied.
func New(opts ...Option) Profiler {
	var p Profiler
	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// Validate reports an error if Mode is set but not supported by this build.
func (p Profiler) Validate() error {
	if p.Mode == "" || slices.Contains(Modes(), p.Mode) {
		return nil
	}

	if len(Modes()) == 0 {
		return fmt.Errorf("profiling mode %q requested but binary built without -tags %s",
			p.Mode, Tag)
	}

	return fmt.Errorf("unsupported profiling mode %q: valid modes: %s",
		p.Mode, strings.Join(Modes(), ", "))
}

// Start begins profiling. The returned [Stopper] is never nil, and is a
// no-op if Mode is empty or unsupported.
//
// Only one session may be active at a time.
func (p Profiler) Start() Stopper {
	if p.Mode == "" || p.Validate() != nil {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
