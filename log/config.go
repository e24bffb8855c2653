package log

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// config holds the settings a [Logger] builds its handler from.
type config struct {
	mutex  *sync.RWMutex
	output io.Writer
	layout string
	level  Level
	format Format
	caller bool
	pretty bool
}

// Option modifies a logger configuration.
type Option func(config) config

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{
		mutex:  &sync.RWMutex{},
		output: io.Discard,
		layout: DefaultTimeLayout,
		level:  DefaultLevel,
		format: DefaultFormat,
	}

	return c.apply(append([]Option{WithOutput(w)}, opts...)...)
}

func (c config) apply(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// clone copies c with a fresh mutex so the copy can be mutated without
// affecting loggers that share the original.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return c.apply(opts...)
}

// update returns an [Option] that applies fn while holding the write lock of
// the configuration it is applied to.
func update(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		fn(&c)

		return c
	}
}

// WithOutput sets the destination of log records.
// A nil writer discards all records.
func WithOutput(w io.Writer) Option {
	return update(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel sets the minimum level of emitted records.
func WithLevel(level Level) Option {
	return update(func(c *config) { c.level = level })
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return update(func(c *config) { c.format = format })
}

// WithTimeLayout sets the layout of record timestamps.
//
// Named layouts from package [time] are recognized case-insensitively
// ("RFC3339", "Kitchen", "StampMilli", ...), along with the short aliases
// "ms", "us" and "ns". Any other string is passed to [time.Time.Format]
// verbatim. An empty layout, or "none", omits timestamps.
func WithTimeLayout(layout string) Option {
	return update(func(c *config) { c.layout = resolveLayout(layout) })
}

// WithCaller includes the source location of the logging call.
func WithCaller(enable bool) Option {
	return update(func(c *config) { c.caller = enable })
}

// WithPretty enables colorized, human-oriented text output.
// It has no effect on [FormatJSON].
func WithPretty(enable bool) Option {
	return update(func(c *config) { c.pretty = enable })
}

func (c config) handlerOptions() *slog.HandlerOptions {
	layout := c.layout

	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}

			switch a.Key {
			case slog.TimeKey:
				if layout == "" {
					return slog.Attr{}
				}

				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(layout))
				}

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
				}
			}

			return a
		},
	}
}

func (c config) handler() slog.Handler {
	opts := c.handlerOptions()

	switch {
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.pretty:
		return newPrettyHandler(c.output, opts)
	default:
		return slog.NewTextHandler(c.output, opts)
	}
}

var namedLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"dateonly":    time.DateOnly,
	"timeonly":    time.TimeOnly,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
	"none":        "",
}

func resolveLayout(layout string) string {
	key := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}

		return -1
	}, strings.ToLower(layout))

	if key == "" {
		return ""
	}

	if std, ok := namedLayout[key]; ok {
		return std
	}

	return layout
}
