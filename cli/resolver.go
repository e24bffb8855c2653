package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/confgen/conf"
	"github.com/ardnew/confgen/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// the named section of a file written in the confgen language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// Entry keys name flags. Hyphens in flag names are written as underscores,
// since they are not legal in keys:
//
//	[config]
//	log_level = "debug"
//	log_format = "json"
//	log_pretty = false
//
// Command-line flags override values from the file. A file that fails to
// parse is reported and otherwise ignored.
func resolve(ctx context.Context, section string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := conf.ParseReader(ctx, r, conf.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("section", section),
				slog.Any("error", err))

			return config{}, nil
		}

		sec, ok := doc.Section(section)
		if !ok {
			return config{}, nil
		}

		return sectionToConfig(sec), nil
	}
}

// config implements [kong.Resolver] for confgen language files.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

// sectionToConfig converts the entries of s to flag values, later entries
// overriding earlier ones. Kong parses numbers from their string form.
func sectionToConfig(s *conf.Section) config {
	cfg := make(config, s.Len())

	for e := range s.All() {
		v := e.Value()

		switch v.Kind() {
		case conf.KindInteger:
			n, _ := v.Int()
			cfg[e.Key()] = strconv.Itoa(n)

		case conf.KindFloat:
			f, _ := v.Float()
			cfg[e.Key()] = strconv.FormatFloat(f, 'f', -1, 64)

		default:
			cfg[e.Key()] = v.Any()
		}
	}

	return cfg
}
