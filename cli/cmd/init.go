package cmd

import (
	"context"
	"encoding"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/confgen/conf"
	"github.com/ardnew/confgen/log"
	"github.com/ardnew/confgen/profile"
)

// configSection is the section of the configuration file holding flag
// values.
const configSection = "config"

// Init writes a configuration file holding the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	doc, err := i.buildDocument(ctx, ktx)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = doc.Format(ctx, file)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("entries", doc.Sections()[0].Len()),
	)

	return nil
}

// buildDocument constructs a document with a single section holding the
// current value of every flag that can be written as a literal.
func (i *Init) buildDocument(ctx context.Context, ktx *kong.Context) (*conf.Document, error) {
	ignore := []string{"help", "version", profile.Tag}

	var entries []conf.Entry

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val, ok := flagValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		key := strings.ReplaceAll(flag.Name, "-", "_")

		entry, err := conf.NewEntry(key, val)
		if err != nil {
			log.DebugContext(ctx, "skipping flag",
				slog.String("flag", flag.Name),
				slog.Any("error", err))

			continue
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoFlags
	}

	section, err := conf.NewSection(configSection, entries...)
	if err != nil {
		return nil, err
	}

	return conf.NewDocument(section)
}

// flagValue converts a parsed flag value to a configuration value. It
// reports false for values that are unset. Values without a literal form
// are rejected later by [conf.NewEntry].
func flagValue(val any) (conf.Value, bool) {
	if m, ok := val.(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil || len(text) == 0 {
			return conf.Value{}, false
		}

		return conf.String(string(text)), true
	}

	// Named types such as enum flags are matched by kind.
	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Bool:
		return conf.Bool(rv.Bool()), true

	case reflect.String:
		return conf.String(rv.String()), rv.Len() > 0

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return conf.Int(int(rv.Int())), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return conf.Int(int(rv.Uint())), true

	case reflect.Float32, reflect.Float64:
		return conf.Float(rv.Float()), true
	}

	return conf.Value{}, false
}
