package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/confgen/conf"
)

// Fmt parses a configuration file and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical confgen syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	TOML   TOML   `cmd:""                    help:"Format as TOML."`
	AST    AST    `cmd:""                    help:"Format as a syntax tree."`
}

// formatSource loads source and writes it to the command output with emit.
func formatSource(
	ctx context.Context,
	format, source string,
	emit func(*conf.Document, io.Writer) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := Load(ctx, source)
	if err != nil {
		return err
	}

	if err := emit(doc, outputFrom(ctx)); err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", format))
	}

	return nil
}

// Native formats input as canonical confgen syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	return formatSource(ctx, "native", f.Source, func(doc *conf.Document, w io.Writer) error {
		return doc.Format(ctx, w)
	})
}

// JSON formats input as a JSON object of section objects.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return formatSource(ctx, "json", j.Source, func(doc *conf.Document, w io.Writer) error {
		return doc.FormatJSON(ctx, w, j.Indent)
	})
}

// YAML formats input as a YAML mapping of section mappings.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return formatSource(ctx, "yaml", y.Source, func(doc *conf.Document, w io.Writer) error {
		return doc.FormatYAML(ctx, w, y.Indent)
	})
}

// TOML formats input as a TOML document with one table per section.
type TOML struct {
	Indent int `default:"2" help:"Indent width for TOML tables." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the toml command.
func (t *TOML) Run(ctx context.Context) error {
	return formatSource(ctx, "toml", t.Source, func(doc *conf.Document, w io.Writer) error {
		return doc.FormatTOML(ctx, w, t.Indent)
	})
}

// AST prints input as a syntax tree with kinds and positions.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	return formatSource(ctx, "ast", a.Source, func(doc *conf.Document, w io.Writer) error {
		return doc.Print(w)
	})
}
