package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/confgen/log"
	"github.com/ardnew/confgen/render"
)

// Gen renders a configuration file as source code and writes one file per
// section beneath the output directory.
type Gen struct {
	Source   string `arg:""       help:"Source configuration file or '-' for stdin."                 name:"source"`
	Output   string `default:"."  help:"Output root directory."                                       short:"o" type:"path"`
	Package  string `required:""  help:"Target package (Go: relative directory; Java: dotted name)." short:"p"`
	Language string `default:"go" enum:"go,java"                                                       help:"Target language." short:"l"`
	Jobs     int    `default:"0"  help:"Maximum files written concurrently (0 for one per CPU)."      short:"j"`
	DryRun   bool   `help:"Print the files that would be written without writing them." short:"n"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := Load(ctx, g.Source)
	if err != nil {
		return err
	}

	r, err := render.Lookup(g.Language)
	if err != nil {
		return err
	}

	bundle, err := r.Render(ctx, doc, render.Options{
		Package: g.Package,
		Source:  sourceName(g.Source),
	})
	if err != nil {
		return err
	}

	logger := log.With(slog.Any("run", bundle.Metadata))
	out := outputFrom(ctx)

	if g.DryRun {
		for _, a := range bundle.Artifacts {
			fmt.Fprintln(out, filepath.Join(g.Output, filepath.FromSlash(a.Path)))
		}

		return nil
	}

	paths, err := render.Write(ctx, g.Output, bundle,
		render.WithLimit(g.Jobs),
		render.WithWriteLogger(logger),
	)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(out, p)
	}

	logger.InfoContext(ctx, "generated",
		slog.Int("files", len(paths)),
		slog.String("output", g.Output))

	return nil
}
