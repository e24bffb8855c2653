package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the number of similar paths reported on a miss.
const maxSuggestions = 3

// Get prints a single configuration value.
type Get struct {
	Source  string `arg:"" help:"Source configuration file or '-' for stdin." name:"source"`
	Path    string `arg:"" help:"Value path of the form Section.KEY."          name:"path"`
	Literal bool   `help:"Print the value as a source literal (quoted strings)." short:"L"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	doc, err := Load(ctx, g.Source)
	if err != nil {
		return err
	}

	section, key, ok := strings.Cut(g.Path, ".")
	if !ok || section == "" || key == "" {
		return ErrInvalidPath.With(slog.String("path", g.Path))
	}

	v, ok := doc.Lookup(section, key)
	if !ok {
		err := ErrNotFound.With(
			slog.String("path", g.Path),
			slog.String("source", sourceName(g.Source)))

		if alt := suggest(g.Path, doc.Paths()); len(alt) > 0 {
			err = err.With(slog.String("did_you_mean", strings.Join(alt, ", ")))
		}

		return err
	}

	// Only strings differ from their literal form; floats keep the
	// fraction so 3.0 never reads as an integer.
	if s, ok := v.Str(); ok && !g.Literal {
		fmt.Fprintln(outputFrom(ctx), s)
	} else {
		fmt.Fprintln(outputFrom(ctx), v.Literal())
	}

	return nil
}

// suggest returns up to maxSuggestions paths that fuzzy-match pattern, best
// first. Matching ignores case.
func suggest(pattern string, paths []string) []string {
	lower := make([]string, len(paths))
	for i, p := range paths {
		lower[i] = strings.ToLower(p)
	}

	matches := fuzzy.Find(strings.ToLower(pattern), lower)

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, paths[m.Index])
	}

	return out
}
