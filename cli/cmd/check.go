package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/confgen/conf"
)

// Check parses each source and reports whether it is valid.
type Check struct {
	Sources []string `arg:"" help:"Source configuration files or '-' for stdin." name:"source"`
	Quiet   bool     `help:"Report failures only through the exit status."       short:"q"`
}

type checkStyle struct {
	ok, fail, name, detail lipgloss.Style
}

func newCheckStyle(w io.Writer) checkStyle {
	r := lipgloss.NewRenderer(w)

	return checkStyle{
		ok:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		fail:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		name:   r.NewStyle().Bold(true),
		detail: r.NewStyle().Faint(true),
	}
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	out := outputFrom(ctx)
	style := newCheckStyle(out)

	var failed int

	for _, src := range uniqueSources(c.Sources) {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := Load(ctx, src)
		if err != nil {
			failed++

			if !c.Quiet {
				fmt.Fprintf(out, "%s %s\n%s\n",
					style.fail.Render("FAIL"),
					style.name.Render(sourceName(src)),
					conf.Diagnostic(err))
			}

			continue
		}

		if !c.Quiet {
			var entries int
			for s := range doc.All() {
				entries += s.Len()
			}

			fmt.Fprintf(out, "%s   %s %s\n",
				style.ok.Render("ok"),
				style.name.Render(sourceName(src)),
				style.detail.Render(fmt.Sprintf("(%d sections, %d entries)", doc.Len(), entries)))
		}
	}

	if failed > 0 {
		return ErrCheckFailed.With(slog.Int("failed", failed))
	}

	return nil
}
