package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/confgen/conf"
	"github.com/ardnew/confgen/log"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

type (
	contextKey struct{}
	inputKey   struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or fallback if there is no
// kong context or the variable is undefined.
func kongVar(ctx context.Context, id, fallback string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[id]; ok {
			return v
		}
	}

	return fallback
}

// WithInput returns a new context.Context whose stdin source reads from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a new context.Context in which commands write their
// results to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// Load parses the configuration read from source, where "-" selects the
// input stored in ctx by [WithInput] (stdin by default).
func Load(ctx context.Context, source string) (*conf.Document, error) {
	var r io.Reader

	if source == stdinSource {
		r = inputFrom(ctx)
	} else {
		file, err := os.Open(source)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).With(slog.String("source", source))
		}
		defer file.Close()

		r = file
	}

	doc, err := conf.ParseReader(ctx, r, conf.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// sourceName returns a human-readable name for source.
func sourceName(source string) string {
	if source == stdinSource {
		return "<stdin>"
	}

	return source
}

// uniqueSources returns sources with repeated references to the same file
// removed, keeping the first. Symlinks and relative paths are resolved, so
// different names for one file are detected. Names that cannot be resolved
// are kept so that loading them reports the error.
func uniqueSources(sources []string) []string {
	var (
		out   = make([]string, 0, len(sources))
		seen  []os.FileInfo
		stdin bool
	)

	for _, src := range sources {
		if src == stdinSource {
			if !stdin {
				stdin = true

				out = append(out, src)
			}

			continue
		}

		abs, err := filepath.Abs(src)
		if err == nil {
			abs, err = filepath.EvalSymlinks(abs)
		}

		var info os.FileInfo
		if err == nil {
			info, err = os.Stat(abs)
		}

		if err != nil {
			out = append(out, src)

			continue
		}

		if slices.ContainsFunc(seen, func(fi os.FileInfo) bool {
			return os.SameFile(fi, info)
		}) {
			continue
		}

		seen = append(seen, info)
		out = append(out, src)
	}

	return out
}
