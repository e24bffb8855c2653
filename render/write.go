package render

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/confgen/log"
)

// WriteOption configures [Write].
type WriteOption func(writeOptions) writeOptions

type writeOptions struct {
	logger log.Logger
	limit  int
}

// WithLimit bounds the number of files written concurrently.
// Values less than 1 select the number of CPUs.
func WithLimit(n int) WriteOption {
	return func(o writeOptions) writeOptions {
		o.limit = n

		return o
	}
}

// WithWriteLogger sets the logger used to report each written file.
func WithWriteLogger(l log.Logger) WriteOption {
	return func(o writeOptions) writeOptions {
		o.logger = l

		return o
	}
}

// Write persists every artifact of b beneath root and returns the written
// file paths in artifact order.
//
// Each file is written to a temporary sibling and renamed into place, so a
// failed or cancelled run never leaves a partially written file.
func Write(ctx context.Context, root string, b *Bundle, opts ...WriteOption) ([]string, error) {
	o := writeOptions{logger: log.Default(), limit: runtime.NumCPU()}
	for _, opt := range opts {
		o = opt(o)
	}

	if o.limit < 1 {
		o.limit = runtime.NumCPU()
	}

	paths := make([]string, len(b.Artifacts))

	for i, a := range b.Artifacts {
		if !filepath.IsLocal(filepath.FromSlash(a.Path)) {
			return nil, ErrPersist.With(
				slog.String("issue", "path escapes output root"),
				slog.String("path", a.Path))
		}

		paths[i] = filepath.Join(root, filepath.FromSlash(a.Path))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.limit)

	for i, a := range b.Artifacts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := writeFile(paths[i], a.Content); err != nil {
				return ErrPersist.Wrap(err).With(slog.String("path", paths[i]))
			}

			o.logger.DebugContext(ctx, "wrote artifact",
				slog.String("section", a.Section),
				slog.String("path", paths[i]),
				slog.Int("bytes", len(a.Content)))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func writeFile(name string, content []byte) error {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()

		return err
	}

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()

		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), name)
}
