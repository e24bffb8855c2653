package conf

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/klauspost/readahead"

	"github.com/ardnew/confgen/log"
)

// Option configures [ParseString] and [ParseReader].
type Option func(*options)

type options struct {
	logger log.Logger
	cache  bool
}

func makeOptions(opts ...Option) options {
	o := options{cache: true}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger that receives trace and debug records about
// parsing. By default nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCache controls whether results are shared through the parse cache.
// It is enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}

// Parse parses a complete configuration text.
//
// It either returns a Document with at least one section, each with at
// least one entry, or an error matching one of [ErrSyntax],
// [ErrIncompleteInput], [ErrNumericOverflow] or [ErrEmptyResult]. Parse
// has no side effects and may be called concurrently.
func Parse(text string) (*Document, error) {
	s := newState(text)

	doc, end, ok := configuration(s)

	switch {
	case s.fatal != nil:
		return nil, s.fatal

	case ok && doc == nil:
		return nil, ErrEmptyResult.With(slog.Int("source_bytes", len(text)))

	case ok:
		return doc, nil

	case end < 0 || s.far > end:
		syn := s.syntaxError(s.far)

		return nil, ErrSyntax.WithPosition(syn.Pos).Wrap(syn)
	}

	syn := s.syntaxError(end)

	return nil, ErrIncompleteInput.WithPosition(syn.Pos).Wrap(syn)
}

// ParseString parses src like [Parse], logging through the configured
// logger and consulting the parse cache unless disabled with
// [WithCache].
func ParseString(ctx context.Context, src string, opts ...Option) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := makeOptions(opts...)

	if o.cache {
		return parseCached(ctx, src, o)
	}

	return parseLogged(ctx, src, o)
}

// ParseReader reads r to EOF and parses the result like [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)))

	return ParseString(ctx, string(data), opts...)
}

func parseLogged(ctx context.Context, src string, o options) (*Document, error) {
	start := time.Now()

	doc, err := Parse(src)
	if err != nil {
		o.logger.DebugContext(ctx, "parse failed",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("sections", doc.Len()),
		slog.Duration("elapsed", time.Since(start)))

	return doc, nil
}
