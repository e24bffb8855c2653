package render

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ardnew/confgen/conf"
	"github.com/ardnew/confgen/pkg"
)

var (
	ErrRender        = conf.NewError("render failed")
	ErrInvalidName   = conf.NewError("invalid name for target language")
	ErrDuplicateName = conf.NewError("duplicate generated name")
	ErrUnknownTarget = conf.NewError("unknown target language")
	ErrPersist       = conf.NewError("failed to persist artifact")
)

// Renderer converts a document into source files of a target language.
type Renderer interface {
	// Language returns the registry name of the target language.
	Language() string
	// Render returns one artifact per section of doc.
	Render(ctx context.Context, doc *conf.Document, opts Options) (*Bundle, error)
}

// Options control rendering.
type Options struct {
	// Package names the destination of the generated files. Its form depends
	// on the target: a slash-separated directory for Go, whose last element
	// becomes the package name, or a dotted package name for Java.
	Package string
	// Source describes where the document came from. It is recorded in the
	// bundle metadata.
	Source string
}

// Artifact is one generated source file.
type Artifact struct {
	// Section is the name of the section the file was generated from.
	Section string
	// Path is the slash-separated file path relative to the output root.
	Path    string
	Content []byte
}

// Metadata describes a render run.
type Metadata struct {
	ID        uuid.UUID
	Language  string
	Package   string
	Source    string
	Generator string
	Generated time.Time
}

// LogValue implements [slog.LogValuer].
func (m Metadata) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", m.ID.String()),
		slog.String("language", m.Language),
		slog.String("package", m.Package),
		slog.String("source", m.Source),
	)
}

// Bundle is the output of a render run.
type Bundle struct {
	Artifacts []Artifact
	Metadata  Metadata
}

func newBundle(language string, opts Options, n int) *Bundle {
	return &Bundle{
		Artifacts: make([]Artifact, 0, n),
		Metadata: Metadata{
			ID:        uuid.New(),
			Language:  language,
			Package:   opts.Package,
			Source:    opts.Source,
			Generator: pkg.Name + " " + pkg.Version(),
			Generated: time.Now(),
		},
	}
}

var registry = map[string]func() Renderer{
	"go":   func() Renderer { return NewGo() },
	"java": func() Renderer { return NewJava() },
}

// Languages returns the names accepted by [Lookup], sorted.
func Languages() []string { return slices.Sorted(maps.Keys(registry)) }

// Lookup returns the renderer registered for language (case-insensitive).
func Lookup(language string) (Renderer, error) {
	if mk, ok := registry[strings.ToLower(language)]; ok {
		return mk(), nil
	}

	return nil, ErrUnknownTarget.With(
		slog.String("language", language),
		slog.String("valid", strings.Join(Languages(), ", ")))
}

// emitter renders a single section into an artifact.
type emitter func(s *conf.Section) (Artifact, error)

// renderSections runs emit for every section of doc, in order, rejecting
// artifacts that would overwrite each other.
func renderSections(
	ctx context.Context,
	language string,
	doc *conf.Document,
	opts Options,
	emit emitter,
) (*Bundle, error) {
	if doc == nil {
		return nil, ErrRender.With(slog.String("issue", "nil document"))
	}

	b := newBundle(language, opts, doc.Len())
	paths := make(map[string]string, doc.Len())

	for s := range doc.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a, err := emit(s)
		if err != nil {
			return nil, err
		}

		// Compare case-insensitively so output is portable to file systems
		// that fold case.
		key := strings.ToLower(a.Path)
		if prev, ok := paths[key]; ok {
			return nil, ErrDuplicateName.With(
				slog.String("section", s.Name()),
				slog.String("conflicts_with", prev),
				slog.String("path", a.Path))
		}

		paths[key] = s.Name()
		b.Artifacts = append(b.Artifacts, a)
	}

	return b, nil
}

// uniqueKeys reports the first key of s declared more than once.
func uniqueKeys(s *conf.Section) error {
	seen := make(map[string]bool, s.Len())

	for e := range s.All() {
		if seen[e.Key()] {
			return ErrDuplicateName.With(
				slog.String("section", s.Name()),
				slog.String("key", e.Key()),
				slog.String("pos", e.Pos().String()))
		}

		seen[e.Key()] = true
	}

	return nil
}
