package render

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"go/token"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/ardnew/confgen/conf"
	"github.com/ardnew/confgen/pkg"
)

// Go renders each section as a Go source file holding a block of typed
// constants named <Section>_<KEY>.
type Go struct{}

func NewGo() *Go { return &Go{} }

func (*Go) Language() string { return "go" }

func (g *Go) Render(ctx context.Context, doc *conf.Document, opts Options) (*Bundle, error) {
	dir, name, err := goPackage(opts.Package)
	if err != nil {
		return nil, err
	}

	// All sections share one Go package, so constant names must be unique
	// across the whole document.
	declared := make(map[string]string)

	return renderSections(ctx, g.Language(), doc, opts, func(s *conf.Section) (Artifact, error) {
		if err := uniqueKeys(s); err != nil {
			return Artifact{}, err
		}

		var buf bytes.Buffer

		fmt.Fprintf(&buf, "// %s\n\n", pkg.GeneratedHeader)
		fmt.Fprintf(&buf, "package %s\n\n", name)
		fmt.Fprintf(&buf, "// Constants of configuration section %s.\n", s.Name())
		buf.WriteString("const (\n")

		for e := range s.All() {
			id := goConstName(s.Name(), e.Key())
			if prev, ok := declared[id]; ok {
				return Artifact{}, ErrDuplicateName.With(
					slog.String("constant", id),
					slog.String("section", s.Name()),
					slog.String("conflicts_with", prev))
			}

			declared[id] = s.Name() + "." + e.Key()

			fmt.Fprintf(&buf, "\t%s %s = %s\n", id, e.GoType(), goLiteral(e.Value()))
		}

		buf.WriteString(")\n")

		src, err := format.Source(buf.Bytes())
		if err != nil {
			return Artifact{}, ErrRender.Wrap(err).With(slog.String("section", s.Name()))
		}

		return Artifact{
			Section: s.Name(),
			Path:    path.Join(dir, goFileName(s.Name())),
			Content: src,
		}, nil
	})
}

// goPackage splits a slash-separated package directory into its cleaned
// form and the package name given by its last element.
func goPackage(dir string) (string, string, error) {
	clean := path.Clean(strings.TrimSpace(dir))
	name := path.Base(clean)

	switch {
	case dir == "":
		return "", "", ErrInvalidName.With(slog.String("issue", "empty package"))

	case path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../"):
		return "", "", ErrInvalidName.With(
			slog.String("issue", "package must be a relative directory"),
			slog.String("package", dir))

	case !token.IsIdentifier(name):
		return "", "", ErrInvalidName.With(
			slog.String("issue", "last element is not a Go package name"),
			slog.String("package", dir))
	}

	return clean, name, nil
}

func goConstName(section, key string) string {
	id := section + "_" + key
	if id[0] >= '0' && id[0] <= '9' {
		id = "X" + id
	}

	return id
}

// goFileName avoids names the go command would ignore or treat as test or
// platform specific files.
func goFileName(section string) string {
	name := strings.ToLower(section)
	if name[0] == '_' {
		name = "x" + name
	}

	return name + "_const.go"
}

func goLiteral(v conf.Value) string {
	if s, ok := v.Str(); ok {
		return strconv.Quote(s)
	}

	return v.Literal()
}
