package render

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path"
	"strings"

	"github.com/ardnew/confgen/conf"
)

// Java renders each section as a final class of public static final
// fields.
type Java struct{}

func NewJava() *Java { return &Java{} }

func (*Java) Language() string { return "java" }

func (j *Java) Render(ctx context.Context, doc *conf.Document, opts Options) (*Bundle, error) {
	dir, err := javaPackage(opts.Package)
	if err != nil {
		return nil, err
	}

	return renderSections(ctx, j.Language(), doc, opts, func(s *conf.Section) (Artifact, error) {
		if err := uniqueKeys(s); err != nil {
			return Artifact{}, err
		}

		if !isJavaIdentifier(s.Name()) {
			return Artifact{}, ErrInvalidName.With(
				slog.String("issue", "section is not a Java class name"),
				slog.String("section", s.Name()))
		}

		var b strings.Builder

		fmt.Fprintf(&b, "package %s;\n", opts.Package)
		fmt.Fprintf(&b, "public final class %s {\n\n", s.Name())

		for e := range s.All() {
			if !isJavaIdentifier(e.Key()) {
				return Artifact{}, ErrInvalidName.With(
					slog.String("issue", "key is not a Java field name"),
					slog.String("section", s.Name()),
					slog.String("key", e.Key()))
			}

			typ, lit := javaField(e.Value())
			fmt.Fprintf(&b, "\tpublic static final %s %s = %s;\n", typ, e.Key(), lit)
		}

		b.WriteString("}\n")

		return Artifact{
			Section: s.Name(),
			Path:    path.Join(dir, s.Name()+".java"),
			Content: []byte(b.String()),
		}, nil
	})
}

// javaField returns the narrowest primitive Java type holding v, and v as
// a Java literal.
func javaField(v conf.Value) (string, string) {
	switch v.Kind() {
	case conf.KindBoolean:
		return "boolean", v.Literal()

	case conf.KindInteger:
		if i, _ := v.Int(); i > math.MaxInt32 || i < math.MinInt32 {
			return "long", v.Literal() + "L"
		}

		return "int", v.Literal()

	case conf.KindFloat:
		return "double", v.Literal()

	case conf.KindString:
		s, _ := v.Str()

		return "String", `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}

	return "Object", "null"
}

func javaPackage(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidName.With(slog.String("issue", "empty package"))
	}

	for part := range strings.SplitSeq(name, ".") {
		if !isJavaIdentifier(part) {
			return "", ErrInvalidName.With(
				slog.String("issue", "not a Java package name"),
				slog.String("package", name))
		}
	}

	return strings.ReplaceAll(name, ".", "/"), nil
}

var javaKeywords = map[string]bool{
	"_": true, "abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "class": true,
	"const": true, "continue": true, "default": true, "do": true,
	"double": true, "else": true, "enum": true, "extends": true,
	"false": true, "final": true, "finally": true, "float": true, "for": true,
	"goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true,
	"native": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "true": true, "try": true,
	"void": true, "volatile": true, "while": true,
}

func isJavaIdentifier(s string) bool {
	if s == "" || javaKeywords[s] || ('0' <= s[0] && s[0] <= '9') {
		return false
	}

	for _, r := range s {
		if r != '_' && r != '$' && !('0' <= r && r <= '9') &&
			!('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') {
			return false
		}
	}

	return true
}
