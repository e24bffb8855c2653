package render

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/confgen/conf"
)

func mustParse(t *testing.T, src string) *conf.Document {
	t.Helper()

	doc, err := conf.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed:\n%s", src, conf.Diagnostic(err))
	}

	return doc
}

func TestLookup(t *testing.T) {
	tests := []struct {
		language string
		want     string
		wantErr  error
	}{
		{language: "go", want: "go"},
		{language: "Java", want: "java"},
		{language: "cobol", wantErr: ErrUnknownTarget},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			r, err := Lookup(tt.language)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Lookup(%q) error = %v, want %v", tt.language, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.language, err)
			}

			if got := r.Language(); got != tt.want {
				t.Errorf("Language() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	if got, want := Languages(), []string{"go", "java"}; !slices.Equal(got, want) {
		t.Errorf("Languages() = %v, want %v", got, want)
	}
}

func TestRender_Metadata(t *testing.T) {
	doc := mustParse(t, "[A]\nX = 1\n[B]\nY = 2\n")

	for _, lang := range Languages() {
		t.Run(lang, func(t *testing.T) {
			r, _ := Lookup(lang)

			b, err := r.Render(context.Background(), doc, Options{Package: "config", Source: "test.conf"})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if len(b.Artifacts) != 2 {
				t.Fatalf("len(Artifacts) = %d, want 2", len(b.Artifacts))
			}

			if b.Artifacts[0].Section != "A" || b.Artifacts[1].Section != "B" {
				t.Errorf("artifact order = %q, %q", b.Artifacts[0].Section, b.Artifacts[1].Section)
			}

			m := b.Metadata
			if m.Language != lang || m.Package != "config" || m.Source != "test.conf" {
				t.Errorf("Metadata = %+v", m)
			}

			if m.ID.String() == "00000000-0000-0000-0000-000000000000" {
				t.Error("Metadata.ID is zero")
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		src     string
		pkg     string
		wantErr error
	}{
		{"go duplicate key", "go", "[A]\nX = 1\nX = 2\n", "config", ErrDuplicateName},
		{"java duplicate key", "java", "[A]\nX = 1\nX = 2\n", "config", ErrDuplicateName},
		{"go constant collision", "go", "[A_B]\nC = 1\n[A]\nB_C = 2\n", "config", ErrDuplicateName},
		{"go file collision", "go", "[Net]\nX = 1\n[NET]\nY = 2\n", "config", ErrDuplicateName},
		{"java repeated section", "java", "[A]\nX = 1\n[A]\nY = 2\n", "config", ErrDuplicateName},
		{"go empty package", "go", "[A]\nX = 1\n", "", ErrInvalidName},
		{"go absolute package", "go", "[A]\nX = 1\n", "/tmp/config", ErrInvalidName},
		{"go escaping package", "go", "[A]\nX = 1\n", "../config", ErrInvalidName},
		{"go bad package name", "go", "[A]\nX = 1\n", "internal/my-config", ErrInvalidName},
		{"java bad package", "java", "[A]\nX = 1\n", "com.example.class", ErrInvalidName},
		{"java empty package", "java", "[A]\nX = 1\n", "", ErrInvalidName},
		{"java digit section", "java", "[1A]\nX = 1\n", "config", ErrInvalidName},
		{"java keyword key", "java", "[A]\nint = 1\n", "config", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := Lookup(tt.lang)

			_, err := r.Render(context.Background(), mustParse(t, tt.src), Options{Package: tt.pkg})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGo().Render(ctx, mustParse(t, "[A]\nX = 1\n"), Options{Package: "config"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() error = %v, want %v", err, context.Canceled)
	}
}

func TestRender_NilDocument(t *testing.T) {
	_, err := NewJava().Render(context.Background(), nil, Options{Package: "config"})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("Render() error = %v, want %v", err, ErrRender)
	}
}

// fields returns the non-blank lines of s with runs of white space collapsed.
func fields(s string) []string {
	var out []string

	for line := range strings.Lines(s) {
		if f := strings.Fields(line); len(f) > 0 {
			out = append(out, strings.Join(f, " "))
		}
	}

	return out
}
