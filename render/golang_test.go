package render

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/confgen/pkg"
)

func TestGo_Render(t *testing.T) {
	doc := mustParse(t, `[SystemConstants]
MAX_MEMORY = 120
PATH = "/foo/bar"
RATIO = 3.5
QUOTE = "C:\dir"

[_internal]
ENABLED = true
`)

	b, err := NewGo().Render(context.Background(), doc, Options{Package: "internal/config"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	tests := []struct {
		path string
		want []string
	}{
		{
			path: "internal/config/systemconstants_const.go",
			want: []string{
				"// " + pkg.GeneratedHeader,
				"package config",
				"// Constants of configuration section SystemConstants.",
				"const (",
				"SystemConstants_MAX_MEMORY int = 120",
				`SystemConstants_PATH string = "/foo/bar"`,
				"SystemConstants_RATIO float64 = 3.5",
				`SystemConstants_QUOTE string = "C:\\dir"`,
				")",
			},
		},
		{
			path: "internal/config/x_internal_const.go",
			want: []string{
				"// " + pkg.GeneratedHeader,
				"package config",
				"// Constants of configuration section _internal.",
				"const (",
				"_internal_ENABLED bool = true",
				")",
			},
		},
	}

	if len(b.Artifacts) != len(tests) {
		t.Fatalf("len(Artifacts) = %d, want %d", len(b.Artifacts), len(tests))
	}

	for i, tt := range tests {
		a := b.Artifacts[i]

		if a.Path != tt.path {
			t.Errorf("Artifacts[%d].Path = %q, want %q", i, a.Path, tt.path)
		}

		if got := fields(string(a.Content)); !slices.Equal(got, tt.want) {
			t.Errorf("Artifacts[%d].Content =\n%s\nwant lines:\n%s",
				i, a.Content, strings.Join(tt.want, "\n"))
		}
	}
}

func TestGo_ConstName(t *testing.T) {
	tests := []struct {
		section, key, want string
	}{
		{"Server", "PORT", "Server_PORT"},
		{"1st", "X", "X1st_X"},
		{"_a", "b", "_a_b"},
	}

	for _, tt := range tests {
		if got := goConstName(tt.section, tt.key); got != tt.want {
			t.Errorf("goConstName(%q, %q) = %q, want %q", tt.section, tt.key, got, tt.want)
		}
	}
}

func TestGo_Package(t *testing.T) {
	tests := []struct {
		in, dir, name string
	}{
		{"config", "config", "config"},
		{"internal/config/", "internal/config", "config"},
		{"./gen/./values", "gen/values", "values"},
	}

	for _, tt := range tests {
		dir, name, err := goPackage(tt.in)
		if err != nil {
			t.Fatalf("goPackage(%q) error = %v", tt.in, err)
		}

		if dir != tt.dir || name != tt.name {
			t.Errorf("goPackage(%q) = %q, %q, want %q, %q", tt.in, dir, name, tt.dir, tt.name)
		}
	}
}
