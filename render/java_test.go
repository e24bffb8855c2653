package render

import (
	"context"
	"testing"
)

func TestJava_Render(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
		want string
	}{
		{
			name: "integer",
			src:  "[UserConfig]\nMAX_DISK_SPACE = 1024\n",
			path: "cz/tomasdvorak/codegen/UserConfig.java",
			want: "package cz.tomasdvorak.codegen;\n" +
				"public final class UserConfig {\n\n" +
				"\tpublic static final int MAX_DISK_SPACE = 1024;\n" +
				"}\n",
		},
		{
			name: "double and string",
			src:  "[SystemConfig]\nRATIO = 3.5\nPATH = \"/tmp\"\n",
			path: "cz/tomasdvorak/codegen/SystemConfig.java",
			want: "package cz.tomasdvorak.codegen;\n" +
				"public final class SystemConfig {\n\n" +
				"\tpublic static final double RATIO = 3.5;\n" +
				"\tpublic static final String PATH = \"/tmp\";\n" +
				"}\n",
		},
		{
			name: "boolean long and escaped string",
			src:  "[Limits]\nON = false\nBIG = 9999999999\nDIR = \"C:\\tmp\"\n",
			path: "cz/tomasdvorak/codegen/Limits.java",
			want: "package cz.tomasdvorak.codegen;\n" +
				"public final class Limits {\n\n" +
				"\tpublic static final boolean ON = false;\n" +
				"\tpublic static final long BIG = 9999999999L;\n" +
				"\tpublic static final String DIR = \"C:\\\\tmp\";\n" +
				"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewJava().Render(context.Background(), mustParse(t, tt.src),
				Options{Package: "cz.tomasdvorak.codegen"})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if len(b.Artifacts) != 1 {
				t.Fatalf("len(Artifacts) = %d, want 1", len(b.Artifacts))
			}

			a := b.Artifacts[0]
			if a.Path != tt.path {
				t.Errorf("Path = %q, want %q", a.Path, tt.path)
			}

			if got := string(a.Content); got != tt.want {
				t.Errorf("Content =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestJava_Identifier(t *testing.T) {
	tests := map[string]bool{
		"Config":  true,
		"$x":      true,
		"_a":      true,
		"_":       false,
		"1a":      false,
		"class":   false,
		"":        false,
		"a-b":     false,
		"MAX_VAL": true,
	}

	for in, want := range tests {
		if got := isJavaIdentifier(in); got != want {
			t.Errorf("isJavaIdentifier(%q) = %v, want %v", in, got, want)
		}
	}
}
