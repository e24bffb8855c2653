package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/confgen/render"
)

func TestGen_Run(t *testing.T) {
	tests := []struct {
		name     string
		language string
		pkg      string
		want     []string
	}{
		{
			name:     "go",
			language: "go",
			pkg:      "internal/settings",
			want:     []string{"internal/settings/server_const.go", "internal/settings/client_const.go"},
		},
		{
			name:     "java",
			language: "java",
			pkg:      "com.example.settings",
			want:     []string{"com/example/settings/Server.java", "com/example/settings/Client.java"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext("")
			root := t.TempDir()

			g := &Gen{
				Source:   writeSource(t, sample),
				Output:   root,
				Package:  tt.pkg,
				Language: tt.language,
			}

			if err := g.Run(ctx); err != nil {
				t.Fatalf("Gen.Run() error = %v", err)
			}

			printed := strings.Fields(out.String())
			if len(printed) != len(tt.want) {
				t.Fatalf("printed %d paths, want %d:\n%s", len(printed), len(tt.want), out)
			}

			for i, rel := range tt.want {
				path := filepath.Join(root, filepath.FromSlash(rel))
				if printed[i] != path {
					t.Errorf("printed[%d] = %q, want %q", i, printed[i], path)
				}

				if _, err := os.Stat(path); err != nil {
					t.Errorf("missing generated file: %v", err)
				}
			}
		})
	}
}

func TestGen_DryRun(t *testing.T) {
	ctx, out := testContext(sample)
	root := t.TempDir()

	g := &Gen{Source: "-", Output: root, Package: "settings", Language: "go", DryRun: true}
	if err := g.Run(ctx); err != nil {
		t.Fatalf("Gen.Run() error = %v", err)
	}

	if !strings.Contains(out.String(), filepath.Join(root, "settings", "server_const.go")) {
		t.Errorf("dry run output:\n%s", out)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries", len(entries))
	}
}

func TestGen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		gen     Gen
		wantErr error
	}{
		{
			name:    "unknown language",
			gen:     Gen{Language: "cobol", Package: "x"},
			wantErr: render.ErrUnknownTarget,
		},
		{
			name:    "invalid package",
			gen:     Gen{Language: "java", Package: "com.example.class"},
			wantErr: render.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext("")

			tt.gen.Source = writeSource(t, sample)
			tt.gen.Output = t.TempDir()

			if err := tt.gen.Run(ctx); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Gen.Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
