package pkg

import (
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "confgen" {
		t.Errorf("Expected Name to be %q, got %q", "confgen", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestGeneratedHeader(t *testing.T) {
	// Go tooling recognizes generated files by this exact shape.
	if !strings.HasPrefix(GeneratedHeader, "Code generated ") ||
		!strings.HasSuffix(GeneratedHeader, " DO NOT EDIT.") {
		t.Errorf("malformed generated header: %q", GeneratedHeader)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew"
	}) {
		t.Error("Expected Author to contain ardnew")
	}
}

func TestEnvPrefix(t *testing.T) {
	got := EnvPrefix()
	if !strings.HasSuffix(got, "_") {
		t.Errorf("EnvPrefix() = %q, want trailing underscore", got)
	}

	if got != strings.ToUpper(got) {
		t.Errorf("EnvPrefix() = %q, want upper case", got)
	}
}

func TestDirsEndWithPrefix(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if !strings.HasSuffix(dir, Prefix()) {
			t.Errorf("%s dir %q does not end with prefix %q", name, dir, Prefix())
		}
	}
}
