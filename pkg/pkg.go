//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the confgen module embedded at build
// time. It is printed by the CLI when users invoke the version flag.
//
//go:embed VERSION
var version string

// Version returns the trimmed contents of the embedded VERSION file.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, generated file headers, and default
	// config paths.
	Name = "confgen"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Typed configuration compiler"
)

// GeneratedHeader is the marker line written at the top of every generated
// source file. It follows the convention recognized by Go tooling.
const GeneratedHeader = "Code generated by " + Name + ". DO NOT EDIT."

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
