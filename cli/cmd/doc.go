// Package cmd implements the confgen subcommands.
//
// Every command reads its configuration source through [Load], where "-"
// selects standard input, and writes results to the output stored in its
// context by [WithOutput] (standard output by default).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// of the configuration file.
	ConfigIdentifier = "config"
)
