package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/confgen/cli/cmd/repl"
	"github.com/ardnew/confgen/log"
	"github.com/ardnew/confgen/pkg"
)

// historyFile is the base name of the REPL history file in the cache
// directory.
const historyFile = "history"

// Repl starts an interactive shell evaluating expressions against a
// configuration file.
type Repl struct {
	Source  string `arg:"" help:"Source configuration file."                    name:"source" type:"existingfile"`
	NoSave  bool   `help:"Do not persist the input history."                    name:"no-history"`
	Entries int    `default:"500" help:"Maximum number of history entries kept." name:"history-size"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	doc, err := Load(ctx, r.Source)
	if err != nil {
		return err
	}

	opts := []repl.Option{
		repl.WithTitle(sourceName(r.Source)),
		repl.WithHistoryLimit(r.Entries),
	}

	if !r.NoSave {
		file := filepath.Join(kongVar(ctx, CacheIdentifier, pkg.CacheDir()), historyFile)
		opts = append(opts, repl.WithHistoryFile(file))
	}

	log.DebugContext(ctx, "repl start", slog.String("source", r.Source))

	return repl.Run(ctx, doc, opts...)
}
