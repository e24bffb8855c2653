package cmd

import (
	"context"
	"fmt"
)

// Eval evaluates an expression against a configuration file.
//
// Sections are referenced by name and keys by member access:
//
//	confgen eval app.conf 'Server.PORT > 1024 && Client.RETRIES < 5'
type Eval struct {
	Source string `arg:"" help:"Source configuration file or '-' for stdin." name:"source"`
	Query  string `arg:"" help:"Expression to evaluate."                      name:"query"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := Load(ctx, e.Source)
	if err != nil {
		return err
	}

	result, err := doc.Eval(ctx, e.Query)
	if err != nil {
		return err
	}

	fmt.Fprintln(outputFrom(ctx), result)

	return nil
}
