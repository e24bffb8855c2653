package conf

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env returns the environment used by [Document.Eval]: one map per section,
// keyed by section name, holding native Go values.
func (d *Document) Env() map[string]any {
	env := make(map[string]any, len(d.sections))
	for name, sec := range d.ToMap() {
		env[name] = sec
	}

	return env
}

// Compile compiles an expr-lang query against the environment of d.
// Sections are referenced by name and keys by member access, e.g.
// "Server.PORT > 1024".
func (d *Document) Compile(query string) (*vm.Program, error) {
	program, err := expr.Compile(query, expr.Env(d.Env()))
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(slog.String("query", query))
	}

	return program, nil
}

// Eval compiles and runs query against d and returns its result.
func (d *Document) Eval(ctx context.Context, query string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, err := d.Compile(query)
	if err != nil {
		return nil, err
	}

	return d.Run(program)
}

// Run runs a program returned by [Document.Compile].
func (d *Document) Run(program *vm.Program) (any, error) {
	out, err := expr.Run(program, d.Env())
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err)
	}

	return out, nil
}
