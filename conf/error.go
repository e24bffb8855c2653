package conf

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sentinel errors. Errors returned by this package match one of these with
// [errors.Is], and carry further detail reachable with [errors.As].
var (
	ErrSyntax          = NewError("syntax error")
	ErrIncompleteInput = NewError("incomplete input")
	ErrNumericOverflow = NewError("numeric literal out of range")
	ErrEmptyResult     = NewError("parser produced no document")
	ErrInvalidDocument = NewError("invalid document")
	ErrReadInput       = NewError("failed to read input")
	ErrExprCompile     = NewError("expression compilation failed")
	ErrExprEvaluate    = NewError("expression evaluation failed")
)

// Error is an error with structured logging attributes.
//
// Errors derived from a sentinel with [Error.With], [Error.Wrap] or
// [Error.WithPosition] still match that sentinel with [errors.Is].
type Error struct {
	base  *Error
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a new sentinel error with the given message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e

	return e
}

func (e *Error) Error() string {
	switch {
	case e.msg == "" && e.err == nil:
		return ""
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	}

	return e.msg + ": " + e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.base != nil && t.base == e.base
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("msg", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return append([]slog.Attr(nil), e.attrs...) }

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(append(make([]slog.Attr, 0, len(e.attrs)+len(attrs)),
		e.attrs...), attrs...)

	return &c
}

// WithPosition returns a copy of e annotated with a source position.
func (e *Error) WithPosition(pos Position) *Error {
	return e.With(slog.Group("pos",
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
		slog.Int("offset", pos.Offset),
	))
}

// Position locates a byte in a source text.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether p was computed from a source text.
func (p Position) IsValid() bool { return p.Line > 0 }

// SyntaxError describes the farthest point the grammar could not match.
type SyntaxError struct {
	// Pos is where matching failed.
	Pos Position
	// Expected lists the labels of the rules tried at Pos, sorted.
	Expected []string
	// Context names the rule that enclosed the failure, if any.
	Context string
	// Found describes the input at Pos.
	Found string

	source string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder

	b.WriteString(e.Pos.String())
	b.WriteString(": ")

	if len(e.Expected) > 0 {
		b.WriteString("expected ")
		b.WriteString(joinAlternatives(e.Expected))

		if e.Context != "" {
			b.WriteString(" in ")
			b.WriteString(e.Context)
		}

		b.WriteString(", ")
	}

	b.WriteString("found ")
	b.WriteString(e.Found)

	return b.String()
}

// Snippet returns the source line containing the error and a caret marking
// the column, or "" if the source is unknown.
func (e *SyntaxError) Snippet() string { return snippet(e.source, e.Pos) }

// OverflowError reports an integer or float literal that does not fit its
// storage type.
type OverflowError struct {
	Pos     Position
	Literal string
	Kind    Kind
	Err     error

	source string
}

func (e *OverflowError) Error() string {
	return e.Pos.String() + ": " + e.Kind.String() + " literal " + e.Literal +
		" does not fit in " + e.Kind.GoType()
}

func (e *OverflowError) Unwrap() error { return e.Err }

// Snippet returns the source line containing the literal and a caret
// marking its first character.
func (e *OverflowError) Snippet() string { return snippet(e.source, e.Pos) }

// Diagnostic returns a multi-line description of err including a source
// snippet, if err carries a source position. Otherwise it returns
// err.Error().
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}

	var src interface{ Snippet() string }
	if errors.As(err, &src) {
		if s := src.Snippet(); s != "" {
			return err.Error() + "\n" + s
		}
	}

	return err.Error()
}

// ErrorPosition returns the source position carried by err.
func ErrorPosition(err error) (Position, bool) {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return syn.Pos, true
	}

	var ovf *OverflowError
	if errors.As(err, &ovf) {
		return ovf.Pos, true
	}

	return Position{}, false
}

func snippet(src string, pos Position) string {
	if src == "" || !pos.IsValid() {
		return ""
	}

	starts := lineStarts(src)
	if pos.Line > len(starts) || pos.Offset > len(src) {
		return ""
	}

	bol := min(starts[pos.Line-1], pos.Offset)
	eol := strings.IndexAny(src[bol:], "\r\n")

	if eol < 0 {
		eol = len(src)
	} else {
		eol += bol
	}

	num := strconv.Itoa(pos.Line)
	pad := strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}

		return ' '
	}, src[bol:pos.Offset])

	return "  " + num + " | " + src[bol:eol] + "\n" +
		strings.Repeat(" ", len(num)+5) + pad + "^\n"
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 0:
		return ""
	case 1:
		return alts[0]
	}

	return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
}

// describe names the input at off for diagnostics.
func describe(src string, off int) string {
	if off >= len(src) {
		return "end of input"
	}

	r, _ := utf8.DecodeRuneInString(src[off:])

	switch r {
	case '\n', '\r':
		return "newline"
	case utf8.RuneError:
		return "invalid UTF-8"
	}

	return strconv.QuoteRune(r)
}
