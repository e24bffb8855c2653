// Package conf parses the confgen configuration language into a typed,
// immutable [Document].
//
// A configuration is a list of sections, each a list of assignments:
//
//	# comments run to end of line
//	[Server]
//	HOST = "localhost"
//	PORT = 8080
//	RATIO = 0.75
//	DEBUG = false
//
// Literal types are inferred from their form, tried in this order:
// float (optional "-", digits, ".", digits), integer (digits), boolean
// (true or false) and string (double quoted, no escapes, no line breaks).
// There is no syntax for negative integers or exponents.
//
// [Parse] is a pure function of its input. [ParseString] and [ParseReader]
// add logging and a process-wide cache of results keyed by a hash of the
// source.
//
// Failures match one of the sentinel errors with [errors.Is]:
//
//   - [ErrSyntax]: no rule matched; the cause is a [*SyntaxError] naming
//     the position, the expected tokens and the enclosing rule.
//   - [ErrIncompleteInput]: one or more sections parsed but input remains.
//   - [ErrNumericOverflow]: a numeric literal does not fit its Go type;
//     the cause is an [*OverflowError].
//   - [ErrEmptyResult]: internal error; the grammar matched but produced
//     nothing.
//
// [Diagnostic] formats any of these with the offending source line.
package conf
