package conf

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindInvalid Kind = iota // invalid
	KindBoolean             // boolean
	KindInteger             // integer
	KindFloat               // float
	KindString              // string
)

// goTypes maps each kind to the Go type that stores it.
var goTypes = [...]string{
	KindInvalid: "",
	KindBoolean: "bool",
	KindInteger: "int",
	KindFloat:   "float64",
	KindString:  "string",
}

// GoType returns the name of the narrowest Go type that stores values of
// kind k, or "" for [KindInvalid].
func (k Kind) GoType() string {
	if int(k) >= len(goTypes) {
		return ""
	}

	return goTypes[k]
}

// Value is a typed literal: exactly one of boolean, integer, float or
// string. The zero Value has kind [KindInvalid].
type Value struct {
	kind Kind
	bit  bool
	num  int
	real float64
	str  string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBoolean, bit: b} }

// Int returns an integer Value.
func Int(i int) Value { return Value{kind: KindInteger, num: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, real: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Bool returns the boolean held by v and whether v is a boolean.
func (v Value) Bool() (bool, bool) { return v.bit, v.kind == KindBoolean }

func (v Value) Int() (int, bool) { return v.num, v.kind == KindInteger }

func (v Value) Float() (float64, bool) { return v.real, v.kind == KindFloat }

func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Any returns the value as its native Go type, or nil if v is invalid.
func (v Value) Any() any {
	switch v.kind {
	case KindBoolean:
		return v.bit
	case KindInteger:
		return v.num
	case KindFloat:
		return v.real
	case KindString:
		return v.str
	}

	return nil
}

// Equal reports whether v and w have the same kind and value.
// Float values are compared bitwise, so NaN equals NaN.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindBoolean:
		return v.bit == w.bit
	case KindInteger:
		return v.num == w.num
	case KindFloat:
		return math.Float64bits(v.real) == math.Float64bits(w.real)
	case KindString:
		return v.str == w.str
	}

	return true
}

// Literal returns v in source form. For every value accepted by
// [NewEntry], parsing the literal yields a Value equal to v.
func (v Value) Literal() string {
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.bit)
	case KindInteger:
		return strconv.Itoa(v.num)
	case KindFloat:
		return formatFloat(v.real)
	case KindString:
		return `"` + v.str + `"`
	}

	return ""
}

// String returns v.Literal(), or "<invalid>".
func (v Value) String() string {
	if v.kind == KindInvalid {
		return "<invalid>"
	}

	return v.Literal()
}

// representable reports why v cannot be written as a source literal, or ""
// if it can.
func (v Value) representable() string {
	switch v.kind {
	case KindInvalid:
		return "invalid value"
	case KindInteger:
		if v.num < 0 {
			return "negative integers have no literal form"
		}
	case KindFloat:
		if math.IsInf(v.real, 0) || math.IsNaN(v.real) {
			return "non-finite float"
		}
	case KindString:
		if strings.ContainsAny(v.str, "\"\r\n") {
			return "string contains a quote or line break"
		}
	}

	return ""
}

// formatFloat formats f as the shortest decimal that always contains a
// decimal point, never an exponent.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}

	return s
}
