package conf

import (
	"slices"
	"strconv"
	"unicode/utf8"
)

// rule matches input at pos. On success it returns the position just past
// the match and the produced value. On failure it returns pos unchanged and
// has reported what it expected through s.fail.
type rule[T any] func(s *state, pos int) (int, T, bool)

// state is the bookkeeping of a single parse. Values flow through rule
// results; state only records failures.
type state struct {
	src string

	// far is the greatest offset at which a rule failed and expected lists
	// the labels of the rules that failed there.
	far      int
	expected []string
	context  string

	scope []frame
	hush  int // failures at this offset are reported by an enclosing label

	fatal error
	lines []int
}

type frame struct {
	name  string
	start int
}

func newState(src string) *state { return &state{src: src, hush: -1} }

func (s *state) fail(pos int, label string) {
	if pos == s.hush || pos < s.far {
		return
	}

	if pos > s.far || len(s.expected) == 0 {
		s.far = pos
		s.expected = s.expected[:0]
		s.context = s.scopeAt(pos)
	}

	if !slices.Contains(s.expected, label) {
		s.expected = append(s.expected, label)
	}
}

// abort records an error that no alternative can recover from.
func (s *state) abort(err error) {
	if s.fatal == nil {
		s.fatal = err
	}
}

// enter opens a named scope starting at pos. The returned func closes it.
func (s *state) enter(name string, pos int) func() {
	s.scope = append(s.scope, frame{name, pos})

	return func() { s.scope = s.scope[:len(s.scope)-1] }
}

// scopeAt names the innermost open scope that began before pos.
func (s *state) scopeAt(pos int) string {
	for i := len(s.scope) - 1; i >= 0; i-- {
		if s.scope[i].start < pos {
			return s.scope[i].name
		}
	}

	return ""
}

func (s *state) position(off int) Position {
	if s.lines == nil {
		s.lines = lineStarts(s.src)
	}

	off = min(max(off, 0), len(s.src))

	i, found := slices.BinarySearch(s.lines, off)
	if !found {
		i--
	}

	return Position{
		Offset: off,
		Line:   i + 1,
		Column: utf8.RuneCountInString(s.src[s.lines[i]:off]) + 1,
	}
}

// lineStarts returns the offset of each line in src. Lines end at "\r\n",
// "\r" or "\n", the same terminators Spacing accepts.
func lineStarts(src string) []int {
	starts := []int{0}

	for i := range len(src) {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 == len(src) || src[i+1] != '\n' {
				starts = append(starts, i+1)
			}
		}
	}

	return starts
}

func (s *state) syntaxError(pos int) *SyntaxError {
	exp := slices.Clone(s.expected)
	slices.Sort(exp)

	return &SyntaxError{
		Pos:      s.position(pos),
		Expected: exp,
		Context:  s.context,
		Found:    describe(s.src, pos),
		source:   s.src,
	}
}

// Combinators.

// label reports a failure of r that does not get past pos as a single
// expectation named name, hiding the alternatives r tried.
func label[T any](name string, r rule[T]) rule[T] {
	return func(s *state, pos int) (int, T, bool) {
		outer := s.hush
		s.hush = pos
		next, v, ok := r(s, pos)
		s.hush = outer

		if !ok {
			s.fail(pos, name)
		}

		return next, v, ok
	}
}

// choice tries each alternative at pos and commits to the first that
// matches.
func choice[T any](alts ...rule[T]) rule[T] {
	return func(s *state, pos int) (int, T, bool) {
		for _, alt := range alts {
			if next, v, ok := alt(s, pos); ok {
				return next, v, true
			}

			if s.fatal != nil {
				break
			}
		}

		var zero T

		return pos, zero, false
	}
}

// oneOrMore applies r repeatedly, collecting values until it fails.
func oneOrMore[T any](r rule[T]) rule[[]T] {
	return func(s *state, pos int) (int, []T, bool) {
		var out []T

		for s.fatal == nil {
			next, v, ok := r(s, pos)
			if !ok || next == pos {
				break
			}

			out = append(out, v)
			pos = next
		}

		if len(out) == 0 || s.fatal != nil {
			return pos, nil, false
		}

		return pos, out, true
	}
}

// lexeme surrounds r with spacing.
func lexeme[T any](r rule[T]) rule[T] {
	return func(s *state, pos int) (int, T, bool) {
		next, v, ok := r(s, skipSpace(s.src, pos))
		if !ok {
			return pos, v, false
		}

		return skipSpace(s.src, next), v, true
	}
}

func char(c byte) rule[struct{}] {
	name := strconv.Quote(string(c))

	return func(s *state, pos int) (int, struct{}, bool) {
		if pos < len(s.src) && s.src[pos] == c {
			return pos + 1, struct{}{}, true
		}

		s.fail(pos, name)

		return pos, struct{}{}, false
	}
}

// Lexical rules.

var (
	openSection  = lexeme(char('['))
	closeSection = lexeme(char(']'))
	equals       = lexeme(char('='))
	identifier   = lexeme(word)
	literal      = lexeme(label("literal",
		choice(floatLiteral, integerLiteral, booleanLiteral, stringLiteral)))

	sections    = oneOrMore(section)
	assignments = oneOrMore(assignment)
)

// skipSpace skips whitespace and # comments. A comment runs through the
// end of its line, including the line terminator, or to end of input.
func skipSpace(src string, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\r', '\n', '\f':
			pos++

		case '#':
			for pos < len(src) && src[pos] != '\n' && src[pos] != '\r' {
				pos++
			}

			if pos < len(src) && src[pos] == '\r' {
				pos++
			}

			if pos < len(src) && src[pos] == '\n' {
				pos++
			}

		default:
			return pos
		}
	}

	return pos
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// scanWord returns the end of the run of word bytes starting at pos and
// whether the run consists of digits only.
func scanWord(src string, pos int) (int, bool) {
	digits := true

	for ; pos < len(src) && isWordByte(src[pos]); pos++ {
		digits = digits && isDigit(src[pos])
	}

	return pos, digits
}

func skipDigits(src string, pos int) int {
	for pos < len(src) && isDigit(src[pos]) {
		pos++
	}

	return pos
}

// word matches an identifier. A run of digits alone is an integer, not an
// identifier.
func word(s *state, pos int) (int, string, bool) {
	end, digits := scanWord(s.src, pos)
	if end == pos || digits {
		s.fail(pos, "identifier")

		return pos, "", false
	}

	return end, s.src[pos:end], true
}

func floatLiteral(s *state, pos int) (int, Value, bool) {
	p := pos
	if p < len(s.src) && s.src[p] == '-' {
		p++
	}

	q := skipDigits(s.src, p)
	if q == p {
		s.fail(p, "digit")

		return pos, Value{}, false
	}

	if q >= len(s.src) || s.src[q] != '.' {
		s.fail(q, `"."`)

		return pos, Value{}, false
	}

	end := skipDigits(s.src, q+1)
	if end == q+1 {
		s.fail(end, "digit")

		return pos, Value{}, false
	}

	text := s.src[pos:end]

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.abort(s.overflow(pos, text, KindFloat, err))

		return pos, Value{}, false
	}

	return end, Float(f), true
}

func integerLiteral(s *state, pos int) (int, Value, bool) {
	end := skipDigits(s.src, pos)
	if end == pos {
		s.fail(pos, "digit")

		return pos, Value{}, false
	}

	text := s.src[pos:end]

	i, err := strconv.ParseInt(text, 10, strconv.IntSize)
	if err != nil {
		s.abort(s.overflow(pos, text, KindInteger, err))

		return pos, Value{}, false
	}

	return end, Int(int(i)), true
}

func booleanLiteral(s *state, pos int) (int, Value, bool) {
	for _, b := range []bool{true, false} {
		text := strconv.FormatBool(b)
		if len(s.src)-pos >= len(text) && s.src[pos:pos+len(text)] == text {
			return pos + len(text), Bool(b), true
		}

		s.fail(pos, text)
	}

	return pos, Value{}, false
}

func stringLiteral(s *state, pos int) (int, Value, bool) {
	if pos >= len(s.src) || s.src[pos] != '"' {
		s.fail(pos, `"\""`)

		return pos, Value{}, false
	}

	defer s.enter("string literal", pos)()

	end := pos + 1
	for end < len(s.src) && s.src[end] != '"' && s.src[end] != '\r' && s.src[end] != '\n' {
		end++
	}

	if end >= len(s.src) || s.src[end] != '"' {
		s.fail(end, `"\""`)

		return pos, Value{}, false
	}

	return end + 1, String(s.src[pos+1 : end]), true
}

func (s *state) overflow(pos int, text string, kind Kind, err error) error {
	p := s.position(pos)

	return ErrNumericOverflow.WithPosition(p).Wrap(&OverflowError{
		Pos:     p,
		Literal: text,
		Kind:    kind,
		Err:     err,
		source:  s.src,
	})
}

// Structural rules.

// assignment = identifier "=" literal
func assignment(s *state, pos int) (int, Entry, bool) {
	at := skipSpace(s.src, pos)
	defer s.enter("assignment", at)()

	p, key, ok := identifier(s, at)
	if !ok {
		return pos, Entry{}, false
	}

	if p, _, ok = equals(s, p); !ok {
		return pos, Entry{}, false
	}

	p, v, ok := literal(s, p)
	if !ok {
		return pos, Entry{}, false
	}

	return p, Entry{key: key, value: v, pos: s.position(at)}, true
}

// section = "[" identifier "]" assignment+
func section(s *state, pos int) (int, *Section, bool) {
	at := skipSpace(s.src, pos)
	defer s.enter("section", at)()

	p, _, ok := openSection(s, at)
	if !ok {
		return pos, nil, false
	}

	p, name, ok := identifier(s, p)
	if !ok {
		return pos, nil, false
	}

	if p, _, ok = closeSection(s, p); !ok {
		return pos, nil, false
	}

	p, entries, ok := assignments(s, p)
	if !ok {
		return pos, nil, false
	}

	return p, &Section{name: name, entries: entries, pos: s.position(at)}, true
}

// configuration = section+ end-of-input
//
// On failure it returns the offset just past the longest parsed prefix of
// sections, or -1 if not even one section matched.
func configuration(s *state) (*Document, int, bool) {
	end, secs, ok := sections(s, 0)
	if !ok {
		return nil, -1, false
	}

	end = skipSpace(s.src, end)
	if end < len(s.src) {
		s.fail(end, "end of input")

		return nil, end, false
	}

	return &Document{sections: secs}, end, true
}
