package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/confgen/conf"
)

// commandPrefix starts a shell command instead of an expression.
const commandPrefix = ":"

// commands are the available shell commands.
var commands = []string{"help", "list", "clear", "quit"}

// builtins are the names of the expression language's builtin functions.
var builtins = slices.Sorted(maps.Keys(builtin.Index))

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: white space, the member-access dot, and operator or punctuation
// characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word starting
// at wordStart. For input "x + Server.PO" with the word "PO", the parent
// path is "Server". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// candidates returns the completions valid after parent: section names and
// builtin functions at the top level, or the keys of the section named by
// parent.
func candidates(doc *conf.Document, parent string) []string {
	var names []string

	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true

			names = append(names, name)
		}
	}

	if parent == "" {
		for s := range doc.All() {
			add(s.Name())
		}

		for _, name := range builtins {
			add(name)
		}

		return names
	}

	// Sections may repeat, and all of their keys are reachable.
	for s := range doc.All() {
		if s.Name() != parent {
			continue
		}

		for e := range s.All() {
			add(e.Key())
		}
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best first, and the word boundaries. An empty word yields
// no matches, except after a dot where every member is offered.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var names []string

	if strings.HasPrefix(strings.TrimSpace(input), commandPrefix) {
		if word == "" {
			return nil, wordStart, wordEnd
		}

		names = commands
	} else {
		parent := parentPath(input, wordStart)
		names = candidates(m.doc, parent)

		if word == "" {
			if parent == "" {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(names))
			for i, name := range names {
				matches[i] = fuzzy.Match{Str: name, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if len(names) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, names), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += lipgloss.Width(sep)
		}

		if i > 0 && i < len(matches)-1 && used+entryWidth+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Builtin functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := builtin.Index[match.Str]; ok {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
