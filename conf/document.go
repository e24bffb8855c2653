package conf

import (
	"iter"
	"log/slog"
	"slices"
)

// Entry is a key and its typed value.
type Entry struct {
	key   string
	value Value
	pos   Position
}

// NewEntry returns an Entry after checking that key is an identifier and
// that v has a literal form.
func NewEntry(key string, v Value) (Entry, error) {
	if !isIdentifier(key) {
		return Entry{}, ErrInvalidDocument.With(
			slog.String("issue", "key is not an identifier"),
			slog.String("key", key))
	}

	if why := v.representable(); why != "" {
		return Entry{}, ErrInvalidDocument.With(
			slog.String("issue", why),
			slog.String("key", key))
	}

	return Entry{key: key, value: v}, nil
}

func (e Entry) Key() string { return e.key }

func (e Entry) Value() Value { return e.value }

// Pos returns where e was declared. It is the zero Position for entries
// not produced by the parser.
func (e Entry) Pos() Position { return e.pos }

// GoType returns the Go type that stores e's value.
func (e Entry) GoType() string { return e.value.kind.GoType() }

// Section is a named, non-empty, ordered list of entries.
// Duplicate keys are preserved in declaration order.
type Section struct {
	name    string
	entries []Entry
	pos     Position
}

// NewSection returns a Section after checking that name is an identifier
// and that at least one entry is given.
func NewSection(name string, entries ...Entry) (*Section, error) {
	if !isIdentifier(name) {
		return nil, ErrInvalidDocument.With(
			slog.String("issue", "section name is not an identifier"),
			slog.String("section", name))
	}

	if len(entries) == 0 {
		return nil, ErrInvalidDocument.With(
			slog.String("issue", "section has no entries"),
			slog.String("section", name))
	}

	for _, e := range entries {
		if e.key == "" {
			return nil, ErrInvalidDocument.With(
				slog.String("issue", "zero entry"),
				slog.String("section", name))
		}
	}

	return &Section{name: name, entries: slices.Clone(entries)}, nil
}

func (s *Section) Name() string { return s.name }

func (s *Section) Pos() Position { return s.pos }

func (s *Section) Len() int { return len(s.entries) }

// Entries returns a copy of the entries of s.
func (s *Section) Entries() []Entry { return slices.Clone(s.entries) }

// All iterates the entries of s in declaration order.
func (s *Section) All() iter.Seq[Entry] { return slices.Values(s.entries) }

// Get returns the value of the last entry with the given key.
func (s *Section) Get(key string) (Value, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].key == key {
			return s.entries[i].value, true
		}
	}

	return Value{}, false
}

// Equal reports whether s and t have the same name and entries, ignoring
// positions.
func (s *Section) Equal(t *Section) bool {
	if s == nil || t == nil {
		return s == t
	}

	return s.name == t.name && slices.EqualFunc(s.entries, t.entries,
		func(a, b Entry) bool { return a.key == b.key && a.value.Equal(b.value) })
}

// Document is the result of a successful parse: a non-empty, ordered list
// of sections. A Document is immutable and safe for concurrent use.
type Document struct {
	sections []*Section
}

// NewDocument returns a Document holding sections.
func NewDocument(sections ...*Section) (*Document, error) {
	if len(sections) == 0 {
		return nil, ErrInvalidDocument.With(
			slog.String("issue", "document has no sections"))
	}

	if slices.Contains(sections, nil) {
		return nil, ErrInvalidDocument.With(
			slog.String("issue", "nil section"))
	}

	return &Document{sections: slices.Clone(sections)}, nil
}

func (d *Document) Len() int { return len(d.sections) }

// Sections returns a copy of the sections of d.
func (d *Document) Sections() []*Section { return slices.Clone(d.sections) }

// All iterates the sections of d in declaration order.
func (d *Document) All() iter.Seq[*Section] { return slices.Values(d.sections) }

// Section returns the first section with the given name.
func (d *Document) Section(name string) (*Section, bool) {
	i := slices.IndexFunc(d.sections, func(s *Section) bool { return s.name == name })
	if i < 0 {
		return nil, false
	}

	return d.sections[i], true
}

// Lookup returns the value of key in section. If either name is declared
// more than once, the last declaration wins, matching the order in which
// generated constants would be assigned.
func (d *Document) Lookup(section, key string) (Value, bool) {
	for i := len(d.sections) - 1; i >= 0; i-- {
		if d.sections[i].name != section {
			continue
		}

		if v, ok := d.sections[i].Get(key); ok {
			return v, true
		}
	}

	return Value{}, false
}

// Paths returns every distinct "Section.KEY" path of d in declaration order.
func (d *Document) Paths() []string {
	var (
		paths []string
		seen  = make(map[string]bool)
	)

	for _, s := range d.sections {
		for _, e := range s.entries {
			p := s.name + "." + e.key
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	return paths
}

// ToMap returns d as nested maps of native Go values, keyed by section name
// and then key. Later declarations overwrite earlier ones.
func (d *Document) ToMap() map[string]map[string]any {
	m := make(map[string]map[string]any, len(d.sections))

	for _, s := range d.sections {
		sm, ok := m[s.name]
		if !ok {
			sm = make(map[string]any, len(s.entries))
			m[s.name] = sm
		}

		for _, e := range s.entries {
			sm[e.key] = e.value.Any()
		}
	}

	return m
}

// Equal reports whether d and o have equal sections in the same order,
// ignoring positions.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}

	return slices.EqualFunc(d.sections, o.sections, (*Section).Equal)
}

func isIdentifier(s string) bool {
	end, digits := scanWord(s, 0)

	return end > 0 && end == len(s) && !digits
}
