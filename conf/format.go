package conf

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format writes d in canonical source form: one "[Name]" header per
// section, one "KEY = literal" line per entry, and a blank line between
// sections. Parsing the output yields a Document equal to d.
func (d *Document) Format(_ context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for i, s := range d.sections {
		if i > 0 {
			bw.WriteByte('\n')
		}

		fmt.Fprintf(bw, "[%s]\n", s.name)

		for _, e := range s.entries {
			fmt.Fprintf(bw, "%s = %s\n", e.key, e.value.Literal())
		}
	}

	return bw.Flush()
}

// String returns d in canonical source form.
func (d *Document) String() string {
	var b strings.Builder

	_ = d.Format(context.Background(), &b)

	return b.String()
}

// merged returns the sections of d with repeated section names combined and
// repeated keys resolved to their last value, keeping first-declaration
// order.
func (d *Document) merged() []*Section {
	var (
		out   []*Section
		index = make(map[string]int)
	)

	for _, s := range d.sections {
		i, ok := index[s.name]
		if !ok {
			i = len(out)
			index[s.name] = i
			out = append(out, &Section{name: s.name, pos: s.pos})
		}

		for _, e := range s.entries {
			m := out[i]
			if j := indexKey(m.entries, e.key); j >= 0 {
				m.entries[j].value = e.value
			} else {
				m.entries = append(m.entries, e)
			}
		}
	}

	return out
}

func indexKey(entries []Entry, key string) int {
	for i, e := range entries {
		if e.key == key {
			return i
		}
	}

	return -1
}

// orderedJSON is a JSON object that keeps its members in declaration order.
type orderedJSON []*Section

func (o orderedJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, s := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, _ := json.Marshal(s.name)
		buf.Write(name)
		buf.WriteString(":{")

		for j, e := range s.entries {
			if j > 0 {
				buf.WriteByte(',')
			}

			key, _ := json.Marshal(e.key)

			val, err := json.Marshal(e.value.Any())
			if err != nil {
				return nil, err
			}

			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}

		buf.WriteByte('}')
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// FormatJSON writes d as a JSON object of section objects in declaration
// order. Repeated names resolve as in [Document.Lookup]. An indent of zero
// writes compact JSON.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(orderedJSON(d.merged()), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(orderedJSON(d.merged()))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes d as a YAML mapping of section mappings in declaration
// order. An indent of zero writes flow style.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	doc := make(yaml.MapSlice, 0, len(d.sections))

	for _, s := range d.merged() {
		sec := make(yaml.MapSlice, 0, len(s.entries))
		for _, e := range s.entries {
			sec = append(sec, yaml.MapItem{Key: e.key, Value: e.value.Any()})
		}

		doc = append(doc, yaml.MapItem{Key: s.name, Value: sec})
	}

	data, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// FormatTOML writes d as TOML, one table per section. TOML tables are
// unordered; keys are written sorted.
func (d *Document) FormatTOML(_ context.Context, w io.Writer, indent int) error {
	enc := toml.NewEncoder(w)
	enc.Indent = strings.Repeat(" ", max(indent, 0))

	return enc.Encode(d.ToMap())
}

// Print writes a tree view of d listing the kind and position of every
// entry.
func (d *Document) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Document (%d sections)\n", len(d.sections))

	for i, s := range d.sections {
		branch, stem := "├─", "│ "
		if i == len(d.sections)-1 {
			branch, stem = "└─", "  "
		}

		fmt.Fprintf(bw, "%s Section %s @%s\n", branch, s.name, s.pos)

		for j, e := range s.entries {
			leaf := "├─"
			if j == len(s.entries)-1 {
				leaf = "└─"
			}

			fmt.Fprintf(bw, "%s %s Entry %s %s = %s @%s\n",
				stem, leaf, e.key, e.value.kind, e.value.Literal(), e.pos)
		}
	}

	return bw.Flush()
}
