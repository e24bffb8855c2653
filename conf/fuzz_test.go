package conf

import (
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		sample,
		"[A]\nX = 1\n",
		"[A]\nX = \"abc\n",
		"[A\nX = 5",
		"X = 5",
		"",
		"[A]X=1.5[B]Y=-0.25 Z=false",
		"[A]\nX = 99999999999999999999999\n",
		"# only\n",
		"[A]\r\nK = \"\" # c",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		doc, err := Parse(src)
		if err != nil {
			if doc != nil {
				t.Fatal("document returned with error")
			}

			for _, sentinel := range []error{ErrSyntax, ErrIncompleteInput, ErrNumericOverflow} {
				if errors.Is(err, sentinel) {
					return
				}
			}

			t.Fatalf("unexpected error class: %v", err)
		}

		if doc.Len() == 0 {
			t.Fatal("empty document")
		}

		for s := range doc.All() {
			if s.Len() == 0 {
				t.Fatalf("empty section %q", s.Name())
			}
		}

		again, err := Parse(doc.String())
		if err != nil {
			t.Fatalf("canonical form does not parse: %v\n%s", err, doc)
		}

		if !again.Equal(doc) {
			t.Fatalf("canonical form changed the document:\n%s\n---\n%s", doc, again)
		}
	})
}
