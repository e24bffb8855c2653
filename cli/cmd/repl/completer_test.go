package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/confgen/conf"
)

func TestWordBounds_ExprOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "Server.PORT", 11, "PORT", 7, 11},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_paren", "len(fo", 6, "fo", 4, 6},
		{"after_comma", "max(a, fo", 9, "fo", 7, 9},
		{"in_ternary", "x ? fo", 6, "fo", 4, 6},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "MAX_DISK", 8, "MAX_DISK", 0, 8},
		{"command", ":he", 3, "he", 1, 3},
		{"empty_after_dot", "Server.", 7, "", 7, 7},
		{"cursor_past_end", "abc", 10, "abc", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath_WithOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"member", "Server.PO", 7, "Server"},
		{"after_operator", "x + Server.", 11, "Server"},
		{"after_paren", "(Server.", 8, "Server"},
		{"no_chain", "a + ", 4, ""},
		{"deep_chain", "a.b.", 4, "a.b"},
		{"after_equals", "x == Client.", 12, "Client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parentPath(tt.input, tt.wordStart)
			if got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	doc, err := conf.Parse("[Server]\nPORT = 80\nHOST = \"h\"\n[Client]\nRETRIES = 3\n[Server]\nPORT = 81\nTLS = true\n")
	if err != nil {
		t.Fatal(err)
	}

	top := candidates(doc, "")
	if !slices.Contains(top, "Server") || !slices.Contains(top, "Client") {
		t.Errorf("top-level candidates missing sections: %v", top)
	}

	if !slices.Contains(top, "len") {
		t.Errorf("top-level candidates missing builtin len: %v", top)
	}

	if n := len(slices.DeleteFunc(slices.Clone(top), func(s string) bool { return s != "Server" })); n != 1 {
		t.Errorf("Server offered %d times, want 1", n)
	}

	if got, want := candidates(doc, "Server"), []string{"PORT", "HOST", "TLS"}; !slices.Equal(got, want) {
		t.Errorf("candidates(Server) = %v, want %v", got, want)
	}

	if got := candidates(doc, "Missing"); len(got) != 0 {
		t.Errorf("candidates(Missing) = %v, want none", got)
	}
}
