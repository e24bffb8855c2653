package conf

import (
	"errors"
	"maps"
	"math"
	"slices"
	"testing"
)

func TestNewEntry_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   Value
		wantErr bool
	}{
		{"ok", "KEY", Int(1), false},
		{"leading digit", "1KEY", Int(1), false},
		{"numeric key", "123", Int(1), true},
		{"empty key", "", Int(1), true},
		{"punctuation", "A-B", Int(1), true},
		{"invalid value", "K", Value{}, true},
		{"negative integer", "K", Int(-1), true},
		{"infinite float", "K", Float(math.Inf(1)), true},
		{"nan", "K", Float(math.NaN()), true},
		{"quote in string", "K", String(`a"b`), true},
		{"newline in string", "K", String("a\nb"), true},
		{"negative float", "K", Float(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEntry(%q, %v) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("error %v does not match ErrInvalidDocument", err)
			}
		})
	}
}

func mustEntry(t *testing.T, key string, v Value) Entry {
	t.Helper()

	e, err := NewEntry(key, v)
	if err != nil {
		t.Fatal(err)
	}

	return e
}

func TestNewDocument(t *testing.T) {
	if _, err := NewSection("S"); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("empty section error = %v", err)
	}

	if _, err := NewSection("9", mustEntry(t, "K", Int(1))); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("numeric section name error = %v", err)
	}

	if _, err := NewSection("S", Entry{}); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("zero entry error = %v", err)
	}

	if _, err := NewDocument(); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("empty document error = %v", err)
	}

	if _, err := NewDocument(nil); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("nil section error = %v", err)
	}

	sec, err := NewSection("UserConfig", mustEntry(t, "MAX_DISK_SPACE", Int(1024)))
	if err != nil {
		t.Fatal(err)
	}

	built, err := NewDocument(sec)
	if err != nil {
		t.Fatal(err)
	}

	if parsed := mustParse(t, "[UserConfig]\nMAX_DISK_SPACE = 1024\n"); !built.Equal(parsed) {
		t.Errorf("built document %s differs from parsed %s", built, parsed)
	}
}

func TestDocument_Immutable(t *testing.T) {
	doc := mustParse(t, "[A]\nX = 1\n[B]\nY = 2\n")

	secs := doc.Sections()
	secs[0] = nil

	if s, ok := doc.Section("A"); !ok || s == nil {
		t.Fatal("modifying Sections() result changed the document")
	}

	a, _ := doc.Section("A")
	entries := a.Entries()
	entries[0] = Entry{}

	if v, ok := a.Get("X"); !ok || !v.Equal(Int(1)) {
		t.Error("modifying Entries() result changed the section")
	}
}

func TestDocument_Queries(t *testing.T) {
	doc := mustParse(t, `[Server]
HOST = "localhost"
PORT = 80
PORT = 8080
[Client]
RETRIES = 3
[Server]
TLS = true
`)

	if got, want := doc.Paths(), []string{
		"Server.HOST", "Server.PORT", "Client.RETRIES", "Server.TLS",
	}; !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}

	if v, ok := doc.Lookup("Server", "PORT"); !ok || !v.Equal(Int(8080)) {
		t.Errorf("Lookup(Server, PORT) = %v, %v", v, ok)
	}

	if v, ok := doc.Lookup("Server", "TLS"); !ok || !v.Equal(Bool(true)) {
		t.Errorf("Lookup(Server, TLS) = %v, %v", v, ok)
	}

	if _, ok := doc.Lookup("Client", "PORT"); ok {
		t.Error("Lookup(Client, PORT) should miss")
	}

	if _, ok := doc.Section("Missing"); ok {
		t.Error("Section(Missing) should miss")
	}

	m := doc.ToMap()
	if got := slices.Sorted(maps.Keys(m)); !slices.Equal(got, []string{"Client", "Server"}) {
		t.Errorf("ToMap() sections = %v", got)
	}

	if m["Server"]["PORT"] != 8080 || m["Server"]["TLS"] != true || m["Server"]["HOST"] != "localhost" {
		t.Errorf("ToMap()[Server] = %v", m["Server"])
	}

	for s := range doc.All() {
		for e := range s.All() {
			if e.GoType() != e.Value().Kind().GoType() {
				t.Errorf("%s.%s GoType = %q", s.Name(), e.Key(), e.GoType())
			}
		}
	}
}
