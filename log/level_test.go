package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"TRACE", LevelTrace, false},
		{"debug", LevelDebug, false},
		{"Info", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"error", LevelError, false},
		{"INFO+2", Level(2), false},
		{"loud", DefaultLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for name := range Levels() {
		var l Level
		if err := l.UnmarshalText([]byte(name)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", name, err)
		}

		out, _ := l.MarshalText()
		if string(out) != name {
			t.Errorf("round trip of %q gave %q", name, out)
		}
	}
}

func TestEnumerations(t *testing.T) {
	if got := slices.Collect(Levels()); !slices.Equal(got,
		[]string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %v", got)
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestResolveLayout(t *testing.T) {
	tests := map[string]string{
		"RFC3339":     time.RFC3339,
		"rfc-3339":    time.RFC3339,
		"Kitchen":     time.Kitchen,
		"ms":          time.StampMilli,
		"none":        "",
		"   ":         "",
		"2006-01-02":  "2006-01-02",
		"15:04:05.00": "15:04:05.00",
	}

	for in, want := range tests {
		if got := resolveLayout(in); got != want {
			t.Errorf("resolveLayout(%q) = %q, want %q", in, got, want)
		}
	}
}
