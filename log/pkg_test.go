package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_UsesDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)))

	tests := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Trace, "TRACE"},
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) ||
				!strings.Contains(out, `"key":"value"`) {
				t.Errorf("unexpected record: %s", out)
			}
		})
	}
}

func TestConfig_Reconfigures(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(Make(&buf, WithLevel(LevelError), WithFormat(FormatJSON), WithCaller(true)))

	if l := Config(WithLevel(LevelInfo)); l.Level() != LevelInfo {
		t.Fatalf("Config returned level %v", l.Level())
	}

	Info("visible")

	out := buf.String()
	if !strings.Contains(out, "visible") {
		t.Fatalf("record missing after Config: %q", out)
	}

	if !strings.Contains(out, "pkg_test.go") {
		t.Errorf("caller should point at the test file: %q", out)
	}
}
