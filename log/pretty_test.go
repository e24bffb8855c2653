package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandler_Line(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelDebug),
		WithPretty(true),
		WithTimeLayout("none"))

	logger.With(slog.String("file", "app.conf")).
		Debug("parsed", slog.Int("sections", 2), slog.Bool("cached", false),
			slog.Any("error", errors.New("boom")),
			slog.Group("pos", slog.Int("line", 3)))

	// A bytes.Buffer is not a terminal, so no escape sequences are emitted.
	got := strings.TrimSpace(buf.String())
	for _, want := range []string{
		"DEBUG", "parsed", "file=app.conf", "sections=2", "cached=false",
		`error="boom"`, "pos.line=3",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pretty output %q missing %q", got, want)
		}
	}

	if strings.Contains(got, "\x1b[") {
		t.Errorf("unexpected ANSI escapes in non-terminal output: %q", got)
	}

	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected a single line, got %q", buf.String())
	}
}

func TestPrettyHandler_IgnoredForJSON(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelInfo), WithPretty(true), WithFormat(FormatJSON)).
		Info("x")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("JSON format should not be prettified: %q", buf.String())
	}
}
