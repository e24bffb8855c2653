package cli

import (
	"io"
	"testing"

	"github.com/ardnew/confgen/log"
)

func TestLogConfig_Scan(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	tests := []struct {
		name   string
		args   []string
		want   logConfig
		level  log.Level
		format log.Format
	}{
		{
			name:   "separate values",
			args:   []string{"check", "--log-level", "debug", "--log-format", "json", "x.conf"},
			want:   logConfig{Level: "debug", Format: "json", Pretty: true},
			level:  log.LevelDebug,
			format: log.FormatJSON,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=trace", "--log-format=text", "--no-log-pretty", "--log-caller"},
			want:   logConfig{Level: "trace", Format: "text", Caller: true},
			level:  log.LevelTrace,
			format: log.FormatText,
		},
		{
			name:   "explicit booleans",
			args:   []string{"--log-pretty=false", "--no-log-caller=false", "--log-level=error"},
			want:   logConfig{Level: "error", Format: "text", Caller: true},
			level:  log.LevelError,
			format: log.FormatText,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--log-level=info", "--", "--log-level=debug"},
			want:   logConfig{Level: "info", Format: "text", Pretty: true},
			level:  log.LevelInfo,
			format: log.FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetDefault(log.Make(io.Discard))

			f := logConfig{Format: "text", Pretty: true}
			f.scan(tt.args)

			if f != tt.want {
				t.Errorf("scan() = %+v, want %+v", f, tt.want)
			}

			if got := log.Default().Level(); got != tt.level {
				t.Errorf("logger level = %v, want %v", got, tt.level)
			}

			if got := log.Default().Format(); got != tt.format {
				t.Errorf("logger format = %v, want %v", got, tt.format)
			}
		})
	}
}

func TestLogLevel_UnmarshalRejectsUnknown(t *testing.T) {
	var l logLevel
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Errorf("UnmarshalText(loud) succeeded: %q", l)
	}

	var f logFormat
	if err := f.UnmarshalText([]byte("xml")); err == nil {
		t.Errorf("UnmarshalText(xml) succeeded: %q", f)
	}
}

func TestLogConfig_Vars(t *testing.T) {
	vars := (&logConfig{}).vars()

	if vars["logLevel"] != log.DefaultLevel.String() {
		t.Errorf("logLevel = %q", vars["logLevel"])
	}

	if vars["logLevelEnum"] != "trace,debug,info,warn,error" {
		t.Errorf("logLevelEnum = %q", vars["logLevelEnum"])
	}

	if vars["logFormatEnum"] != "text,json" {
		t.Errorf("logFormatEnum = %q", vars["logFormatEnum"])
	}
}
