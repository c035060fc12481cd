package logs_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/metaphox/rots-lang/internal/logs"
)

func TestLogger_Fanout(t *testing.T) {
	var buf bytes.Buffer
	var lines []string
	logger := logs.New(logs.Options{
		Level:  slog.LevelDebug,
		Writer: &buf,
		Sink:   func(s string) { lines = append(lines, s) },
	})

	logger.Debug("parsed", "path", "a.rots", "tokens", 4)

	if !strings.Contains(buf.String(), "msg=parsed") {
		t.Errorf("terminal output: %q", buf.String())
	}
	if len(lines) != 1 {
		t.Fatalf("sink lines: %v", lines)
	}
	if want := "level=DEBUG msg=parsed path=a.rots tokens=4"; lines[0] != want {
		t.Errorf("sink line:\ngot  %q\nwant %q", lines[0], want)
	}
}

func TestLogger_Level(t *testing.T) {
	var lines []string
	logger := logs.New(logs.Options{
		Level:   slog.LevelWarn,
		Discard: true,
		Sink:    func(s string) { lines = append(lines, s) },
	})
	logger.Info("hidden")
	logger.Warn("shown")
	if len(lines) != 1 || !strings.Contains(lines[0], "shown") {
		t.Errorf("got %v", lines)
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logs.New(logs.Options{Format: "json", Writer: &buf})
	logger.Info("done", "files", 2)
	if !strings.Contains(buf.String(), `"msg":"done"`) {
		t.Errorf("got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", 0, false},
	}
	for _, tt := range tests {
		got, err := logs.ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%s: err %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.in, got, tt.want)
		}
	}
	logs.Discard().Error("dropped")
}
