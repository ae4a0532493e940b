package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"bogus", slog.LevelWarn},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v; want %v", tt.input, got, tt.expected)
		}
	}
}

func TestSetupJSON(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := Setup("info", "json", &buf)
	logger.Debug("hidden")
	logger.Info("shown", "sheet", "Data")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry logged at info level: %s", out)
	}
	if !strings.Contains(out, `"sheet":"Data"`) {
		t.Errorf("expected JSON attribute in output, got %s", out)
	}
	if slog.Default() != logger {
		t.Error("Setup did not install the default logger")
	}
}
