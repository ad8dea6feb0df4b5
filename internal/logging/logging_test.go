package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if result := ParseLevel(tt.input); result != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(&buf, Options{Level: "warn"})
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "word", "Donaudampfschiff")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "word=Donaudampfschiff") {
		t.Errorf("log output = %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(&buf, Options{JSON: true})
	defer closer.Close()

	logger.Info("loaded", "entries", 3)
	if !strings.Contains(buf.String(), `"entries":3`) {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.log")
	var buf bytes.Buffer
	logger, closer := New(&buf, Options{File: path})
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "to file") || !strings.Contains(buf.String(), "to file") {
		t.Errorf("file = %q, writer = %q", data, buf.String())
	}
}
