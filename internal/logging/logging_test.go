package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/borderless/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_StderrWithoutDir(t *testing.T) {
	l, err := New(config.LoggingConfig{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()
	if l.LogFile != "" {
		t.Fatalf("expected no log file, got %q", l.LogFile)
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := New(config.LoggingConfig{Level: "debug", Dir: dir, MaxSizeMB: 1, MaxFiles: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("entered borderless", "window", 42)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "borderless.slog"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var last map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("last line is not JSON: %v", err)
	}
	if last["msg"] != "entered borderless" || last["window"] != float64(42) {
		t.Fatalf("unexpected record: %v", last)
	}
}

func TestNew_RejectsBadLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
