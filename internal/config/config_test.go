package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.HUDDuration() != 2*time.Second {
		t.Fatalf("expected 2s HUD duration, got %v", cfg.HUDDuration())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FullscreenHotkey != "Mod4-F11" {
		t.Fatalf("expected default hotkey, got %q", cfg.FullscreenHotkey)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EnableHotkey != "Mod4-b" {
		t.Fatalf("expected default enable hotkey, got %q", cfg.EnableHotkey)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := strings.Join([]string{
		"display: \":1\"",
		"fullscreen_hotkey: Mod4-Return",
		"hud_seconds: 5",
		"reconcile_interval: 30s",
		"logging:",
		"  level: debug",
		"  dir: /tmp/borderless-logs",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Display != ":1" || cfg.FullscreenHotkey != "Mod4-Return" || cfg.HUDSeconds != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ReconcileInterval != 30*time.Second {
		t.Fatalf("expected 30s reconcile interval, got %v", cfg.ReconcileInterval)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Dir != "/tmp/borderless-logs" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	// Unset nested fields keep defaults.
	if cfg.Logging.MaxFiles != 3 {
		t.Fatalf("expected default max_files 3, got %d", cfg.Logging.MaxFiles)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fullscren_hotkey: Mod4-f\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadFromPath_ValidationErrorHasLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "hud_seconds: 1\nlogging:\n  level: verbose\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "logging.level" || verr.Line != 3 {
		t.Fatalf("expected logging.level at line 3, got %q line %d", verr.Path, verr.Line)
	}
	if !strings.HasPrefix(err.Error(), path+":3:") {
		t.Fatalf("error should carry file:line, got %q", err.Error())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"empty fullscreen hotkey", func(c *Config) { c.FullscreenHotkey = " " }, "fullscreen_hotkey"},
		{"empty enable hotkey", func(c *Config) { c.EnableHotkey = "" }, "enable_hotkey"},
		{"same hotkeys", func(c *Config) { c.EnableHotkey = c.FullscreenHotkey }, "enable_hotkey"},
		{"negative hud", func(c *Config) { c.HUDSeconds = -1 }, "hud_seconds"},
		{"negative hud lines", func(c *Config) { c.HUDLines = -2 }, "hud_lines"},
		{"negative reconcile", func(c *Config) { c.ReconcileInterval = -time.Second }, "reconcile_interval"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.path {
				t.Fatalf("Validate() = %v, want error at %q", err, tt.path)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgPath, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if cfgPath != filepath.Join(home, ".config", "borderless", "config.yaml") {
		t.Fatalf("unexpected config path %q", cfgPath)
	}
	statePath, err := DefaultStatePath()
	if err != nil {
		t.Fatalf("DefaultStatePath: %v", err)
	}
	if statePath != filepath.Join(home, ".config", "borderless", "borderlessmc.json") {
		t.Fatalf("unexpected state path %q", statePath)
	}
}

func TestMarshalYAML(t *testing.T) {
	out, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(out)
	for _, want := range []string{"fullscreen_hotkey: Mod4-F11", "reconcile_interval: 10s", "  level: info"} {
		if !strings.Contains(text, want) {
			t.Fatalf("yaml missing %q:\n%s", want, text)
		}
	}
}
