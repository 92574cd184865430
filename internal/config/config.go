package config

import (
	"fmt"
	"strings"
	"time"
)

// LoggingConfig configures the daemon log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
	// Dir holds rotated log files; empty logs to stderr.
	Dir string `yaml:"dir,omitempty"`
	// MaxSizeMB rotates the log after this many megabytes.
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep.
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config holds daemon settings read from config.yaml. The borderless on/off
// switch lives in its own JSON file, see Service.
type Config struct {
	Display           string        `yaml:"display,omitempty"`
	FullscreenHotkey  string        `yaml:"fullscreen_hotkey"`
	EnableHotkey      string        `yaml:"enable_hotkey"`
	HUDSeconds        int           `yaml:"hud_seconds"`
	HUDLines          int           `yaml:"hud_lines,omitempty"`
	HUDFont           string        `yaml:"hud_font,omitempty"`
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
	Logging           LoggingConfig `yaml:"logging,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		FullscreenHotkey:  "Mod4-F11",
		EnableHotkey:      "Mod4-b",
		HUDSeconds:        2,
		HUDFont:           "fixed",
		ReconcileInterval: 10 * time.Second,
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 8,
			MaxFiles:  3,
		},
	}
}

// ValidationError points at the offending config key.
type ValidationError struct {
	Path string
	File string
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.FullscreenHotkey) == "" {
		return &ValidationError{Path: "fullscreen_hotkey", Err: fmt.Errorf("fullscreen_hotkey is required")}
	}
	if strings.TrimSpace(c.EnableHotkey) == "" {
		return &ValidationError{Path: "enable_hotkey", Err: fmt.Errorf("enable_hotkey is required")}
	}
	if c.FullscreenHotkey == c.EnableHotkey {
		return &ValidationError{Path: "enable_hotkey", Err: fmt.Errorf("enable_hotkey must differ from fullscreen_hotkey")}
	}
	if c.HUDSeconds < 0 {
		return &ValidationError{Path: "hud_seconds", Err: fmt.Errorf("hud_seconds must be >= 0")}
	}
	if c.HUDLines < 0 {
		return &ValidationError{Path: "hud_lines", Err: fmt.Errorf("hud_lines must be >= 0")}
	}
	if c.ReconcileInterval < 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be >= 0")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging", Err: fmt.Errorf("logging.max_size_mb and logging.max_files must be >= 0")}
	}
	return nil
}

// HUDDuration is how long the status overlay stays visible.
func (c *Config) HUDDuration() time.Duration {
	return time.Duration(c.HUDSeconds) * time.Second
}
