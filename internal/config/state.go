package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// State is the persisted borderless switch.
type State struct {
	// Enabled controls whether fullscreen requests become borderless.
	Enabled bool `json:"enabled"`
}

// DefaultState returns the state used when nothing usable is on disk.
func DefaultState() State {
	return State{Enabled: true}
}

// Service owns the persisted State. It loads lazily on first access and
// writes the file after every mutation. Disk errors never reach callers:
// the in-memory state stays authoritative and failures are logged.
type Service struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	state  State
}

// NewService returns a service backed by path. A nil logger discards output.
func NewService(path string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{path: path, logger: logger}
}

// Path returns the backing file.
func (s *Service) Path() string {
	return s.path
}

// State returns a copy of the current state, loading it on first use.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.state
}

// Enabled reports the current switch.
func (s *Service) Enabled() bool {
	return s.State().Enabled
}

// SetEnabled updates and persists the switch.
func (s *Service) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	s.state.Enabled = enabled
	s.saveLocked()
}

// Toggle flips the switch, persists it, and returns the new value.
func (s *Service) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	s.state.Enabled = !s.state.Enabled
	s.saveLocked()
	return s.state.Enabled
}

// Reload discards the cached state and reads the file again.
func (s *Service) Reload() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.ensureLoaded()
	return s.state
}

func (s *Service) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.state = s.load()
}

func (s *Service) load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = DefaultState()
			s.saveLocked()
			return s.state
		}
		s.logger.Warn("failed to read state file, using defaults", "path", s.path, "error", err)
		return DefaultState()
	}

	st := DefaultState()
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("invalid state file, using defaults", "path", s.path, "error", err)
		return DefaultState()
	}
	return st
}

func (s *Service) saveLocked() {
	if err := writeState(s.path, s.state); err != nil {
		s.logger.Warn("failed to save state file", "path", s.path, "error", err)
	}
}

func writeState(path string, st State) error {
	data, err := MarshalState(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalState renders st as pretty-printed JSON.
func MarshalState(st State) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}
