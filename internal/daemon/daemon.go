// Package daemon applies borderless fullscreen to X11 windows on request.
package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/1broseidon/borderless/internal/borderless"
	"github.com/1broseidon/borderless/internal/hud"
	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/toggle"
)

// Backend is the window system surface the daemon needs beyond geometry.
type Backend interface {
	platform.Backend
	ActiveWindow() (platform.WindowID, error)
	FindWindowByTitle(substring string) (platform.WindowID, error)
	WindowExists(window platform.WindowID) bool
	IsFullscreen(window platform.WindowID) bool
	SetFullscreenState(window platform.WindowID, fullscreen bool) error
}

// EnabledStore holds the persisted borderless switch.
type EnabledStore interface {
	Enabled() bool
	SetEnabled(enabled bool)
	Toggle() bool
}

// Status is a snapshot of the daemon.
type Status struct {
	Enabled    bool
	Borderless []platform.WindowID
	Sessions   int
	Uptime     time.Duration
}

type session struct {
	ctrl  *borderless.Controller
	coord *toggle.Coordinator
	host  *windowHost
}

// Daemon keeps one borderless session per window it has toggled. All window
// work runs under one lock, so requests from hotkeys, IPC and the reconciler
// never interleave.
type Daemon struct {
	backend  Backend
	store    EnabledStore
	notifier hud.Notifier
	logger   *slog.Logger
	started  time.Time

	mu       sync.Mutex
	sessions map[platform.WindowID]*session
}

// New creates a daemon. A nil notifier logs status changes instead.
func New(backend Backend, store EnabledStore, notifier hud.Notifier, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if notifier == nil {
		notifier = hud.LogNotifier{Logger: logger}
	}
	return &Daemon{
		backend:  backend,
		store:    store,
		notifier: notifier,
		logger:   logger,
		started:  time.Now(),
		sessions: make(map[platform.WindowID]*session),
	}
}

// ToggleFullscreen runs one fullscreen toggle on window, or on the active
// window when window is 0. It returns the window acted on and its new state.
func (d *Daemon) ToggleFullscreen(window platform.WindowID) (platform.WindowID, toggle.State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if window == 0 {
		active, err := d.backend.ActiveWindow()
		if err != nil {
			return 0, toggle.StateWindowed, fmt.Errorf("no window to toggle: %w", err)
		}
		window = active
	}
	if !d.backend.WindowExists(window) {
		delete(d.sessions, window)
		return window, toggle.StateWindowed, fmt.Errorf("window %d: %w", window, platform.ErrNoWindow)
	}

	s := d.sessionLocked(window)
	if !s.ctrl.Active() {
		// The window manager or the client may have changed fullscreen since the last toggle.
		s.host.fullscreen = d.backend.IsFullscreen(window)
	}
	state := s.coord.Run(s.host.requestToggle)
	if state == toggle.StateWindowed {
		// No borderless transition took over; honour the request natively.
		if err := s.host.applyNative(); err != nil {
			d.logger.Warn("native fullscreen failed", "window", uint32(window), "error", err)
		}
	}

	d.logger.Info("fullscreen toggled", "window", uint32(window), "state", state.String())
	return window, state, nil
}

// ToggleEnabled flips the borderless switch, persists it, and shows the new status.
func (d *Daemon) ToggleEnabled() bool {
	enabled := d.store.Toggle()
	d.notifier.Notify(hud.StatusText(enabled))
	return enabled
}

// SetEnabled sets the borderless switch and shows the new status.
func (d *Daemon) SetEnabled(enabled bool) bool {
	d.store.SetEnabled(enabled)
	d.notifier.Notify(hud.StatusText(enabled))
	return enabled
}

// Status reports the switch and which windows are currently borderless.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := Status{
		Enabled:  d.store.Enabled(),
		Sessions: len(d.sessions),
		Uptime:   time.Since(d.started),
	}
	for window, s := range d.sessions {
		if s.ctrl.Active() {
			st.Borderless = append(st.Borderless, window)
		}
	}
	sort.Slice(st.Borderless, func(i, j int) bool { return st.Borderless[i] < st.Borderless[j] })
	return st
}

// Monitors lists the readable monitors.
func (d *Daemon) Monitors() []platform.Monitor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return platform.ListMonitors(d.backend)
}

// PrimaryMonitor returns the primary monitor id.
func (d *Daemon) PrimaryMonitor() (platform.MonitorID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backend.PrimaryMonitor()
}

// PruneClosed drops sessions whose windows no longer exist and returns them.
func (d *Daemon) PruneClosed() []platform.WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()

	var closed []platform.WindowID
	for window := range d.sessions {
		if !d.backend.WindowExists(window) {
			closed = append(closed, window)
			delete(d.sessions, window)
		}
	}
	sort.Slice(closed, func(i, j int) bool { return closed[i] < closed[j] })
	return closed
}

// RestoreAll puts every borderless window back to its windowed geometry.
func (d *Daemon) RestoreAll() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for window, s := range d.sessions {
		if !s.ctrl.Active() {
			continue
		}
		if !d.backend.WindowExists(window) {
			continue
		}
		if err := s.ctrl.Exit(); err != nil {
			errs = append(errs, fmt.Errorf("window %d: %w", window, err))
		}
	}
	d.sessions = make(map[platform.WindowID]*session)
	return errors.Join(errs...)
}

func (d *Daemon) sessionLocked(window platform.WindowID) *session {
	if s, ok := d.sessions[window]; ok {
		return s
	}

	logger := d.logger.With("window", uint32(window))
	host := &windowHost{
		backend:    d.backend,
		window:     window,
		fullscreen: d.backend.IsFullscreen(window),
		logger:     logger,
	}
	ctrl := borderless.New(d.backend, window, d.logger)
	s := &session{
		ctrl: ctrl,
		host: host,
		coord: toggle.NewCoordinator(ctrl, host, d.store, toggle.Options{
			OptionSyncer: host,
			Logger:       logger,
		}),
	}
	d.sessions[window] = s
	return s
}
