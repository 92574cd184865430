// Package demo is a minimal host application with its own fullscreen flag,
// user option and exclusive fullscreen, used to exercise the toggle hook the
// way a game would.
package demo

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/borderless/internal/borderless"
	"github.com/1broseidon/borderless/internal/hud"
	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/toggle"
)

// EnabledStore holds the persisted borderless switch.
type EnabledStore interface {
	Enabled() bool
	Toggle() bool
}

// Game owns one window. Its native fullscreen is exclusive: the window is
// handed to the primary monitor at that monitor's mode.
type Game struct {
	backend platform.Backend
	window  platform.WindowID
	store   EnabledStore
	logger  *slog.Logger

	ctrl  *borderless.Controller
	coord *toggle.Coordinator

	// fullscreen is the game's own flag; option mirrors its settings screen.
	fullscreen bool
	option     bool

	exclusive    bool
	beforeNative platform.Rect
}

var (
	_ toggle.Host         = (*Game)(nil)
	_ toggle.OptionSyncer = (*Game)(nil)
)

// NewGame wires the borderless hook into a game window.
func NewGame(backend platform.Backend, window platform.WindowID, store EnabledStore, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		backend: backend,
		window:  window,
		store:   store,
		logger:  logger,
	}
	g.ctrl = borderless.New(backend, window, logger)
	g.coord = toggle.NewCoordinator(g.ctrl, g, store, toggle.Options{
		OptionSyncer: g,
		Logger:       logger,
	})
	return g
}

// IsFullscreen reports the game's own fullscreen flag.
func (g *Game) IsFullscreen() bool {
	return g.fullscreen
}

// ForceWindowed clears the fullscreen flag while the window stays borderless.
func (g *Game) ForceWindowed() {
	g.fullscreen = false
}

// SetFullscreenOption updates the settings-screen option. It always succeeds.
func (g *Game) SetFullscreenOption(fullscreen bool) bool {
	g.option = fullscreen
	return true
}

// Option reports the settings-screen fullscreen option.
func (g *Game) Option() bool {
	return g.option
}

// Exclusive reports whether the window currently owns a monitor.
func (g *Game) Exclusive() bool {
	return g.exclusive
}

// State is the borderless state of the window.
func (g *Game) State() toggle.State {
	return g.coord.State()
}

// ToggleFullscreen handles the fullscreen key.
func (g *Game) ToggleFullscreen() toggle.State {
	state := g.coord.Run(g.nativeToggle)
	g.applyNative()
	return state
}

// ToggleEnabled handles the enable key and returns the new HUD line.
func (g *Game) ToggleEnabled() string {
	return hud.StatusText(g.store.Toggle())
}

// Title is the window title: the game name followed by the HUD line.
func (g *Game) Title(name string) string {
	return fmt.Sprintf("%s - %s (%s)", name, hud.StatusText(g.store.Enabled()), g.State())
}

func (g *Game) nativeToggle() {
	g.fullscreen = !g.fullscreen
	g.option = g.fullscreen
}

// applyNative brings the window in line with the game's own flag. The hook
// has already cleared the flag when it took over.
func (g *Game) applyNative() {
	switch {
	case g.fullscreen && !g.exclusive:
		if err := g.enterExclusive(); err != nil {
			g.logger.Warn("exclusive fullscreen failed", "error", err)
			g.fullscreen = false
			g.option = false
		}
	case !g.fullscreen && g.exclusive:
		if err := g.backend.SetWindowMonitor(g.window, 0, g.beforeNative, platform.DontCare); err != nil {
			g.logger.Warn("leaving exclusive fullscreen failed", "error", err)
		}
		g.exclusive = false
	}
}

func (g *Game) enterExclusive() error {
	bounds, err := g.backend.WindowBounds(g.window)
	if err != nil {
		return err
	}
	primary, err := g.backend.PrimaryMonitor()
	if err != nil {
		return err
	}
	desc, err := g.backend.Monitor(primary)
	if err != nil {
		return err
	}
	if err := g.backend.SetWindowMonitor(g.window, primary, desc.Bounds(), desc.Mode.RefreshRate); err != nil {
		return err
	}
	g.beforeNative = bounds
	g.exclusive = true
	return nil
}
