// Package borderless converts a window into a borderless, monitor-sized
// placement and back, remembering the windowed geometry in between.
package borderless

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/borderless/internal/platform"
)

// SavedState is the windowed geometry captured on entry.
type SavedState struct {
	Bounds platform.Rect
	Valid  bool
}

// Controller owns the borderless state of a single window. It is not safe for
// concurrent use; callers run it from one execution context.
type Controller struct {
	backend platform.Backend
	window  platform.WindowID
	logger  *slog.Logger

	saved  SavedState
	active bool
}

// New returns a controller bound to window. A nil logger discards output.
func New(backend platform.Backend, window platform.WindowID, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		backend: backend,
		window:  window,
		logger:  logger.With("window", uint32(window)),
	}
}

// Window returns the bound window.
func (c *Controller) Window() platform.WindowID {
	return c.window
}

// Active reports whether the window is currently borderless.
func (c *Controller) Active() bool {
	return c.active
}

// Saved returns the captured windowed geometry.
func (c *Controller) Saved() SavedState {
	return c.saved
}

// Enter makes the window borderless and sizes it to the monitor holding its
// centre, or to the primary monitor when none does. The session is marked
// active even if a window-system call fails; the returned error only reports
// which steps did not take effect.
func (c *Controller) Enter() error {
	c.active = true

	// Capture before any mutation so the saved geometry is the real windowed one.
	var errs []error
	bounds, err := c.backend.WindowBounds(c.window)
	if err != nil {
		c.logger.Warn("could not capture windowed geometry", "error", err)
		errs = append(errs, fmt.Errorf("capture windowed state: %w", err))
		c.saved = SavedState{}
	} else {
		c.saved = SavedState{Bounds: bounds, Valid: true}
	}

	if err := c.backend.SetDecorated(c.window, false); err != nil {
		c.logger.Warn("failed to remove decorations", "error", err)
		errs = append(errs, fmt.Errorf("remove decorations: %w", err))
	}

	monitor, ok := c.SelectMonitor()
	if !ok {
		primary, err := c.backend.PrimaryMonitor()
		if err != nil {
			errs = append(errs, fmt.Errorf("primary monitor: %w", err))
			return errors.Join(errs...)
		}
		c.logger.Debug("window centre is not on any monitor, using primary", "monitor", uint32(primary))
		monitor = primary
	}

	desc, err := c.backend.Monitor(monitor)
	if err != nil {
		// Decorations stay removed; only the resize is skipped.
		c.logger.Warn("target monitor mode unavailable, skipping resize", "monitor", uint32(monitor), "error", err)
		errs = append(errs, fmt.Errorf("monitor %d: %w", monitor, err))
		return errors.Join(errs...)
	}

	target := desc.Bounds()
	if err := c.backend.SetWindowMonitor(c.window, 0, target, desc.Mode.RefreshRate); err != nil {
		c.logger.Warn("failed to cover monitor", "monitor", desc.Name, "error", err)
		errs = append(errs, fmt.Errorf("cover monitor: %w", err))
		return errors.Join(errs...)
	}

	c.logger.Info("entered borderless",
		"monitor", desc.Name,
		"bounds", target,
		"refresh", desc.Mode.RefreshRate,
		"saved", bounds)
	return errors.Join(errs...)
}

// Exit restores decorations and, when a windowed geometry was captured,
// puts the window back where it was. Without a capture only the decorations
// change.
func (c *Controller) Exit() error {
	c.active = false

	var errs []error
	if err := c.backend.SetDecorated(c.window, true); err != nil {
		c.logger.Warn("failed to restore decorations", "error", err)
		errs = append(errs, fmt.Errorf("restore decorations: %w", err))
	}

	if !c.saved.Valid {
		return errors.Join(errs...)
	}

	saved := c.saved.Bounds
	c.saved = SavedState{}
	if err := c.backend.SetWindowMonitor(c.window, 0, saved, platform.DontCare); err != nil {
		c.logger.Warn("failed to restore windowed geometry", "error", err)
		errs = append(errs, fmt.Errorf("restore geometry: %w", err))
		return errors.Join(errs...)
	}

	c.logger.Info("left borderless", "bounds", saved)
	return errors.Join(errs...)
}
