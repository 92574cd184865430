package daemon

import (
	"log/slog"

	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/toggle"
)

// windowHost adapts an X11 window to the toggle host interface. The
// fullscreen flag is the requested state; it only reaches the window manager
// through applyNative when no borderless transition took place.
type windowHost struct {
	backend    Backend
	window     platform.WindowID
	fullscreen bool
	logger     *slog.Logger
}

var (
	_ toggle.Host         = (*windowHost)(nil)
	_ toggle.OptionSyncer = (*windowHost)(nil)
)

func (h *windowHost) IsFullscreen() bool {
	return h.fullscreen
}

func (h *windowHost) ForceWindowed() {
	h.fullscreen = false
}

// SetFullscreenOption keeps the window manager's fullscreen state in line with
// the host flag.
func (h *windowHost) SetFullscreenOption(fullscreen bool) bool {
	if h.backend.IsFullscreen(h.window) == fullscreen {
		return true
	}
	if err := h.backend.SetFullscreenState(h.window, fullscreen); err != nil {
		h.logger.Debug("failed to sync fullscreen state", "error", err)
		return false
	}
	return true
}

func (h *windowHost) requestToggle() {
	h.fullscreen = !h.fullscreen
}

func (h *windowHost) applyNative() error {
	if h.backend.IsFullscreen(h.window) == h.fullscreen {
		return nil
	}
	return h.backend.SetFullscreenState(h.window, h.fullscreen)
}
