package hotkeys

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/toggle"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Toggler is the daemon side of the hotkeys.
type Toggler interface {
	ToggleFullscreen(window platform.WindowID) (platform.WindowID, toggle.State, error)
	ToggleEnabled() bool
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	toggler Toggler
	logger  *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, toggler Toggler, logger *slog.Logger) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if xu != nil {
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(xu)
		})
	}

	return &Handler{
		xu:      xu,
		root:    root,
		toggler: toggler,
		logger:  logger,
	}
}

// RegisterFullscreen binds the borderless fullscreen toggle for the focused window.
func (h *Handler) RegisterFullscreen(keySequence string) error {
	if err := h.RegisterFunc(keySequence, h.fullscreenPressed); err != nil {
		return fmt.Errorf("failed to register fullscreen hotkey: %w", err)
	}
	return nil
}

// RegisterEnable binds the enable/disable switch.
func (h *Handler) RegisterEnable(keySequence string) error {
	if err := h.RegisterFunc(keySequence, h.enablePressed); err != nil {
		return fmt.Errorf("failed to register enable hotkey: %w", err)
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys require an X11 backend")
	}
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func (h *Handler) fullscreenPressed() {
	window, state, err := h.toggler.ToggleFullscreen(0)
	if err != nil {
		h.logger.Warn("fullscreen hotkey failed", "error", err)
		return
	}
	h.logger.Debug("fullscreen hotkey", "window", uint32(window), "state", state.String())
}

func (h *Handler) enablePressed() {
	h.logger.Info("borderless switch changed", "enabled", h.toggler.ToggleEnabled())
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	xevent.IgnoreMods = ignoreMasks(caps, numLock, scrollLock)
}

// ignoreMasks returns every combination of the given lock masks, including
// none. Zero and duplicate masks are skipped.
func ignoreMasks(locks ...uint16) []uint16 {
	var base []uint16
	for _, mask := range locks {
		if mask == 0 {
			continue
		}
		dup := false
		for _, seen := range base {
			if seen == mask {
				dup = true
				break
			}
		}
		if !dup {
			base = append(base, mask)
		}
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	sort.Slice(ignore, func(i, j int) bool { return ignore[i] < ignore[j] })
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
