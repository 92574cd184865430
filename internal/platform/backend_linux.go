//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/borderless/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection. An empty display uses $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops the X11 event loop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Monitors returns active CRTCs in RandR order.
func (b *LinuxBackend) Monitors() ([]MonitorID, error) {
	monitors, err := b.monitors()
	if err != nil {
		return nil, err
	}
	ids := make([]MonitorID, 0, len(monitors))
	for _, m := range monitors {
		ids = append(ids, MonitorID(m.Crtc))
	}
	return ids, nil
}

// PrimaryMonitor returns the RandR primary output's CRTC, or the first
// active CRTC when no primary output is configured.
func (b *LinuxBackend) PrimaryMonitor() (MonitorID, error) {
	monitors, err := b.monitors()
	if err != nil {
		return 0, err
	}
	if len(monitors) == 0 {
		return 0, fmt.Errorf("no monitors found")
	}
	for _, m := range monitors {
		if m.Primary {
			return MonitorID(m.Crtc), nil
		}
	}
	return MonitorID(monitors[0].Crtc), nil
}

// Monitor returns the descriptor of an active CRTC.
func (b *LinuxBackend) Monitor(id MonitorID) (Monitor, error) {
	monitors, err := b.monitors()
	if err != nil {
		return Monitor{}, err
	}
	for _, m := range monitors {
		if MonitorID(m.Crtc) == id {
			return monitorFromX11(m), nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %d: %w", id, ErrModeUnavailable)
}

// WindowBounds returns the root-relative frame origin and the client size,
// so that SetWindowMonitor with the same rectangle leaves the window in place.
func (b *LinuxBackend) WindowBounds(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	x, y, w, h, err := conn.WindowPlacement(xproto.Window(windowID))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

// SetDecorated toggles window-manager decorations.
func (b *LinuxBackend) SetDecorated(windowID WindowID, decorated bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetDecorated(xproto.Window(windowID), decorated)
}

// SetWindowMonitor moves and resizes the window. X11 clients are never given an
// exclusive monitor, so a non-zero monitor is rejected and the refresh rate is ignored.
func (b *LinuxBackend) SetWindowMonitor(windowID WindowID, monitor MonitorID, bounds Rect, refreshRate int) error {
	if monitor != 0 {
		return ErrExclusiveUnsupported
	}
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(windowID), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

// ActiveWindow returns the currently focused window.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	if wid == 0 {
		return 0, ErrNoWindow
	}
	return WindowID(wid), nil
}

// FindWindowByTitle returns the first managed window whose title contains substring.
func (b *LinuxBackend) FindWindowByTitle(substring string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.FindWindowByTitle(substring)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// WindowExists reports whether the window manager still manages the window.
func (b *LinuxBackend) WindowExists(windowID WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.WindowExists(xproto.Window(windowID))
}

// IsFullscreen reports the window's EWMH fullscreen state.
func (b *LinuxBackend) IsFullscreen(windowID WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.IsFullscreen(xproto.Window(windowID))
}

// SetFullscreenState requests EWMH fullscreen on or off.
func (b *LinuxBackend) SetFullscreenState(windowID WindowID, fullscreen bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetFullscreen(xproto.Window(windowID), fullscreen)
}

func (b *LinuxBackend) monitors() ([]x11.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.GetMonitors()
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func monitorFromX11(m x11.Monitor) Monitor {
	return Monitor{
		ID:   MonitorID(m.Crtc),
		Name: m.Name,
		X:    m.X,
		Y:    m.Y,
		Mode: VideoMode{
			Width:       m.Width,
			Height:      m.Height,
			RefreshRate: m.RefreshRate,
		},
	}
}
