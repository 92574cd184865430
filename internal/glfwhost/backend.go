// Package glfwhost runs the demo game in a GLFW window.
package glfwhost

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/1broseidon/borderless/internal/platform"
)

// MainWindow is the id of the single window a Backend manages.
const MainWindow platform.WindowID = 1

// Backend implements platform.Backend over GLFW. Monitor ids are 1-based
// positions in glfw.GetMonitors; they are only stable until a monitor is
// connected or removed. All methods must run on the main thread.
type Backend struct {
	window *glfw.Window
}

var _ platform.Backend = (*Backend)(nil)

// NewBackend wraps window.
func NewBackend(window *glfw.Window) *Backend {
	return &Backend{window: window}
}

// Monitors returns one id per connected monitor.
func (b *Backend) Monitors() ([]platform.MonitorID, error) {
	monitors := glfw.GetMonitors()
	ids := make([]platform.MonitorID, 0, len(monitors))
	for i := range monitors {
		ids = append(ids, platform.MonitorID(i+1))
	}
	return ids, nil
}

// PrimaryMonitor returns the id of the monitor GLFW reports as primary.
func (b *Backend) PrimaryMonitor() (platform.MonitorID, error) {
	primary := glfw.GetPrimaryMonitor()
	if primary == nil {
		return 0, fmt.Errorf("no primary monitor")
	}
	for i, m := range glfw.GetMonitors() {
		if m == primary {
			return platform.MonitorID(i + 1), nil
		}
	}
	return 0, fmt.Errorf("primary monitor not enumerated")
}

// Monitor returns the position and current video mode of a monitor.
func (b *Backend) Monitor(id platform.MonitorID) (platform.Monitor, error) {
	m := b.lookup(id)
	if m == nil {
		return platform.Monitor{}, fmt.Errorf("monitor %d: %w", id, platform.ErrModeUnavailable)
	}
	vm := m.GetVideoMode()
	if vm == nil {
		return platform.Monitor{}, fmt.Errorf("monitor %s: %w", m.GetName(), platform.ErrModeUnavailable)
	}
	x, y := m.GetPos()
	return platform.Monitor{
		ID:   id,
		Name: m.GetName(),
		X:    x,
		Y:    y,
		Mode: platform.VideoMode{
			Width:       vm.Width,
			Height:      vm.Height,
			RefreshRate: vm.RefreshRate,
		},
	}, nil
}

// WindowBounds returns the window's position and size in screen coordinates.
func (b *Backend) WindowBounds(window platform.WindowID) (platform.Rect, error) {
	if err := b.check(window); err != nil {
		return platform.Rect{}, err
	}
	x, y := b.window.GetPos()
	w, h := b.window.GetSize()
	return platform.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

// SetDecorated shows or hides the window frame.
func (b *Backend) SetDecorated(window platform.WindowID, decorated bool) error {
	if err := b.check(window); err != nil {
		return err
	}
	value := glfw.False
	if decorated {
		value = glfw.True
	}
	b.window.SetAttrib(glfw.Decorated, value)
	return nil
}

// SetWindowMonitor hands the window to monitor (exclusive) or, for monitor 0,
// places it in windowed mode at bounds.
func (b *Backend) SetWindowMonitor(window platform.WindowID, monitor platform.MonitorID, bounds platform.Rect, refreshRate int) error {
	if err := b.check(window); err != nil {
		return err
	}
	var m *glfw.Monitor
	if monitor != 0 {
		if m = b.lookup(monitor); m == nil {
			return fmt.Errorf("monitor %d: %w", monitor, platform.ErrModeUnavailable)
		}
	}
	b.window.SetMonitor(m, bounds.X, bounds.Y, bounds.Width, bounds.Height, refreshRate)
	return nil
}

func (b *Backend) lookup(id platform.MonitorID) *glfw.Monitor {
	monitors := glfw.GetMonitors()
	if id == 0 || int(id) > len(monitors) {
		return nil
	}
	return monitors[id-1]
}

func (b *Backend) check(window platform.WindowID) error {
	if window != MainWindow || b.window == nil {
		return fmt.Errorf("window %d: %w", window, platform.ErrNoWindow)
	}
	return nil
}
