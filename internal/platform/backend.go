package platform

import "errors"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// MonitorID is a platform-neutral monitor handle. The zero value means "no monitor",
// which is also how callers ask for a windowed (non-exclusive) placement.
type MonitorID uint32

// DontCare leaves the refresh rate up to the window system.
const DontCare = -1

var (
	// ErrModeUnavailable is returned when a monitor's current display mode cannot be read.
	ErrModeUnavailable = errors.New("display mode unavailable")
	// ErrExclusiveUnsupported is returned by backends that refuse exclusive monitor placement.
	ErrExclusiveUnsupported = errors.New("exclusive monitor placement not supported")
	// ErrNoWindow is returned when no target window could be resolved.
	ErrNoWindow = errors.New("no window")
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the centre point, rounded toward the origin like integer division.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies in the half-open rectangle [X,X+W) x [Y,Y+H).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// VideoMode is a monitor's current resolution and refresh rate.
type VideoMode struct {
	Width       int
	Height      int
	RefreshRate int
}

// Monitor describes a physical display as reported by the window system.
// It is a read-only snapshot; backends enumerate monitors fresh on every call.
type Monitor struct {
	ID   MonitorID
	Name string
	X    int
	Y    int
	Mode VideoMode
}

// Bounds returns the monitor rectangle in screen coordinates.
func (m Monitor) Bounds() Rect {
	return Rect{X: m.X, Y: m.Y, Width: m.Mode.Width, Height: m.Mode.Height}
}

// Backend abstracts the window-system operations needed to move a window
// between decorated windowed placement and a borderless monitor-sized placement.
type Backend interface {
	// Monitors lists monitor handles in window-system enumeration order.
	Monitors() ([]MonitorID, error)
	// PrimaryMonitor returns the designated primary monitor.
	PrimaryMonitor() (MonitorID, error)
	// Monitor returns position and mode for a monitor, or ErrModeUnavailable.
	Monitor(id MonitorID) (Monitor, error)
	// WindowBounds returns the window's position and size.
	WindowBounds(windowID WindowID) (Rect, error)
	// SetDecorated toggles the border and title bar.
	SetDecorated(windowID WindowID, decorated bool) error
	// SetWindowMonitor places the window. A zero monitor means windowed placement
	// at bounds; refreshRate may be DontCare.
	SetWindowMonitor(windowID WindowID, monitor MonitorID, bounds Rect, refreshRate int) error
}

// ListMonitors enumerates monitors with their descriptors, skipping any whose
// mode cannot be read. The result may be empty.
func ListMonitors(b Backend) []Monitor {
	ids, err := b.Monitors()
	if err != nil {
		return nil
	}
	monitors := make([]Monitor, 0, len(ids))
	for _, id := range ids {
		m, err := b.Monitor(id)
		if err != nil {
			continue
		}
		monitors = append(monitors, m)
	}
	return monitors
}
