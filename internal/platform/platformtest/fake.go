// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"

	"github.com/1broseidon/borderless/internal/platform"
)

// Placement records one SetWindowMonitor call.
type Placement struct {
	Window      platform.WindowID
	Monitor     platform.MonitorID
	Bounds      platform.Rect
	RefreshRate int
}

// Backend is a fake window system. Monitors are enumerated in slice order.
type Backend struct {
	MonitorList []platform.Monitor
	Primary     platform.MonitorID
	// Unreadable marks monitors whose mode query fails.
	Unreadable map[platform.MonitorID]bool

	Windows   map[platform.WindowID]platform.Rect
	Decorated map[platform.WindowID]bool

	Placements []Placement
	Calls      []string

	// Fail makes the named operation return an error.
	Fail map[string]error
}

var _ platform.Backend = (*Backend)(nil)

// New returns a fake with one decorated window at bounds.
func New(window platform.WindowID, bounds platform.Rect, monitors ...platform.Monitor) *Backend {
	b := &Backend{
		MonitorList: monitors,
		Unreadable:  map[platform.MonitorID]bool{},
		Windows:     map[platform.WindowID]platform.Rect{window: bounds},
		Decorated:   map[platform.WindowID]bool{window: true},
		Fail:        map[string]error{},
	}
	if len(monitors) > 0 {
		b.Primary = monitors[0].ID
	}
	return b
}

// NewMonitor builds a monitor descriptor.
func NewMonitor(id platform.MonitorID, x, y, w, h, hz int) platform.Monitor {
	return platform.Monitor{
		ID:   id,
		Name: fmt.Sprintf("MON-%d", id),
		X:    x,
		Y:    y,
		Mode: platform.VideoMode{Width: w, Height: h, RefreshRate: hz},
	}
}

func (b *Backend) record(call string) error {
	b.Calls = append(b.Calls, call)
	return b.Fail[call]
}

func (b *Backend) Monitors() ([]platform.MonitorID, error) {
	if err := b.record("Monitors"); err != nil {
		return nil, err
	}
	ids := make([]platform.MonitorID, 0, len(b.MonitorList))
	for _, m := range b.MonitorList {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (b *Backend) PrimaryMonitor() (platform.MonitorID, error) {
	if err := b.record("PrimaryMonitor"); err != nil {
		return 0, err
	}
	return b.Primary, nil
}

func (b *Backend) Monitor(id platform.MonitorID) (platform.Monitor, error) {
	if err := b.record("Monitor"); err != nil {
		return platform.Monitor{}, err
	}
	if b.Unreadable[id] {
		return platform.Monitor{}, platform.ErrModeUnavailable
	}
	for _, m := range b.MonitorList {
		if m.ID == id {
			return m, nil
		}
	}
	return platform.Monitor{}, platform.ErrModeUnavailable
}

func (b *Backend) WindowBounds(windowID platform.WindowID) (platform.Rect, error) {
	if err := b.record("WindowBounds"); err != nil {
		return platform.Rect{}, err
	}
	r, ok := b.Windows[windowID]
	if !ok {
		return platform.Rect{}, platform.ErrNoWindow
	}
	return r, nil
}

func (b *Backend) SetDecorated(windowID platform.WindowID, decorated bool) error {
	if err := b.record("SetDecorated"); err != nil {
		return err
	}
	b.Decorated[windowID] = decorated
	return nil
}

func (b *Backend) SetWindowMonitor(windowID platform.WindowID, monitor platform.MonitorID, bounds platform.Rect, refreshRate int) error {
	if err := b.record("SetWindowMonitor"); err != nil {
		return err
	}
	b.Placements = append(b.Placements, Placement{
		Window:      windowID,
		Monitor:     monitor,
		Bounds:      bounds,
		RefreshRate: refreshRate,
	})
	b.Windows[windowID] = bounds
	return nil
}

// LastPlacement returns the most recent SetWindowMonitor call.
func (b *Backend) LastPlacement() (Placement, bool) {
	if len(b.Placements) == 0 {
		return Placement{}, false
	}
	return b.Placements[len(b.Placements)-1], true
}
