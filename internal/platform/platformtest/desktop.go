package platformtest

import (
	"strings"

	"github.com/1broseidon/borderless/internal/platform"
)

// Desktop extends Backend with focus, titles and window-manager fullscreen
// state for daemon tests.
type Desktop struct {
	*Backend

	Active     platform.WindowID
	Titles     map[platform.WindowID]string
	Fullscreen map[platform.WindowID]bool
}

// NewDesktop returns a desktop whose only window is focused.
func NewDesktop(window platform.WindowID, bounds platform.Rect, monitors ...platform.Monitor) *Desktop {
	return &Desktop{
		Backend:    New(window, bounds, monitors...),
		Active:     window,
		Titles:     map[platform.WindowID]string{},
		Fullscreen: map[platform.WindowID]bool{},
	}
}

// AddWindow registers another decorated window.
func (d *Desktop) AddWindow(window platform.WindowID, title string, bounds platform.Rect) {
	d.Windows[window] = bounds
	d.Decorated[window] = true
	d.Titles[window] = title
}

// CloseWindow forgets a window as if its client exited.
func (d *Desktop) CloseWindow(window platform.WindowID) {
	delete(d.Windows, window)
	delete(d.Decorated, window)
	delete(d.Titles, window)
	delete(d.Fullscreen, window)
	if d.Active == window {
		d.Active = 0
	}
}

func (d *Desktop) ActiveWindow() (platform.WindowID, error) {
	if err := d.record("ActiveWindow"); err != nil {
		return 0, err
	}
	if d.Active == 0 {
		return 0, platform.ErrNoWindow
	}
	return d.Active, nil
}

func (d *Desktop) FindWindowByTitle(substring string) (platform.WindowID, error) {
	if err := d.record("FindWindowByTitle"); err != nil {
		return 0, err
	}
	var best platform.WindowID
	for window, title := range d.Titles {
		if strings.Contains(title, substring) && (best == 0 || window < best) {
			best = window
		}
	}
	if best == 0 {
		return 0, platform.ErrNoWindow
	}
	return best, nil
}

func (d *Desktop) WindowExists(window platform.WindowID) bool {
	_, ok := d.Windows[window]
	return ok
}

func (d *Desktop) IsFullscreen(window platform.WindowID) bool {
	return d.Fullscreen[window]
}

func (d *Desktop) SetFullscreenState(window platform.WindowID, fullscreen bool) error {
	if err := d.record("SetFullscreenState"); err != nil {
		return err
	}
	d.Fullscreen[window] = fullscreen
	return nil
}
