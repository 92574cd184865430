package borderless

import (
	"github.com/1broseidon/borderless/internal/platform"
)

// SelectMonitor returns the first enumerated monitor whose rectangle contains
// the window's centre. Monitors whose mode cannot be read are ignored. It
// reports false when nothing contains the centre; the caller decides the
// fallback rather than guessing the nearest monitor.
func (c *Controller) SelectMonitor() (platform.MonitorID, bool) {
	bounds, err := c.backend.WindowBounds(c.window)
	if err != nil {
		c.logger.Debug("window bounds unavailable for monitor lookup", "error", err)
		return 0, false
	}
	return monitorAt(c.backend, bounds)
}

func monitorAt(backend platform.Backend, window platform.Rect) (platform.MonitorID, bool) {
	cx, cy := window.Center()

	ids, err := backend.Monitors()
	if err != nil || len(ids) == 0 {
		return 0, false
	}

	for _, id := range ids {
		m, err := backend.Monitor(id)
		if err != nil {
			continue
		}
		if m.Bounds().Contains(cx, cy) {
			return id, true
		}
	}
	return 0, false
}
