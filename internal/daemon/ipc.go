package daemon

import (
	"fmt"

	"github.com/1broseidon/borderless/internal/ipc"
	"github.com/1broseidon/borderless/internal/platform"
)

// IPCHandler serves the IPC protocol from a Daemon.
type IPCHandler struct {
	d *Daemon
}

var _ ipc.Handler = IPCHandler{}

// NewIPCHandler wraps d for ipc.Server.
func NewIPCHandler(d *Daemon) IPCHandler {
	return IPCHandler{d: d}
}

func (h IPCHandler) Toggle(req ipc.TogglePayload) (ipc.ToggleData, error) {
	window := platform.WindowID(req.Window)
	if window == 0 && req.Title != "" {
		found, err := h.d.findWindow(req.Title)
		if err != nil {
			return ipc.ToggleData{}, err
		}
		window = found
	}

	window, state, err := h.d.ToggleFullscreen(window)
	if err != nil {
		return ipc.ToggleData{}, err
	}
	return ipc.ToggleData{
		Window:  uint32(window),
		State:   state.String(),
		Enabled: h.d.store.Enabled(),
	}, nil
}

func (h IPCHandler) SetEnabled(enabled *bool) bool {
	if enabled == nil {
		return h.d.ToggleEnabled()
	}
	return h.d.SetEnabled(*enabled)
}

func (h IPCHandler) Status() ipc.StatusData {
	st := h.d.Status()
	windows := make([]uint32, 0, len(st.Borderless))
	for _, w := range st.Borderless {
		windows = append(windows, uint32(w))
	}
	return ipc.StatusData{
		Enabled:           st.Enabled,
		BorderlessWindows: windows,
		Sessions:          st.Sessions,
		UptimeSeconds:     int64(st.Uptime.Seconds()),
	}
}

func (h IPCHandler) Monitors() ([]ipc.MonitorInfo, error) {
	monitors := h.d.Monitors()
	primary, err := h.d.PrimaryMonitor()
	if err != nil && len(monitors) > 0 {
		primary = monitors[0].ID
	}

	infos := make([]ipc.MonitorInfo, 0, len(monitors))
	for _, m := range monitors {
		infos = append(infos, ipc.MonitorInfo{
			ID:          uint32(m.ID),
			Name:        m.Name,
			X:           m.X,
			Y:           m.Y,
			Width:       m.Mode.Width,
			Height:      m.Mode.Height,
			RefreshRate: m.Mode.RefreshRate,
			Primary:     m.ID == primary,
		})
	}
	return infos, nil
}

func (d *Daemon) findWindow(title string) (platform.WindowID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	window, err := d.backend.FindWindowByTitle(title)
	if err != nil {
		return 0, fmt.Errorf("find window %q: %w", title, err)
	}
	return window, nil
}
