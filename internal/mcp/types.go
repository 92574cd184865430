package mcp

import "github.com/1broseidon/borderless/internal/ipc"

// ToggleBorderlessInput is the input for the toggle_borderless tool.
type ToggleBorderlessInput struct {
	Window uint32 `json:"window,omitempty" jsonschema:"X11 window id to toggle (default: the focused window)"`
	Title  string `json:"title,omitempty" jsonschema:"Toggle the first window whose title contains this text. Ignored when window is set."`
}

// ToggleBorderlessOutput is the output for the toggle_borderless tool.
type ToggleBorderlessOutput struct {
	Window  uint32 `json:"window"`
	State   string `json:"state"`
	Enabled bool   `json:"enabled"`
}

// SetEnabledInput is the input for the set_enabled tool.
type SetEnabledInput struct {
	Enabled *bool `json:"enabled,omitempty" jsonschema:"New value of the borderless switch. Omit to flip the current value."`
}

// SetEnabledOutput is the output for the set_enabled tool.
type SetEnabledOutput struct {
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Enabled           bool     `json:"enabled"`
	Status            string   `json:"status"`
	BorderlessWindows []uint32 `json:"borderless_windows"`
	Sessions          int      `json:"sessions"`
	UptimeSeconds     int64    `json:"uptime_seconds"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []ipc.MonitorInfo `json:"monitors"`
}
