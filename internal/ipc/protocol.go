package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandToggle      CommandType = "TOGGLE"
	CommandSetEnabled  CommandType = "SET_ENABLED"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// TogglePayload selects the window to toggle. Window wins over Title; with
// neither set the daemon uses the active window.
type TogglePayload struct {
	Window uint32 `json:"window,omitempty"`
	Title  string `json:"title,omitempty"`
}

// ToggleData is the result of TOGGLE.
type ToggleData struct {
	Window  uint32 `json:"window"`
	State   string `json:"state"`
	Enabled bool   `json:"enabled"`
}

// SetEnabledPayload sets the switch; a nil Enabled flips it.
type SetEnabledPayload struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// EnabledData is the result of SET_ENABLED.
type EnabledData struct {
	Enabled bool `json:"enabled"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Enabled           bool     `json:"enabled"`
	BorderlessWindows []uint32 `json:"borderless_windows"`
	Sessions          int      `json:"sessions"`
	UptimeSeconds     int64    `json:"uptime_seconds"`
	DaemonRunning     bool     `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RefreshRate int    `json:"refresh_rate"`
	Primary     bool   `json:"primary"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: missing command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
