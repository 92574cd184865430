// Package mcp exposes the borderless daemon as MCP tools.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/borderless/internal/hud"
	"github.com/1broseidon/borderless/internal/ipc"
)

const (
	ServerName    = "borderless"
	ServerVersion = "0.1.0"
)

// Daemon is the running daemon as seen through IPC.
type Daemon interface {
	Toggle(window uint32, title string) (*ipc.ToggleData, error)
	SetEnabled(enabled bool) (bool, error)
	ToggleEnabled() (bool, error)
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
}

var _ Daemon = (*ipc.Client)(nil)

// Server is the MCP server for the borderless daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server that forwards tool calls to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_borderless",
		Description: "Toggle fullscreen on a window. When borderless mode is enabled the window becomes an undecorated window covering its monitor; toggling again restores its previous size and position.",
	}, s.handleToggle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_enabled",
		Description: "Turn borderless fullscreen on or off. The setting is persisted. While off, fullscreen toggles use the window manager's native fullscreen.",
	}, s.handleSetEnabled)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report whether borderless mode is enabled and which windows are currently borderless.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their position, resolution and refresh rate.",
	}, s.handleListMonitors)
}

func (s *Server) handleToggle(_ context.Context, _ *mcpsdk.CallToolRequest, args ToggleBorderlessInput) (*mcpsdk.CallToolResult, ToggleBorderlessOutput, error) {
	data, err := s.daemon.Toggle(args.Window, args.Title)
	if err != nil {
		return nil, ToggleBorderlessOutput{}, fmt.Errorf("toggle failed: %w", err)
	}
	return nil, ToggleBorderlessOutput{
		Window:  data.Window,
		State:   data.State,
		Enabled: data.Enabled,
	}, nil
}

func (s *Server) handleSetEnabled(_ context.Context, _ *mcpsdk.CallToolRequest, args SetEnabledInput) (*mcpsdk.CallToolResult, SetEnabledOutput, error) {
	var (
		enabled bool
		err     error
	)
	if args.Enabled == nil {
		enabled, err = s.daemon.ToggleEnabled()
	} else {
		enabled, err = s.daemon.SetEnabled(*args.Enabled)
	}
	if err != nil {
		return nil, SetEnabledOutput{}, fmt.Errorf("set enabled failed: %w", err)
	}
	return nil, SetEnabledOutput{Enabled: enabled, Status: hud.StatusText(enabled)}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("get status failed: %w", err)
	}
	windows := status.BorderlessWindows
	if windows == nil {
		windows = []uint32{}
	}
	return nil, GetStatusOutput{
		Enabled:           status.Enabled,
		Status:            hud.StatusText(status.Enabled),
		BorderlessWindows: windows,
		Sessions:          status.Sessions,
		UptimeSeconds:     status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("list monitors failed: %w", err)
	}
	monitors := data.Monitors
	if monitors == nil {
		monitors = []ipc.MonitorInfo{}
	}
	return nil, ListMonitorsOutput{Monitors: monitors}, nil
}
