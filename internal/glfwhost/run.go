package glfwhost

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/1broseidon/borderless/internal/demo"
)

// Options configures the demo window.
type Options struct {
	Name   string
	Width  int
	Height int
	Store  demo.EnabledStore
	Logger *slog.Logger
}

// Run opens the demo window and blocks until it is closed. F11 toggles
// fullscreen, B toggles the borderless switch, Escape quits. It must be
// called from the main goroutine with the OS thread locked.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Name == "" {
		opts.Name = "borderless demo"
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 854, 480
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()
	logger.Info("GLFW initialized", "version", glfw.GetVersionString())

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	// Disable GLFW_AUTO_ICONIFY so exclusive fullscreen survives focus loss
	glfw.WindowHint(glfw.AutoIconify, glfw.False)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Name, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	var pressed []glfw.Key
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			pressed = append(pressed, key)
		}
	})

	game := demo.NewGame(NewBackend(window), MainWindow, opts.Store, logger)
	title := ""
	setTitle := func() {
		if t := game.Title(opts.Name); t != title {
			window.SetTitle(t)
			title = t
		}
	}
	setTitle()

	for !window.ShouldClose() {
		glfw.WaitEventsTimeout(0.25)

		keys := pressed
		pressed = nil
		for _, key := range keys {
			switch key {
			case glfw.KeyF11:
				state := game.ToggleFullscreen()
				logger.Info("fullscreen toggled", "state", state.String())
			case glfw.KeyB:
				logger.Info(game.ToggleEnabled())
			case glfw.KeyEscape:
				window.SetShouldClose(true)
			}
		}
		setTitle()
	}
	return nil
}
