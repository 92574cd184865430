package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1broseidon/borderless/internal/config"
	"github.com/1broseidon/borderless/internal/glfwhost"
	"github.com/1broseidon/borderless/internal/logging"
)

func runDemo(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	width := fs.Int("width", 854, "Initial window width")
	height := fs.Int("height", 480, "Initial window height")
	level := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: borderless demo [--width N] [--height N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window that behaves like a game: F11 toggles fullscreen,")
		fmt.Fprintln(os.Stderr, "B toggles borderless mode, Escape quits. The title shows the status line.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	lg, err := logging.New(config.LoggingConfig{Level: *level})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	statePath, err := config.DefaultStatePath()
	if err != nil {
		log.Fatalf("Failed to resolve state path: %v", err)
	}

	if err := glfwhost.Run(glfwhost.Options{
		Name:   "borderless demo",
		Width:  *width,
		Height: *height,
		Store:  config.NewService(statePath, lg.Logger),
		Logger: lg.Logger,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
