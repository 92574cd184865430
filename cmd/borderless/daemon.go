package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/borderless/internal/config"
	"github.com/1broseidon/borderless/internal/daemon"
	"github.com/1broseidon/borderless/internal/hotkeys"
	"github.com/1broseidon/borderless/internal/hud"
	"github.com/1broseidon/borderless/internal/ipc"
	"github.com/1broseidon/borderless/internal/logging"
	"github.com/1broseidon/borderless/internal/platform"
)

func runDaemon(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: borderless daemon")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: borderless daemon")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer lg.Close()
	logger := lg.Logger

	statePath, err := config.DefaultStatePath()
	if err != nil {
		log.Fatalf("Failed to resolve state path: %v", err)
	}
	store := config.NewService(statePath, logger)
	logger.Info("configuration loaded",
		"fullscreen_hotkey", cfg.FullscreenHotkey,
		"enable_hotkey", cfg.EnableHotkey,
		"enabled", store.Enabled())

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	var notifier hud.Notifier = hud.LogNotifier{Logger: logger}
	if cfg.HUDSeconds > 0 {
		overlay := hud.NewOverlay(backend.XUtil(), backend.RootWindow(), cfg.HUDFont, cfg.HUDLines, cfg.HUDDuration(), logger)
		defer overlay.Close()
		notifier = overlay
	}

	d := daemon.New(backend, store, notifier, logger)

	hotkeyHandler := hotkeys.NewHandler(backend, d, logger)
	if err := hotkeyHandler.RegisterFullscreen(cfg.FullscreenHotkey); err != nil {
		log.Fatalf("Failed to register hotkey: %v", err)
	}
	if err := hotkeyHandler.RegisterEnable(cfg.EnableHotkey); err != nil {
		logger.Warn("enable hotkey not registered", "hotkey", cfg.EnableHotkey, "error", err)
	}

	ipcServer, err := ipc.NewServer(daemon.NewIPCHandler(d), logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: cfg.ReconcileInterval,
		Logger:   logger,
	}, d)
	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()
	if cfg.ReconcileInterval > 0 {
		go reconciler.Run(reconcilerCtx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				st := store.Reload()
				logger.Info("borderless switch reloaded", "enabled", st.Enabled)
			case os.Interrupt, syscall.SIGTERM:
				logger.Info("shutting down borderless daemon")
				if err := d.RestoreAll(); err != nil {
					logger.Warn("some windows were not restored", "error", err)
				}
				reconcilerCancel()
				backend.Quit()
				return
			}
		}
	}()

	logger.Info("borderless daemon started")
	backend.EventLoop()
	return 0
}
