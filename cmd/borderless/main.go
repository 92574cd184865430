package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/term"

	"github.com/1broseidon/borderless/internal/config"
	"github.com/1broseidon/borderless/internal/hud"
	"github.com/1broseidon/borderless/internal/ipc"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "toggle":
		os.Exit(runToggle(os.Args[2:]))
	case "enable":
		os.Exit(runSetEnabled("enable", true, os.Args[2:]))
	case "disable":
		os.Exit(runSetEnabled("disable", false, os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "demo":
		os.Exit(runDemo(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: borderless <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the borderless daemon (foreground)")
	fmt.Fprintln(w, "  toggle              Toggle fullscreen on a window")
	fmt.Fprintln(w, "  enable              Turn borderless fullscreen on")
	fmt.Fprintln(w, "  disable             Turn borderless fullscreen off")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            List monitors")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config path         Print config file locations")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config validate     Validate daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  demo                Open a demo game window (F11 fullscreen, B switch)")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'borderless <command> --help' for command-specific options.")
}

func runToggle(args []string) int {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "", "X11 window id, decimal or 0x hex (default: focused window)")
	title := fs.String("title", "", "Toggle the first window whose title contains this text")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: borderless toggle [--window ID | --title TEXT]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Toggle fullscreen through the running daemon.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "toggle takes no arguments")
		fs.Usage()
		return 2
	}

	var wid uint32
	if *window != "" {
		parsed, err := parseWindowID(*window)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		wid = parsed
	}

	data, err := ipc.NewClient().Toggle(wid, *title)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("window 0x%x: %s\n", data.Window, data.State)
	return 0
}

func runSetEnabled(name string, enabled bool, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: borderless %s\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set the borderless switch. Without a running daemon the config file is updated directly.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	got, err := ipc.NewClient().SetEnabled(enabled)
	if err != nil {
		path, perr := config.DefaultStatePath()
		if perr != nil {
			fmt.Fprintln(os.Stderr, perr)
			return 1
		}
		config.NewService(path, nil).SetEnabled(enabled)
		got = enabled
	}
	fmt.Println(hud.StatusText(got))
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print status as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: borderless status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	writeStatus(os.Stdout, status, term.IsTerminal(int(os.Stdout.Fd())))
	return 0
}

// writeStatus prints status as key: value lines, led by the HUD line when
// the output is a terminal.
func writeStatus(w io.Writer, status *ipc.StatusData, interactive bool) {
	if interactive {
		fmt.Fprintln(w, hud.StatusText(status.Enabled))
	}
	fmt.Fprintf(w, "daemon_running:     %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "enabled:            %v\n", status.Enabled)
	fmt.Fprintf(w, "sessions:           %d\n", status.Sessions)
	fmt.Fprintf(w, "borderless_windows:")
	if len(status.BorderlessWindows) == 0 {
		fmt.Fprint(w, " none")
	}
	for _, wid := range status.BorderlessWindows {
		fmt.Fprintf(w, " 0x%x", wid)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "uptime_seconds:     %d\n", status.UptimeSeconds)
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print monitors as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	data, err := ipc.NewClient().GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}
	writeMonitors(os.Stdout, data.Monitors)
	return 0
}

func writeMonitors(w io.Writer, monitors []ipc.MonitorInfo) {
	if len(monitors) == 0 {
		fmt.Fprintln(w, "(no monitors)")
		return
	}
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = " (primary)"
		}
		fmt.Fprintf(w, "%d: %s %dx%d+%d+%d @%dHz%s\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y, m.RefreshRate, primary)
	}
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  borderless config path")
		fmt.Fprintln(os.Stderr, "  borderless config print [--yaml] [--path PATH]")
		fmt.Fprintln(os.Stderr, "  borderless config validate [--path PATH]")
		return 2
	}

	switch args[0] {
	case "path":
		statePath, err := config.DefaultStatePath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfgPath, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("state:  %s\n", statePath)
		fmt.Printf("daemon: %s\n", cfgPath)
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		asYAML := fs.Bool("yaml", false, "Print the daemon settings (config.yaml) instead of the borderless switch")
		path := fs.String("path", "", "Config file path (default: ~/.config/borderless/...)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if *asYAML {
			cfg, err := loadDaemonConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Print(string(data))
			return 0
		}

		statePath := *path
		if statePath == "" {
			var err error
			if statePath, err = config.DefaultStatePath(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := config.MarshalState(config.NewService(statePath, nil).State())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/borderless/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadDaemonConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func loadDaemonConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func parseWindowID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return uint32(v), nil
}
