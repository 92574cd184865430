// Package hud renders the borderless status line and shows it briefly on screen.
package hud

import "log/slog"

const (
	enabledText  = "BorderlessMC: Enabled"
	disabledText = "BorderlessMC: Disabled"

	lineMargin = 2
	// fallbackLines is used when the host cannot report how many debug lines it drew.
	fallbackLines = 10
)

// StatusText is the HUD line for the current enabled switch.
func StatusText(enabled bool) string {
	if enabled {
		return enabledText
	}
	return disabledText
}

// LinePosition returns where the status line goes below lines existing text
// lines of fontHeight pixels each. A negative count means unknown.
func LinePosition(lines, fontHeight int) (x, y int) {
	if lines < 0 {
		lines = fallbackLines
	}
	return lineMargin, lineMargin + lines*(fontHeight+lineMargin)
}

// Notifier shows a short status message to the user.
type Notifier interface {
	Notify(text string)
}

// LogNotifier writes status messages to a logger. Used when no display overlay
// is available.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(text string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("status", "text", text)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(text string)

func (f NotifierFunc) Notify(text string) {
	f(text)
}
