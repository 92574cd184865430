package hud

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestStatusText(t *testing.T) {
	if got := StatusText(true); got != "BorderlessMC: Enabled" {
		t.Fatalf("StatusText(true) = %q", got)
	}
	if got := StatusText(false); got != "BorderlessMC: Disabled" {
		t.Fatalf("StatusText(false) = %q", got)
	}
}

func TestLinePosition(t *testing.T) {
	tests := []struct {
		name       string
		lines      int
		fontHeight int
		wantY      int
	}{
		{"no lines", 0, 9, 2},
		{"three lines", 3, 9, 35},
		{"unknown count uses ten lines", -1, 9, 112},
		{"tall font", 2, 16, 38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := LinePosition(tt.lines, tt.fontHeight)
			if x != 2 || y != tt.wantY {
				t.Fatalf("LinePosition(%d, %d) = (%d, %d), want (2, %d)", tt.lines, tt.fontHeight, x, y, tt.wantY)
			}
		})
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	n.Notify(StatusText(false))

	if !strings.Contains(buf.String(), `text="BorderlessMC: Disabled"`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}

func TestNotifierFunc(t *testing.T) {
	var got string
	var n Notifier = NotifierFunc(func(text string) { got = text })
	n.Notify("hello")
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}
