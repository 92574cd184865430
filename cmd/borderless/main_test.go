package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/borderless/internal/ipc"
)

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"44040199", 44040199, false},
		{"0x2a00007", 0x2a00007, false},
		{"window", 0, true},
		{"0x1ffffffff", 0, true},
	}
	for _, tt := range tests {
		got, err := parseWindowID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("parseWindowID(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestWriteStatus(t *testing.T) {
	status := &ipc.StatusData{Enabled: true, BorderlessWindows: []uint32{0x2a00007}, Sessions: 1, DaemonRunning: true}

	var buf bytes.Buffer
	writeStatus(&buf, status, true)
	out := buf.String()
	if !strings.HasPrefix(out, "BorderlessMC: Enabled\n") {
		t.Fatalf("interactive output should lead with the HUD line:\n%s", out)
	}
	if !strings.Contains(out, "borderless_windows: 0x2a00007\n") {
		t.Fatalf("missing window list:\n%s", out)
	}

	buf.Reset()
	writeStatus(&buf, &ipc.StatusData{}, false)
	out = buf.String()
	if strings.Contains(out, "BorderlessMC") {
		t.Fatalf("piped output should not include the HUD line:\n%s", out)
	}
	if !strings.Contains(out, "borderless_windows: none\n") {
		t.Fatalf("expected empty window list:\n%s", out)
	}
}

func TestWriteMonitors(t *testing.T) {
	var buf bytes.Buffer
	writeMonitors(&buf, []ipc.MonitorInfo{
		{ID: 64, Name: "DP-1", X: 1920, Width: 2560, Height: 1440, RefreshRate: 144, Primary: true},
	})
	if got := buf.String(); got != "64: DP-1 2560x1440+1920+0 @144Hz (primary)\n" {
		t.Fatalf("unexpected output %q", got)
	}

	buf.Reset()
	writeMonitors(&buf, nil)
	if buf.String() != "(no monitors)\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}
