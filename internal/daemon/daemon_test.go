package daemon

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/1broseidon/borderless/internal/config"
	"github.com/1broseidon/borderless/internal/hud"
	"github.com/1broseidon/borderless/internal/ipc"
	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/platform/platformtest"
	"github.com/1broseidon/borderless/internal/toggle"
)

const gameWindow platform.WindowID = 0x2a00007

var windowed = platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}

func newTestDaemon(t *testing.T, enabled bool) (*Daemon, *platformtest.Desktop, *[]string) {
	t.Helper()
	desk := platformtest.NewDesktop(gameWindow, windowed,
		platformtest.NewMonitor(1, 0, 0, 1920, 1080, 60),
		platformtest.NewMonitor(2, 1920, 0, 2560, 1440, 144),
	)
	desk.Titles[gameWindow] = "Minecraft 1.20.1"

	store := config.NewService(filepath.Join(t.TempDir(), "borderlessmc.json"), nil)
	store.SetEnabled(enabled)

	var shown []string
	notifier := hud.NotifierFunc(func(text string) { shown = append(shown, text) })
	return New(desk, store, notifier, nil), desk, &shown
}

func TestToggleFullscreen_EnabledRoundTrip(t *testing.T) {
	d, desk, _ := newTestDaemon(t, true)

	window, state, err := d.ToggleFullscreen(0)
	if err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}
	if window != gameWindow || state != toggle.StateBorderless {
		t.Fatalf("got window %d state %v", window, state)
	}
	if desk.Decorated[gameWindow] {
		t.Fatal("expected decorations removed")
	}
	if got := desk.Windows[gameWindow]; got != (platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}) {
		t.Fatalf("window not covering monitor: %+v", got)
	}
	if desk.Fullscreen[gameWindow] {
		t.Fatal("window manager fullscreen must not be requested in borderless mode")
	}
	if st := d.Status(); !reflect.DeepEqual(st.Borderless, []platform.WindowID{gameWindow}) {
		t.Fatalf("status borderless = %v", st.Borderless)
	}

	_, state, err = d.ToggleFullscreen(gameWindow)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if state != toggle.StateWindowed {
		t.Fatalf("expected windowed, got %v", state)
	}
	if !desk.Decorated[gameWindow] || desk.Windows[gameWindow] != windowed {
		t.Fatalf("window not restored: decorated=%v bounds=%+v", desk.Decorated[gameWindow], desk.Windows[gameWindow])
	}
	if len(d.Status().Borderless) != 0 {
		t.Fatal("no window should be borderless after restore")
	}
}

func TestToggleFullscreen_DisabledUsesNativeFullscreen(t *testing.T) {
	d, desk, _ := newTestDaemon(t, false)

	_, state, err := d.ToggleFullscreen(0)
	if err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}
	if state != toggle.StateWindowed {
		t.Fatalf("expected windowed state, got %v", state)
	}
	if !desk.Fullscreen[gameWindow] {
		t.Fatal("expected native fullscreen request")
	}
	if len(desk.Placements) != 0 {
		t.Fatal("disabled toggle must not move the window")
	}

	if _, _, err := d.ToggleFullscreen(0); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if desk.Fullscreen[gameWindow] {
		t.Fatal("expected native fullscreen cleared")
	}
}

func TestToggleFullscreen_LeavesExistingNativeFullscreen(t *testing.T) {
	d, desk, _ := newTestDaemon(t, true)
	desk.Fullscreen[gameWindow] = true

	_, state, err := d.ToggleFullscreen(gameWindow)
	if err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}
	if state != toggle.StateWindowed || desk.Fullscreen[gameWindow] {
		t.Fatalf("expected native fullscreen left, state=%v fullscreen=%v", state, desk.Fullscreen[gameWindow])
	}
}

func TestToggleFullscreen_ResyncsAfterExternalExit(t *testing.T) {
	d, desk, _ := newTestDaemon(t, false)

	if _, _, err := d.ToggleFullscreen(gameWindow); err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}
	if !desk.Fullscreen[gameWindow] {
		t.Fatal("expected native fullscreen request")
	}

	// Left fullscreen through the window manager, not through the daemon.
	desk.Fullscreen[gameWindow] = false
	d.SetEnabled(true)

	_, state, err := d.ToggleFullscreen(gameWindow)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if state != toggle.StateBorderless {
		t.Fatalf("expected borderless, got %v", state)
	}
	if desk.Decorated[gameWindow] {
		t.Fatal("expected decorations removed")
	}
	if got := desk.Windows[gameWindow]; got != (platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}) {
		t.Fatalf("window not covering monitor: %+v", got)
	}
	if desk.Fullscreen[gameWindow] {
		t.Fatal("window manager fullscreen must stay off in borderless mode")
	}
}

func TestToggleFullscreen_NoWindow(t *testing.T) {
	d, desk, _ := newTestDaemon(t, true)
	desk.Active = 0

	if _, _, err := d.ToggleFullscreen(0); !errors.Is(err, platform.ErrNoWindow) {
		t.Fatalf("expected ErrNoWindow, got %v", err)
	}
	if _, _, err := d.ToggleFullscreen(0xdead); !errors.Is(err, platform.ErrNoWindow) {
		t.Fatalf("expected ErrNoWindow for unknown window, got %v", err)
	}
}

func TestToggleEnabled_NotifiesStatus(t *testing.T) {
	d, _, shown := newTestDaemon(t, true)

	if d.ToggleEnabled() {
		t.Fatal("expected disabled")
	}
	if !d.SetEnabled(true) {
		t.Fatal("expected enabled")
	}
	want := []string{"BorderlessMC: Disabled", "BorderlessMC: Enabled"}
	if !reflect.DeepEqual(*shown, want) {
		t.Fatalf("notifications = %v, want %v", *shown, want)
	}
}

func TestPruneClosed(t *testing.T) {
	d, desk, _ := newTestDaemon(t, true)
	if _, _, err := d.ToggleFullscreen(gameWindow); err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}

	desk.CloseWindow(gameWindow)
	r := NewReconciler(ReconcilerConfig{}, d)
	r.ReconcileNow()

	if st := d.Status(); st.Sessions != 0 {
		t.Fatalf("expected session dropped, got %d", st.Sessions)
	}
	if closed := d.PruneClosed(); len(closed) != 0 {
		t.Fatalf("nothing left to prune, got %v", closed)
	}
}

func TestRestoreAll(t *testing.T) {
	d, desk, _ := newTestDaemon(t, true)
	if _, _, err := d.ToggleFullscreen(gameWindow); err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}

	if err := d.RestoreAll(); err != nil {
		t.Fatalf("RestoreAll: %v", err)
	}
	if desk.Windows[gameWindow] != windowed || !desk.Decorated[gameWindow] {
		t.Fatal("window not restored")
	}
	if d.Status().Sessions != 0 {
		t.Fatal("sessions should be cleared")
	}
}

func TestIPCHandler(t *testing.T) {
	d, desk, _ := newTestDaemon(t, true)
	desk.AddWindow(7, "Terminal", platform.Rect{X: 2000, Y: 100, Width: 800, Height: 600})
	h := NewIPCHandler(d)

	data, err := h.Toggle(ipc.TogglePayload{Title: "Minecraft"})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if data.Window != uint32(gameWindow) || data.State != "borderless" || !data.Enabled {
		t.Fatalf("unexpected toggle data: %+v", data)
	}

	data, err = h.Toggle(ipc.TogglePayload{Window: 7})
	if err != nil {
		t.Fatalf("Toggle by id: %v", err)
	}
	if got := desk.Windows[7]; got != (platform.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}) {
		t.Fatalf("window 7 should cover the second monitor, got %+v", got)
	}

	if _, err := h.Toggle(ipc.TogglePayload{Title: "Nope"}); err == nil {
		t.Fatal("expected lookup error")
	}

	d.started = time.Now().Add(-90 * time.Second)
	st := h.Status()
	if !reflect.DeepEqual(st.BorderlessWindows, []uint32{7, uint32(gameWindow)}) {
		t.Fatalf("borderless windows = %v", st.BorderlessWindows)
	}
	if st.UptimeSeconds < 90 {
		t.Fatalf("uptime_seconds = %d, want at least 90", st.UptimeSeconds)
	}

	if h.SetEnabled(nil) {
		t.Fatal("nil payload should flip to disabled")
	}
	on := true
	if !h.SetEnabled(&on) {
		t.Fatal("expected enabled")
	}

	monitors, err := h.Monitors()
	if err != nil {
		t.Fatalf("Monitors: %v", err)
	}
	if len(monitors) != 2 || !monitors[0].Primary || monitors[1].Primary || monitors[1].RefreshRate != 144 {
		t.Fatalf("unexpected monitors: %+v", monitors)
	}
}
