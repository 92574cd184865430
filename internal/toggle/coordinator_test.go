package toggle

import (
	"testing"

	"github.com/1broseidon/borderless/internal/borderless"
	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/platform/platformtest"
)

const win platform.WindowID = 7

type fakeHost struct {
	fullscreen    bool
	nativeToggles int
}

func (h *fakeHost) IsFullscreen() bool { return h.fullscreen }
func (h *fakeHost) ForceWindowed()     { h.fullscreen = false }
func (h *fakeHost) native() {
	h.nativeToggles++
	h.fullscreen = !h.fullscreen
}

type staticEnabled bool

func (e staticEnabled) Enabled() bool { return bool(e) }

type recordingSyncer struct {
	calls []bool
	ok    bool
	panic bool
}

func (s *recordingSyncer) SetFullscreenOption(v bool) bool {
	s.calls = append(s.calls, v)
	if s.panic {
		panic("option field missing")
	}
	return s.ok
}

func newFixture(enabled bool) (*Coordinator, *fakeHost, *platformtest.Backend, *recordingSyncer) {
	fake := platformtest.New(win, platform.Rect{X: 100, Y: 100, Width: 800, Height: 600},
		platformtest.NewMonitor(1, 0, 0, 1920, 1080, 60),
	)
	host := &fakeHost{}
	syncer := &recordingSyncer{ok: true}
	ctrl := borderless.New(fake, win, nil)
	c := NewCoordinator(ctrl, host, staticEnabled(enabled), Options{OptionSyncer: syncer})
	return c, host, fake, syncer
}

func TestInitialStateIsWindowed(t *testing.T) {
	c, _, _, _ := newFixture(true)
	if c.State() != StateWindowed {
		t.Fatalf("State() = %v, want windowed", c.State())
	}
}

func TestToggleParity(t *testing.T) {
	tests := []struct {
		toggles int
		want    State
	}{
		{1, StateBorderless},
		{2, StateWindowed},
		{3, StateBorderless},
		{4, StateWindowed},
	}
	for _, tt := range tests {
		c, host, _, _ := newFixture(true)
		var got State
		for i := 0; i < tt.toggles; i++ {
			got = c.Run(host.native)
		}
		if got != tt.want || c.State() != tt.want {
			t.Errorf("%d toggles: state = %v, want %v", tt.toggles, got, tt.want)
		}
		if host.fullscreen {
			t.Errorf("%d toggles: host fullscreen flag left true", tt.toggles)
		}
	}
}

func TestExitCancelsNativeToggle(t *testing.T) {
	c, host, _, _ := newFixture(true)
	c.Run(host.native)
	if host.nativeToggles != 1 {
		t.Fatalf("native toggles = %d, want 1", host.nativeToggles)
	}
	c.Run(host.native)
	if host.nativeToggles != 1 {
		t.Fatalf("native toggle ran on exit; toggles = %d", host.nativeToggles)
	}
}

func TestScenarioSecondaryMonitor(t *testing.T) {
	fake := platformtest.New(win, platform.Rect{X: 100, Y: 100, Width: 800, Height: 600},
		platformtest.NewMonitor(2, 1920, 0, 2560, 1440, 144),
	)
	host := &fakeHost{}
	c := NewCoordinator(borderless.New(fake, win, nil), host, staticEnabled(true), Options{})

	c.Run(host.native)
	if got := fake.Windows[win]; got != (platform.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}) {
		t.Fatalf("borderless bounds = %+v", got)
	}
	if p, _ := fake.LastPlacement(); p.RefreshRate != 144 {
		t.Fatalf("refresh = %d, want 144", p.RefreshRate)
	}
	if host.IsFullscreen() {
		t.Fatal("host fullscreen flag should be forced false")
	}

	c.Run(host.native)
	if got := fake.Windows[win]; got != (platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}) {
		t.Fatalf("restored bounds = %+v", got)
	}
}

func TestDisabledLeavesHostFullscreen(t *testing.T) {
	c, host, fake, syncer := newFixture(false)
	c.Run(host.native)

	if c.State() != StateWindowed {
		t.Fatalf("State() = %v, want windowed", c.State())
	}
	if !host.fullscreen {
		t.Fatal("native fullscreen should be left alone when disabled")
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("backend touched while disabled: %v", fake.Calls)
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("option synced while disabled: %v", syncer.calls)
	}
}

func TestAfterToggleIgnoresNativeExit(t *testing.T) {
	c, host, fake, _ := newFixture(true)
	host.fullscreen = false
	c.AfterToggle()
	if c.State() != StateWindowed || len(fake.Calls) != 0 {
		t.Fatalf("unexpected transition, calls: %v", fake.Calls)
	}
}

func TestOptionSyncOnBothTransitions(t *testing.T) {
	c, host, _, syncer := newFixture(true)
	c.Run(host.native)
	c.Run(host.native)
	if len(syncer.calls) != 2 || syncer.calls[0] || syncer.calls[1] {
		t.Fatalf("sync calls = %v, want [false false]", syncer.calls)
	}
}

func TestOptionSyncFailuresAreSwallowed(t *testing.T) {
	c, host, _, syncer := newFixture(true)
	syncer.ok = false
	syncer.panic = true

	if got := c.Run(host.native); got != StateBorderless {
		t.Fatalf("State = %v, want borderless", got)
	}
	if got := c.Run(host.native); got != StateWindowed {
		t.Fatalf("State = %v, want windowed", got)
	}
}

func TestStateString(t *testing.T) {
	if StateWindowed.String() != "windowed" || StateBorderless.String() != "borderless" {
		t.Fatal("unexpected state names")
	}
}
