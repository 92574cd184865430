package hotkeys

import (
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/borderless/internal/platform"
	"github.com/1broseidon/borderless/internal/toggle"
)

type fakeToggler struct {
	toggles  int
	switches int
	err      error
}

func (f *fakeToggler) ToggleFullscreen(window platform.WindowID) (platform.WindowID, toggle.State, error) {
	f.toggles++
	return 1, toggle.StateBorderless, f.err
}

func (f *fakeToggler) ToggleEnabled() bool {
	f.switches++
	return f.switches%2 == 0
}

func TestIgnoreMasks(t *testing.T) {
	tests := []struct {
		name  string
		locks []uint16
		want  []uint16
	}{
		{"caps only", []uint16{2, 0, 0}, []uint16{0, 2}},
		{"caps and numlock", []uint16{2, 16, 0}, []uint16{0, 2, 16, 18}},
		{"duplicate lock ignored", []uint16{2, 16, 16}, []uint16{0, 2, 16, 18}},
		{"three locks", []uint16{2, 16, 128}, []uint16{0, 2, 16, 18, 128, 130, 144, 146}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ignoreMasks(tt.locks...); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ignoreMasks(%v) = %v, want %v", tt.locks, got, tt.want)
			}
		})
	}
}

func TestHandler_Callbacks(t *testing.T) {
	toggler := &fakeToggler{}
	h := NewHandler(nil, toggler, nil)

	h.fullscreenPressed()
	toggler.err = errors.New("no active window")
	h.fullscreenPressed()
	h.enablePressed()

	if toggler.toggles != 2 || toggler.switches != 1 {
		t.Fatalf("toggles=%d switches=%d", toggler.toggles, toggler.switches)
	}
}

func TestHandler_RegisterWithoutX11(t *testing.T) {
	h := NewHandler(nil, &fakeToggler{}, nil)
	if err := h.RegisterFullscreen("Mod4-F11"); err == nil {
		t.Fatal("expected error without an X11 backend")
	}
}
