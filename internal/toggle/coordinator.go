// Package toggle turns host fullscreen requests into borderless transitions.
//
// Hosts expose their fullscreen toggle as an explicit extension point: they
// call BeforeToggle before their own handling (and skip it when cancelled)
// and AfterToggle once it has finished. Run wraps both around a native toggle.
package toggle

import (
	"log/slog"

	"github.com/1broseidon/borderless/internal/borderless"
)

// State is the coordinator's view of the window.
type State int

const (
	// StateWindowed is the initial state.
	StateWindowed State = iota
	// StateBorderless means the window covers a monitor without decorations.
	StateBorderless
)

func (s State) String() string {
	switch s {
	case StateWindowed:
		return "windowed"
	case StateBorderless:
		return "borderless"
	default:
		return "unknown"
	}
}

// Host is the application whose fullscreen toggle is intercepted.
type Host interface {
	// IsFullscreen reports the host's own fullscreen flag.
	IsFullscreen() bool
	// ForceWindowed clears the host's fullscreen flag without touching the window.
	ForceWindowed()
}

// OptionSyncer mirrors the host's user-facing fullscreen setting. It reports
// whether the update took effect; failures are tolerated.
type OptionSyncer interface {
	SetFullscreenOption(fullscreen bool) bool
}

// EnabledSource says whether borderless conversion should be attempted.
type EnabledSource interface {
	Enabled() bool
}

// Hook is the before/after extension point around a host fullscreen toggle.
type Hook interface {
	BeforeToggle() (cancel bool)
	AfterToggle()
}

// Coordinator drives a borderless.Controller from host toggle events.
type Coordinator struct {
	ctrl    *borderless.Controller
	host    Host
	options OptionSyncer
	enabled EnabledSource
	logger  *slog.Logger
}

var _ Hook = (*Coordinator)(nil)

// Options configures optional collaborators.
type Options struct {
	// OptionSyncer is called after every transition; nil disables syncing.
	OptionSyncer OptionSyncer
	Logger       *slog.Logger
}

// NewCoordinator wires a controller to a host.
func NewCoordinator(ctrl *borderless.Controller, host Host, enabled EnabledSource, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{
		ctrl:    ctrl,
		host:    host,
		options: opts.OptionSyncer,
		enabled: enabled,
		logger:  logger,
	}
}

// State returns the current state.
func (c *Coordinator) State() State {
	if c.ctrl.Active() {
		return StateBorderless
	}
	return StateWindowed
}

// BeforeToggle leaves borderless mode when it is active and tells the host to
// skip its own toggle for this request.
func (c *Coordinator) BeforeToggle() bool {
	if !c.ctrl.Active() {
		return false
	}

	if err := c.ctrl.Exit(); err != nil {
		c.logger.Debug("exit borderless incomplete", "error", err)
	}
	c.host.ForceWindowed()
	c.syncOption()
	return true
}

// AfterToggle converts a freshly entered host fullscreen into borderless mode
// when the feature is enabled.
func (c *Coordinator) AfterToggle() {
	if !c.host.IsFullscreen() {
		return
	}
	if c.enabled != nil && !c.enabled.Enabled() {
		return
	}
	if c.ctrl.Active() {
		return
	}

	if err := c.ctrl.Enter(); err != nil {
		c.logger.Debug("enter borderless incomplete", "error", err)
	}
	c.host.ForceWindowed()
	c.syncOption()
}

// Run performs one toggle request: the hook's before point, the host's native
// toggle unless cancelled, then the after point. It returns the resulting state.
func (c *Coordinator) Run(native func()) State {
	if c.BeforeToggle() {
		return c.State()
	}
	if native != nil {
		native()
	}
	c.AfterToggle()
	return c.State()
}

func (c *Coordinator) syncOption() {
	if c.options == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("fullscreen option sync panicked", "panic", r)
		}
	}()
	if !c.options.SetFullscreenOption(false) {
		c.logger.Debug("fullscreen option sync not applied")
	}
}
