package hud

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/borderless/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Overlay colors
const (
	ColorText       = 0xf5f7fa
	ColorBackground = 0x1f2933
)

const (
	paddingX   = 8
	paddingY   = 6
	lineHeight = 16
	charWidth  = 7
	minWidth   = 160
)

var fontNames = []string{"fixed", "9x15", "8x13", "6x13"}

// Overlay is a single override-redirect text window that shows the status
// line in the top-left corner of a monitor and hides itself after a delay.
type Overlay struct {
	xu       *xgbutil.XUtil
	root     xproto.Window
	font     string
	lines    int
	duration time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	window   xproto.Window
	gc       xproto.Gcontext
	fontID   xproto.Font
	created  bool
	disabled bool
	hide     *time.Timer
}

var _ Notifier = (*Overlay)(nil)

// NewOverlay creates an overlay on the given root that sits below lines rows
// of other on-screen text. Resources are allocated on the first Show. A zero
// duration keeps the overlay up until the next Show.
func NewOverlay(xu *xgbutil.XUtil, root xproto.Window, font string, lines int, duration time.Duration, logger *slog.Logger) *Overlay {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Overlay{
		xu:       xu,
		root:     root,
		font:     font,
		lines:    lines,
		duration: duration,
		logger:   logger,
	}
}

// Notify shows text over the whole root window area.
func (o *Overlay) Notify(text string) {
	o.Show(text, platform.Rect{})
}

// Show draws text in the corner of area. An empty area uses the screen.
func (o *Overlay) Show(text string, area platform.Rect) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.ensureResources() {
		return
	}
	if area.Width <= 0 || area.Height <= 0 {
		area = o.screenRect()
	}

	conn := o.xu.Conn()
	geom := overlayGeometry(text, area, o.lines)

	xproto.ConfigureWindow(
		conn,
		o.window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(geom.X),
			uint32(geom.Y),
			uint32(geom.Width),
			uint32(geom.Height),
			xproto.StackModeAbove,
		},
	)
	xproto.MapWindow(conn, o.window)
	xproto.ClearArea(conn, false, o.window, 0, 0, 0, 0)

	line := text
	if len(line) > 255 {
		line = line[:255]
	}
	xproto.ImageText8(
		conn,
		byte(len(line)),
		xproto.Drawable(o.window),
		o.gc,
		int16(paddingX),
		int16(paddingY+lineHeight-4),
		line,
	)

	if o.hide != nil {
		o.hide.Stop()
	}
	if o.duration > 0 {
		o.hide = time.AfterFunc(o.duration, o.Hide)
	}
}

// Hide unmaps the overlay without destroying it.
func (o *Overlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.created {
		xproto.UnmapWindow(o.xu.Conn(), o.window)
	}
}

// Close releases all X resources.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.hide != nil {
		o.hide.Stop()
		o.hide = nil
	}
	o.destroy()
}

func (o *Overlay) ensureResources() bool {
	if o.disabled {
		return false
	}
	if o.created {
		return true
	}
	if o.xu == nil {
		o.disabled = true
		return false
	}
	if err := o.create(); err != nil {
		o.logger.Warn("status overlay unavailable", "error", err)
		o.destroy()
		o.disabled = true
		return false
	}
	o.created = true
	return true
}

func (o *Overlay) create() error {
	conn := o.xu.Conn()
	screen := o.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}
	// Value list order follows the mask bit order: back_pixel, then override_redirect.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		o.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		[]uint32{ColorBackground, 1},
	).Check()
	if err != nil {
		return fmt.Errorf("create overlay window: %w", err)
	}
	o.window = wid

	font, err := xproto.NewFontId(conn)
	if err != nil {
		return err
	}
	names := fontNames
	if o.font != "" {
		names = append([]string{o.font}, fontNames...)
	}
	opened := false
	for _, name := range names {
		if err := xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check(); err == nil {
			opened = true
			break
		}
	}
	if !opened {
		return fmt.Errorf("no usable font among %v", names)
	}
	o.fontID = font

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return err
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{ColorText, ColorBackground, uint32(font), 0},
	).Check()
	if err != nil {
		return fmt.Errorf("create overlay gc: %w", err)
	}
	o.gc = gc
	return nil
}

func (o *Overlay) destroy() {
	if o.xu == nil {
		return
	}
	conn := o.xu.Conn()
	if o.gc != 0 {
		xproto.FreeGC(conn, o.gc)
	}
	if o.fontID != 0 {
		xproto.CloseFont(conn, o.fontID)
	}
	if o.window != 0 {
		xproto.DestroyWindow(conn, o.window)
	}
	o.gc = 0
	o.fontID = 0
	o.window = 0
	o.created = false
}

func (o *Overlay) screenRect() platform.Rect {
	screen := o.xu.Screen()
	if screen == nil {
		return platform.Rect{Width: 800, Height: 600}
	}
	return platform.Rect{Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)}
}

// overlayGeometry sizes the text box and anchors it at the status line
// position below lines rows of text, clamped so it never leaves area.
func overlayGeometry(text string, area platform.Rect, lines int) platform.Rect {
	width := len(text)*charWidth + 2*paddingX
	if width < minWidth {
		width = minWidth
	}
	height := lineHeight + 2*paddingY
	if width > area.Width {
		width = area.Width
	}
	if height > area.Height {
		height = area.Height
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dx, dy := LinePosition(lines, lineHeight)
	if dy+height > area.Height {
		dy = area.Height - height
	}
	return platform.Rect{X: area.X + dx, Y: area.Y + dy, Width: width, Height: height}
}
