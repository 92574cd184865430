package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const netWmStateFullscreen = "_NET_WM_STATE_FULLSCREEN"

// EWMH _NET_WM_STATE actions.
const (
	stateRemove = 0
	stateAdd    = 1
)

// FrameExtents are the decoration sizes published in _NET_FRAME_EXTENTS.
type FrameExtents struct {
	Left, Right, Top, Bottom int
}

// MoveResizeWindow places the window's frame at x,y and sizes its client
// area to width x height. Gravity is left to the window, so with the default
// NorthWest gravity x,y is the top-left corner of the frame.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore move/resize requests on most WMs.
	_ = c.unmaximizeWindow(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			if err := ewmh.WmStateReq(c.XUtil, windowID, stateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

// WindowGeometry returns the window's root-relative position and size.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get geometry of window %d: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates of window %d: %w", windowID, err)
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// GetFrameExtents returns the window decoration sizes, or zeros when the
// window manager does not publish them.
func (c *Connection) GetFrameExtents(windowID xproto.Window) FrameExtents {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil || extents == nil {
		return FrameExtents{}
	}
	return FrameExtents{
		Left:   int(extents.Left),
		Right:  int(extents.Right),
		Top:    int(extents.Top),
		Bottom: int(extents.Bottom),
	}
}

// WindowPlacement returns the window in the coordinates MoveResizeWindow
// takes: the top-left corner of its frame and the size of its client area.
func (c *Connection) WindowPlacement(windowID xproto.Window) (x, y, width, height int, err error) {
	x, y, width, height, err = c.WindowGeometry(windowID)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	x, y = frameOrigin(x, y, c.GetFrameExtents(windowID))
	return x, y, width, height, nil
}

// frameOrigin converts a client-area origin to the origin of the frame around it.
func frameOrigin(clientX, clientY int, ext FrameExtents) (int, int) {
	return clientX - ext.Left, clientY - ext.Top
}

// SetDecorated asks the window manager to show or hide the frame via _MOTIF_WM_HINTS.
func (c *Connection) SetDecorated(windowID xproto.Window, decorated bool) error {
	hints, err := motif.WmHintsGet(c.XUtil, windowID)
	if err != nil || hints == nil {
		hints = &motif.Hints{}
	}

	hints.Flags |= motif.HintDecorations
	if decorated {
		hints.Decoration = motif.DecorationAll
	} else {
		hints.Decoration = motif.DecorationNone
	}

	if err := motif.WmHintsSet(c.XUtil, windowID, hints); err != nil {
		return fmt.Errorf("failed to set motif hints on window %d: %w", windowID, err)
	}
	return nil
}

// IsFullscreen reports whether _NET_WM_STATE_FULLSCREEN is set on the window.
func (c *Connection) IsFullscreen(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == netWmStateFullscreen {
			return true
		}
	}
	return false
}

// SetFullscreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullscreen(windowID xproto.Window, fullscreen bool) error {
	action := stateRemove
	if fullscreen {
		action = stateAdd
	}
	return ewmh.WmStateReq(c.XUtil, windowID, action, netWmStateFullscreen)
}

// WindowExists reports whether the window is still listed by the window manager.
func (c *Connection) WindowExists(windowID xproto.Window) bool {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		// Without a client list, fall back to asking the server directly.
		_, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
		return err == nil
	}
	for _, win := range clients {
		if win == windowID {
			return true
		}
	}
	return false
}

// GetActiveWindow returns the focused window from _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// FindWindowByTitle searches the EWMH client list for a window whose
// _NET_WM_NAME contains the given substring. Returns the first match.
func (c *Connection) FindWindowByTitle(substring string) (xproto.Window, error) {
	if substring == "" {
		return 0, fmt.Errorf("empty title")
	}
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get client list: %w", err)
	}
	for _, win := range clients {
		name, err := ewmh.WmNameGet(c.XUtil, win)
		if err != nil {
			continue
		}
		if strings.Contains(name, substring) {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}
