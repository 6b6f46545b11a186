package x11

import (
	"math"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/planewm/planewm/internal/geometry"
)

// MoveResizeWindow moves and resizes a window to the specified frame.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, frame geometry.Region) error {
	// Maximized windows ignore configure requests; drop the state first.
	c.unmaximizeWindow(windowID)

	x := int(math.Round(frame.X))
	y := int(math.Round(frame.Y))
	w := int(math.Round(frame.Width))
	h := int(math.Round(frame.Height))

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, w, h); err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, w, h)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, windowID, 0, state)
		}
	}
}

// windowFrame returns a window's geometry in root coordinates.
func (c *Connection) windowFrame(windowID xproto.Window) (geometry.Region, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Region{}, false
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Region{}, false
	}

	return geometry.Region{
		X:      float64(translate.DstX),
		Y:      float64(translate.DstY),
		Width:  float64(geom.Width),
		Height: float64(geom.Height),
	}, true
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		switch t {
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// isHidden reports whether the window carries a state that excludes it from
// tiling.
func (c *Connection) isHidden(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// ToggleFullscreenState flips _NET_WM_STATE_FULLSCREEN on the window.
func (c *Connection) ToggleFullscreenState(windowID xproto.Window) error {
	const toggle = 2
	return ewmh.WmStateReq(c.XUtil, windowID, toggle, "_NET_WM_STATE_FULLSCREEN")
}

// CloseWindow requests graceful window close via WM_DELETE_WINDOW.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	deleteReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return err
	}
	protocolsReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteReply.Atom), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		windowID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// WarpPointer moves the cursor to the given root coordinate.
func (c *Connection) WarpPointer(p geometry.Point) error {
	return xproto.WarpPointerChecked(
		c.XUtil.Conn(),
		xproto.WindowNone,
		c.Root,
		0, 0, 0, 0,
		int16(math.Round(p.X)),
		int16(math.Round(p.Y)),
	).Check()
}

func (c *Connection) windowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	return ""
}
