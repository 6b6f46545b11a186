package overlay

import (
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/planewm/planewm/internal/geometry"
)

// borderHint is a rectangular outline made of 4 thin override-redirect
// windows drawn around a preselect region.
type borderHint struct {
	top    xproto.Window
	bottom xproto.Window
	left   xproto.Window
	right  xproto.Window
}

// Manager paints preselect hints. Hints are identified by the id of their
// top border window; that id is what the preselect record stores. A Manager
// with a nil connection is inert and hands out id 0, which Hide ignores.
type Manager struct {
	xu    *xgbutil.XUtil
	root  xproto.Window
	color uint32
	width int

	hints map[uint32]*borderHint
}

// NewManager returns a hint painter using the given border color and width.
func NewManager(xu *xgbutil.XUtil, root xproto.Window, color uint32, width int) *Manager {
	if width < 1 {
		width = 1
	}
	return &Manager{
		xu:    xu,
		root:  root,
		color: color,
		width: width,
		hints: make(map[uint32]*borderHint),
	}
}

// Show paints a border hint around the region and returns its handle,
// 0 when painting is unavailable.
func (m *Manager) Show(region geometry.Region) uint32 {
	if m == nil || m.xu == nil {
		return 0
	}

	hint := &borderHint{}
	for _, win := range []*xproto.Window{&hint.top, &hint.bottom, &hint.left, &hint.right} {
		wid, err := m.createOverrideRedirectWindow()
		if err != nil {
			m.destroy(hint)
			return 0
		}
		*win = wid
	}

	x := int(math.Round(region.X))
	y := int(math.Round(region.Y))
	w := int(math.Round(region.Width))
	h := int(math.Round(region.Height))
	t := m.width

	m.updateWindow(hint.top, x, y, w, t)
	m.updateWindow(hint.bottom, x, y+h-t, w, t)
	m.updateWindow(hint.left, x, y+t, t, h-2*t)
	m.updateWindow(hint.right, x+w-t, y+t, t, h-2*t)

	conn := m.xu.Conn()
	xproto.MapWindow(conn, hint.top)
	xproto.MapWindow(conn, hint.bottom)
	xproto.MapWindow(conn, hint.left)
	xproto.MapWindow(conn, hint.right)

	m.hints[uint32(hint.top)] = hint
	return uint32(hint.top)
}

// Hide destroys the hint with the given handle.
func (m *Manager) Hide(handle uint32) {
	if m == nil || handle == 0 {
		return
	}
	hint, ok := m.hints[handle]
	if !ok {
		return
	}
	delete(m.hints, handle)
	m.destroy(hint)
}

// Cleanup destroys every outstanding hint.
func (m *Manager) Cleanup() {
	if m == nil {
		return
	}
	for handle, hint := range m.hints {
		delete(m.hints, handle)
		m.destroy(hint)
	}
}

func (m *Manager) destroy(hint *borderHint) {
	conn := m.xu.Conn()
	for _, win := range []xproto.Window{hint.top, hint.bottom, hint.left, hint.right} {
		if win != 0 {
			xproto.DestroyWindow(conn, win)
		}
	}
}

// createOverrideRedirectWindow creates a window that bypasses the window
// manager so it can sit above clients without being managed.
func (m *Manager) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := m.xu.Conn()
	screen := m.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		m.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		// Value list order follows the bit positions of the mask (low to
		// high); CwBackPixel comes before CwOverrideRedirect.
		[]uint32{m.color, 1},
	).Check()
	if err != nil {
		return 0, err
	}

	return wid, nil
}

func (m *Manager) updateWindow(wid xproto.Window, x, y, width, height int) {
	conn := m.xu.Conn()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height), xproto.StackModeAbove},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{m.color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}
