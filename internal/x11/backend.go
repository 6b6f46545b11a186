package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/geometry"
)

// Backend exposes the X11 connection behind the bridge.Bridge interface.
// Workspaces map to EWMH virtual desktops, which on X11 span all monitors.
type Backend struct {
	conn *Connection
}

var _ bridge.Bridge = (*Backend)(nil)

// NewBackend opens a fresh X11 connection.
func NewBackend() (*Backend, error) {
	conn, err := NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &Backend{conn: conn}, nil
}

// NewBackendFromConnection wraps an existing connection.
func NewBackendFromConnection(conn *Connection) *Backend {
	return &Backend{conn: conn}
}

// Disconnect closes the underlying X11 connection.
func (b *Backend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *Backend) EventLoop() {
	b.conn.EventLoop()
}

// XUtil returns the underlying xgbutil connection for X11-specific callers
// such as the hotkey handler and the preselect overlay.
func (b *Backend) XUtil() *xgbutil.XUtil {
	return b.conn.XUtil
}

// RootWindow returns the X11 root window id.
func (b *Backend) RootWindow() xproto.Window {
	return b.conn.Root
}

func (b *Backend) Displays() ([]bridge.Display, error) {
	return b.conn.Monitors()
}

func (b *Backend) ActiveDisplay() (bridge.Display, error) {
	return b.conn.ActiveMonitor()
}

func (b *Backend) ActiveWorkspace() (int, error) {
	return b.conn.CurrentDesktop()
}

func (b *Backend) WorkspaceCount() (int, error) {
	return b.conn.DesktopCount()
}

func (b *Backend) WindowWorkspace(windowID uint32) (int, error) {
	return b.conn.WindowDesktop(xproto.Window(windowID))
}

func (b *Backend) MoveToWorkspace(windowID uint32, workspaceID int) error {
	return b.conn.SetWindowDesktop(xproto.Window(windowID), workspaceID)
}

// ListWindows returns the visible normal windows on a workspace in EWMH
// client-list order, including sticky windows.
func (b *Backend) ListWindows(workspaceID int) ([]bridge.Window, error) {
	clients, err := ewmh.ClientListGet(b.conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	windows := make([]bridge.Window, 0, len(clients))
	for _, win := range clients {
		if !b.conn.IsNormalWindow(win) || b.conn.isHidden(win) {
			continue
		}

		if desktop, err := ewmh.WmDesktopGet(b.conn.XUtil, win); err == nil &&
			desktop != stickyDesktop && int(desktop) != workspaceID {
			continue
		}

		frame, ok := b.conn.windowFrame(win)
		if !ok {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(b.conn.XUtil, win); err == nil {
			pid = int(p)
		}

		windows = append(windows, bridge.Window{
			ID:    uint32(win),
			PID:   pid,
			Class: b.conn.windowClass(win),
			Title: b.conn.windowTitle(win),
			Frame: frame,
		})
	}

	return windows, nil
}

func (b *Backend) ActiveWindow() (uint32, error) {
	win, err := ewmh.ActiveWindowGet(b.conn.XUtil)
	if err != nil {
		return 0, err
	}
	return uint32(win), nil
}

func (b *Backend) WindowInfo(windowID uint32) (bridge.Window, error) {
	win := xproto.Window(windowID)
	frame, ok := b.conn.windowFrame(win)
	if !ok {
		return bridge.Window{}, fmt.Errorf("failed to read geometry of window 0x%x", windowID)
	}

	pid := 0
	if p, err := ewmh.WmPidGet(b.conn.XUtil, win); err == nil {
		pid = int(p)
	}

	return bridge.Window{
		ID:    windowID,
		PID:   pid,
		Class: b.conn.windowClass(win),
		Title: b.conn.windowTitle(win),
		Frame: frame,
	}, nil
}

func (b *Backend) SetFrame(windowID uint32, frame geometry.Region) error {
	return b.conn.MoveResizeWindow(xproto.Window(windowID), frame)
}

func (b *Backend) Focus(windowID uint32) error {
	return b.conn.FocusWindow(xproto.Window(windowID))
}

func (b *Backend) ToggleNativeFullscreen(windowID uint32) error {
	return b.conn.ToggleFullscreenState(xproto.Window(windowID))
}

func (b *Backend) Close(windowID uint32) error {
	return b.conn.CloseWindow(xproto.Window(windowID))
}

func (b *Backend) CursorPosition() (geometry.Point, error) {
	return b.conn.pointerPosition()
}

func (b *Backend) WarpCursor(p geometry.Point) error {
	return b.conn.WarpPointer(p)
}
