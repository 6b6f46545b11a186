package bridge

import (
	"github.com/planewm/planewm/internal/geometry"
)

// Display describes a physical monitor and its usable work area in display
// coordinates.
type Display struct {
	ID     int
	Name   string
	Bounds geometry.Region
}

// Window contains metadata and geometry for a top-level client window.
type Window struct {
	ID    uint32
	PID   int
	Class string
	Title string
	Frame geometry.Region
}

// Predicate decides whether a window participates in tiling. The controller
// never hardcodes tileability policy; callers supply it.
type Predicate func(Window) bool

// Bridge abstracts the window-system operations the controller core needs.
// Implementations talk to one OS windowing bridge; the core treats every
// call as potentially blocking and potentially failing.
type Bridge interface {
	// Displays returns all connected monitors. The first entry is the
	// primary display.
	Displays() ([]Display, error)
	// ActiveDisplay returns the monitor holding the focused window, falling
	// back to the monitor under the cursor.
	ActiveDisplay() (Display, error)

	// ActiveWorkspace returns the id of the currently visible workspace.
	ActiveWorkspace() (int, error)
	// WorkspaceCount returns the number of workspaces.
	WorkspaceCount() (int, error)
	// WindowWorkspace returns the single workspace holding the window.
	// Sticky windows (visible everywhere) report an error.
	WindowWorkspace(windowID uint32) (int, error)
	// MoveToWorkspace reassigns the window to another workspace.
	MoveToWorkspace(windowID uint32, workspaceID int) error

	// ListWindows returns the visible client windows on a workspace across
	// all monitors, in the window system's enumeration order.
	ListWindows(workspaceID int) ([]Window, error)
	// ActiveWindow returns the focused window id, 0 when none.
	ActiveWindow() (uint32, error)
	// WindowInfo returns metadata and geometry for one window.
	WindowInfo(windowID uint32) (Window, error)

	// SetFrame moves and resizes a window.
	SetFrame(windowID uint32, frame geometry.Region) error
	// Focus gives a window input focus and raises it.
	Focus(windowID uint32) error
	// ToggleNativeFullscreen flips the window system's own fullscreen state.
	ToggleNativeFullscreen(windowID uint32) error
	// Close asks the window to close.
	Close(windowID uint32) error

	// CursorPosition returns the pointer location in display coordinates.
	CursorPosition() (geometry.Point, error)
	// WarpCursor moves the pointer.
	WarpCursor(p geometry.Point) error
}

// WindowsOnDisplay filters ws to the windows whose frame center lies inside
// the display's bounds.
func WindowsOnDisplay(ws []Window, d Display) []Window {
	var out []Window
	for _, w := range ws {
		if d.Bounds.Contains(w.Frame.Center()) {
			out = append(out, w)
		}
	}
	return out
}
