package controller

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/config"
	"github.com/planewm/planewm/internal/geometry"
)

// fakeBridge is an in-memory window system. Window enumeration order is
// insertion order, matching how real bridges report mapping order.
type fakeBridge struct {
	displays    []bridge.Display
	activeID    int
	workspace   int
	workspaces  int
	order       []uint32
	windows     map[uint32]bridge.Window
	workspaceOf map[uint32]int
	focused     uint32
	cursor      geometry.Point

	focusLog []uint32
	moved    map[uint32]int
	closed   []uint32
	nativeFS map[uint32]int
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		displays: []bridge.Display{
			{ID: 0, Name: "primary", Bounds: geometry.Region{X: 0, Y: 0, Width: 1600, Height: 900}},
		},
		workspaces:  2,
		windows:     make(map[uint32]bridge.Window),
		workspaceOf: make(map[uint32]int),
		moved:       make(map[uint32]int),
		nativeFS:    make(map[uint32]int),
	}
}

func (f *fakeBridge) addWindow(id uint32, class, title string, frame geometry.Region) {
	f.order = append(f.order, id)
	f.windows[id] = bridge.Window{ID: id, Class: class, Title: title, Frame: frame}
	f.workspaceOf[id] = f.workspace
}

func (f *fakeBridge) Displays() ([]bridge.Display, error) { return f.displays, nil }

func (f *fakeBridge) ActiveDisplay() (bridge.Display, error) {
	for _, d := range f.displays {
		if d.ID == f.activeID {
			return d, nil
		}
	}
	return bridge.Display{}, fmt.Errorf("no display %d", f.activeID)
}

func (f *fakeBridge) ActiveWorkspace() (int, error) { return f.workspace, nil }
func (f *fakeBridge) WorkspaceCount() (int, error)  { return f.workspaces, nil }

func (f *fakeBridge) WindowWorkspace(windowID uint32) (int, error) {
	ws, ok := f.workspaceOf[windowID]
	if !ok {
		return 0, fmt.Errorf("no workspace for window 0x%x", windowID)
	}
	return ws, nil
}

func (f *fakeBridge) MoveToWorkspace(windowID uint32, workspaceID int) error {
	f.workspaceOf[windowID] = workspaceID
	f.moved[windowID] = workspaceID
	return nil
}

func (f *fakeBridge) ListWindows(workspaceID int) ([]bridge.Window, error) {
	var out []bridge.Window
	for _, id := range f.order {
		if f.workspaceOf[id] == workspaceID {
			out = append(out, f.windows[id])
		}
	}
	return out, nil
}

func (f *fakeBridge) ActiveWindow() (uint32, error) { return f.focused, nil }

func (f *fakeBridge) WindowInfo(windowID uint32) (bridge.Window, error) {
	win, ok := f.windows[windowID]
	if !ok {
		return bridge.Window{}, fmt.Errorf("no window 0x%x", windowID)
	}
	return win, nil
}

func (f *fakeBridge) SetFrame(windowID uint32, frame geometry.Region) error {
	win, ok := f.windows[windowID]
	if !ok {
		return fmt.Errorf("no window 0x%x", windowID)
	}
	win.Frame = frame
	f.windows[windowID] = win
	return nil
}

func (f *fakeBridge) Focus(windowID uint32) error {
	f.focused = windowID
	f.focusLog = append(f.focusLog, windowID)
	return nil
}

func (f *fakeBridge) ToggleNativeFullscreen(windowID uint32) error {
	f.nativeFS[windowID]++
	return nil
}

func (f *fakeBridge) Close(windowID uint32) error {
	f.closed = append(f.closed, windowID)
	return nil
}

func (f *fakeBridge) CursorPosition() (geometry.Point, error) { return f.cursor, nil }

func (f *fakeBridge) WarpCursor(p geometry.Point) error {
	f.cursor = p
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.MouseFollowsFocus = false
	return cfg
}

func newTestController(t *testing.T) (*Controller, *fakeBridge) {
	t.Helper()
	fb := newFakeBridge()
	return New(fb, testConfig(), nil, nil), fb
}

// tileTwo maps two windows side by side: 1 on the left half, 2 on the right.
func tileTwo(t *testing.T, c *Controller, fb *fakeBridge) {
	t.Helper()
	fb.addWindow(1, "Alacritty", "left", geometry.Region{X: 10, Y: 10, Width: 600, Height: 400})
	c.WindowCreated(1)
	fb.addWindow(2, "firefox", "right", geometry.Region{X: 200, Y: 200, Width: 600, Height: 400})
	c.WindowCreated(2)
}

var (
	fullRegion  = geometry.Region{X: 0, Y: 0, Width: 1600, Height: 900}
	leftRegion  = geometry.Region{X: 0, Y: 0, Width: 800, Height: 900}
	rightRegion = geometry.Region{X: 800, Y: 0, Width: 800, Height: 900}
)

func TestWindowCreated_TilesSuccessively(t *testing.T) {
	c, fb := newTestController(t)

	fb.addWindow(1, "Alacritty", "left", geometry.Region{X: 10, Y: 10, Width: 600, Height: 400})
	c.WindowCreated(1)
	require.Equal(t, fullRegion, fb.windows[1].Frame)

	fb.addWindow(2, "firefox", "right", geometry.Region{X: 200, Y: 200, Width: 600, Height: 400})
	c.WindowCreated(2)
	require.Equal(t, leftRegion, fb.windows[1].Frame)
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestWindowCreated_DuplicateIsIgnored(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)

	c.WindowCreated(1)
	require.Equal(t, leftRegion, fb.windows[1].Frame)
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestWindowDestroyed_PromotesSurvivor(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)

	c.WindowDestroyed(2)
	require.Equal(t, fullRegion, fb.windows[1].Frame)
}

func TestWindowDestroyed_ClearsInsertionPoint(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)

	c.cfg.SetInsertionPoint(2)
	c.WindowDestroyed(2)
	require.Equal(t, uint32(0), c.cfg.GetInsertionPoint())
}

func TestWorkspaceActivated_AdoptsExistingWindows(t *testing.T) {
	c, fb := newTestController(t)
	fb.addWindow(1, "Alacritty", "left", geometry.Region{X: 10, Y: 10, Width: 600, Height: 400})
	fb.addWindow(2, "firefox", "right", geometry.Region{X: 200, Y: 200, Width: 600, Height: 400})

	c.WorkspaceActivated(0)
	require.Equal(t, leftRegion, fb.windows[1].Frame)
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestWorkspaceDestroyed_ForgetsSpaces(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)

	key := spaceKey(0, 0)
	require.True(t, c.Spaces().Known(key))

	c.WorkspaceDestroyed(0)
	require.False(t, c.Spaces().Known(key))
}

func TestSpaceKey_SeparatesMonitors(t *testing.T) {
	require.NotEqual(t, spaceKey(1, 0), spaceKey(1, 1))
	require.NotEqual(t, spaceKey(1, 0), spaceKey(0, 0))
	require.Equal(t, 1, spaceKey(1, 0)>>8)
}

func TestNormalizeFrame_ScalesAcrossResolutions(t *testing.T) {
	src := geometry.Region{X: 0, Y: 0, Width: 1600, Height: 900}
	dst := geometry.Region{X: 1600, Y: 0, Width: 800, Height: 450}
	frame := geometry.Region{X: 400, Y: 100, Width: 800, Height: 450}

	got := normalizeFrame(frame, src, dst)
	require.Equal(t, geometry.Region{X: 1800, Y: 50, Width: 400, Height: 225}, got)
}
