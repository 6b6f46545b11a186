package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planewm/planewm/internal/config"
	"github.com/planewm/planewm/internal/geometry"
)

func TestFocus_SpatialNeighbor(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Focus("west"))
	require.Equal(t, []uint32{1}, fb.focusLog)

	// Focus moves the insertion point with it.
	require.Equal(t, uint32(1), c.cfg.GetInsertionPoint())
}

func TestFocus_NoNeighborWithoutCycle(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.Error(t, c.Focus("east"))
	require.Empty(t, fb.focusLog)
}

func TestFocus_MonitorCycleWraps(t *testing.T) {
	c, fb := newTestController(t)
	c.cfg.WindowFocusCycle = config.FocusCycleMonitor
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Focus("east"))
	require.Equal(t, []uint32{1}, fb.focusLog)
}

func TestFocus_OrderedPrev(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Focus("prev"))
	require.Equal(t, []uint32{1}, fb.focusLog)
}

func TestFocus_UnknownTarget(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.Error(t, c.Focus("sideways"))
	require.Error(t, c.Focus("cancel"))
}

func TestFocus_MonocleWalksRing(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	require.NoError(t, c.ActivateLayout("monocle"))
	fb.focused = 1

	require.NoError(t, c.Focus("next"))
	require.Equal(t, uint32(2), fb.focused)

	// The ring end is a wall without a focus cycle.
	require.Error(t, c.Focus("next"))

	c.cfg.WindowFocusCycle = config.FocusCycleMonitor
	require.NoError(t, c.Focus("next"))
	require.Equal(t, uint32(1), fb.focused)
}

func TestSwap_ExchangesFrames(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.NoError(t, c.Swap("east"))
	require.Equal(t, rightRegion, fb.windows[1].Frame)
	require.Equal(t, leftRegion, fb.windows[2].Frame)

	// Focus stays on the moved window.
	require.Equal(t, uint32(1), fb.focused)
}

func TestSwap_NoNeighbor(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.Error(t, c.Swap("west"))
}

func TestWarp_SiblingReducesToSwap(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.NoError(t, c.Warp("east"))
	require.Equal(t, rightRegion, fb.windows[1].Frame)
	require.Equal(t, leftRegion, fb.windows[2].Frame)
}

func TestWarp_ReattachesAtNeighbor(t *testing.T) {
	c, fb := newTestController(t)
	fb.addWindow(1, "a", "one", geometry.Region{X: 10, Y: 10, Width: 100, Height: 100})
	fb.addWindow(2, "b", "two", geometry.Region{X: 20, Y: 20, Width: 100, Height: 100})
	fb.addWindow(3, "c", "three", geometry.Region{X: 30, Y: 30, Width: 100, Height: 100})
	c.WorkspaceActivated(0)

	// 1 fills the left half; 2 and 3 stack on the right.
	require.Equal(t, geometry.Region{X: 800, Y: 0, Width: 800, Height: 450}, fb.windows[2].Frame)

	fb.focused = 2
	require.NoError(t, c.Warp("west"))

	// 2 now splits the left half with 1; 3 owns the right half.
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 800, Height: 450}, fb.windows[1].Frame)
	require.Equal(t, geometry.Region{X: 0, Y: 450, Width: 800, Height: 450}, fb.windows[2].Frame)
	require.Equal(t, geometry.Region{X: 800, Y: 0, Width: 800, Height: 900}, fb.windows[3].Frame)
	require.Equal(t, uint32(2), fb.focused)
}

func TestToggleFloat_UntilesAndRetiles(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Toggle("float"))
	require.True(t, c.floating[2])
	require.Equal(t, fullRegion, fb.windows[1].Frame)

	require.NoError(t, c.Toggle("float"))
	require.False(t, c.floating[2])
	require.Equal(t, leftRegion, fb.windows[1].Frame)
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestToggleSticky_FloatsTheWindow(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Toggle("sticky"))
	require.True(t, c.sticky[2])
	require.True(t, c.floating[2])
	require.Equal(t, fullRegion, fb.windows[1].Frame)

	// Unsticking leaves the float flag alone.
	require.NoError(t, c.Toggle("sticky"))
	require.False(t, c.sticky[2])
	require.True(t, c.floating[2])
}

func TestToggleNativeFullscreen(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Toggle("native-fullscreen"))
	require.Equal(t, 1, fb.nativeFS[2])
	require.Equal(t, fullRegion, fb.windows[1].Frame)

	require.NoError(t, c.Toggle("native-fullscreen"))
	require.Equal(t, 2, fb.nativeFS[2])
	require.Equal(t, leftRegion, fb.windows[1].Frame)
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestToggleFullscreen_ZoomsToRoot(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	require.NoError(t, c.Toggle("fullscreen"))
	require.Equal(t, fullRegion, fb.windows[2].Frame)
	require.Equal(t, leftRegion, fb.windows[1].Frame)

	require.NoError(t, c.Toggle("fullscreen"))
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestToggleParent_SingleWindowErrors(t *testing.T) {
	c, fb := newTestController(t)
	fb.addWindow(1, "a", "one", geometry.Region{X: 10, Y: 10, Width: 100, Height: 100})
	c.WindowCreated(1)
	fb.focused = 1

	require.Error(t, c.Toggle("parent"))
}

func TestToggleSplit_FlipsTheParentAxis(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.NoError(t, c.Toggle("split"))
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 1600, Height: 450}, fb.windows[1].Frame)
	require.Equal(t, geometry.Region{X: 0, Y: 450, Width: 1600, Height: 450}, fb.windows[2].Frame)
}

func TestToggle_Rejections(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)

	fb.focused = 0
	require.Error(t, c.Toggle("float"))

	fb.focused = 1
	require.Error(t, c.Toggle("invisible"))
}

func TestAdjustRatio_MovesSharedEdge(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.NoError(t, c.AdjustRatio("east", 0.2))
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 1120, Height: 900}, fb.windows[1].Frame)
	require.Equal(t, geometry.Region{X: 1120, Y: 0, Width: 480, Height: 900}, fb.windows[2].Frame)
}

func TestAdjustRatio_NegatedFromRightSubtree(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 2

	// Growing 2 toward the west shrinks 1, so the ratio falls.
	require.NoError(t, c.AdjustRatio("west", 0.2))
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 480, Height: 900}, fb.windows[1].Frame)
	require.Equal(t, geometry.Region{X: 480, Y: 0, Width: 1120, Height: 900}, fb.windows[2].Frame)
}

func TestAdjustRatio_Rejections(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.Error(t, c.AdjustRatio("east", 0.5), "ratio past the clamp range")
	require.Error(t, c.AdjustRatio("next", 0), "ordered targets cannot resize")

	// A zero step falls back to the 0.1 default.
	require.NoError(t, c.AdjustRatio("east", 0))
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 960, Height: 900}, fb.windows[1].Frame)
}

func TestPreselect_DirectsTheNextSpawn(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1
	c.cfg.SetInsertionPoint(1)

	require.NoError(t, c.Preselect("east"))

	fb.addWindow(3, "c", "three", geometry.Region{X: 30, Y: 30, Width: 100, Height: 100})
	c.WindowCreated(3)
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 400, Height: 900}, fb.windows[1].Frame)
	require.Equal(t, geometry.Region{X: 400, Y: 0, Width: 400, Height: 900}, fb.windows[3].Frame)
	require.Equal(t, rightRegion, fb.windows[2].Frame)
}

func TestPreselect_SameDirectionToggles(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1
	c.cfg.SetInsertionPoint(1)

	require.NoError(t, c.Preselect("east"))
	require.NoError(t, c.Preselect("east"))

	// Left half is taller than wide, so the default split is horizontal.
	fb.addWindow(3, "c", "three", geometry.Region{X: 30, Y: 30, Width: 100, Height: 100})
	c.WindowCreated(3)
	require.Equal(t, geometry.Region{X: 0, Y: 0, Width: 800, Height: 450}, fb.windows[1].Frame)
	require.Equal(t, geometry.Region{X: 0, Y: 450, Width: 800, Height: 450}, fb.windows[3].Frame)
}

func TestPreselect_CancelClears(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)
	fb.focused = 1

	require.NoError(t, c.Preselect("east"))
	require.NoError(t, c.Preselect("cancel"))

	require.Error(t, c.Preselect("next"), "ordered targets cannot preselect")
}

func TestCloseFocused(t *testing.T) {
	c, fb := newTestController(t)
	tileTwo(t, c, fb)

	fb.focused = 2
	require.NoError(t, c.CloseFocused())
	require.Equal(t, []uint32{2}, fb.closed)

	fb.focused = 0
	require.Error(t, c.CloseFocused())
}
