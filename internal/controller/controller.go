package controller

import (
	"fmt"
	"log"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/config"
	"github.com/planewm/planewm/internal/dock"
	"github.com/planewm/planewm/internal/geometry"
	"github.com/planewm/planewm/internal/layout"
	"github.com/planewm/planewm/internal/overlay"
	"github.com/planewm/planewm/internal/vspace"
)

// InvariantError marks states that should be impossible: the window system
// reporting no active workspace, a tree lookup failing for a window the
// caller proved is tiled. These are bugs or state races, not user errors.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Detail)
}

func invariantf(op, format string, args ...any) error {
	return &InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Controller is the tiling command dispatcher. All commands run sequentially
// on the daemon's single worker; per-workspace mutual exclusion additionally
// guards every virtual space between acquire and release so the registry
// stays safe if the worker is ever parallelized.
type Controller struct {
	backend bridge.Bridge
	spaces  *vspace.Registry
	cfg     *config.Config
	dock    *dock.Client
	hints   *overlay.Manager

	tileable bridge.Predicate

	// Per-window controller-side flags. The window system has no notion of
	// our float state, so these live here for the daemon's lifetime.
	floating   map[uint32]bool
	sticky     map[uint32]bool
	fullscreen map[uint32]bool

	// Serialized trees loaded while a workspace was not in bsp mode; bound
	// on the next layout activation.
	pending map[int]*layout.Node
}

// New wires a controller over the given collaborators. A nil predicate
// admits every window the bridge lists.
func New(backend bridge.Bridge, cfg *config.Config, hints *overlay.Manager, tileable bridge.Predicate) *Controller {
	mode, _ := vspace.ParseMode(cfg.DefaultLayout)
	off := vspace.Offset{
		Top:    cfg.Offset.Top,
		Bottom: cfg.Offset.Bottom,
		Left:   cfg.Offset.Left,
		Right:  cfg.Offset.Right,
		Gap:    cfg.Offset.Gap,
	}
	if tileable == nil {
		tileable = func(bridge.Window) bool { return true }
	}
	return &Controller{
		backend:    backend,
		spaces:     vspace.NewRegistry(mode, off),
		cfg:        cfg,
		dock:       dock.NewClient(cfg.DockAddr),
		hints:      hints,
		tileable:   tileable,
		floating:   make(map[uint32]bool),
		sticky:     make(map[uint32]bool),
		fullscreen: make(map[uint32]bool),
		pending:    make(map[int]*layout.Node),
	}
}

// Spaces exposes the registry for workspace lifecycle events.
func (c *Controller) Spaces() *vspace.Registry { return c.spaces }

// spaceKey folds a workspace and a monitor into one registry key. Window
// systems with per-monitor workspaces have a 1:1 mapping; on X11 a desktop
// spans all monitors, so each (desktop, monitor) pair gets its own virtual
// space and tree.
func spaceKey(workspaceID, displayID int) int {
	return workspaceID<<8 | (displayID & 0xff)
}

// context is the resolved target of a command: the active workspace, the
// active display and the registry key for their virtual space.
type context struct {
	workspace int
	display   bridge.Display
	key       int
}

func (c *Controller) activeContext(op string) (context, error) {
	workspace, err := c.backend.ActiveWorkspace()
	if err != nil {
		return context{}, invariantf(op, "no active workspace: %v", err)
	}
	display, err := c.backend.ActiveDisplay()
	if err != nil {
		return context{}, invariantf(op, "no active display: %v", err)
	}
	return context{
		workspace: workspace,
		display:   display,
		key:       spaceKey(workspace, display.ID),
	}, nil
}

// insertionWindow resolves the window directional commands start from: the
// bsp_insertion_point variable when set, the focused window otherwise.
func (c *Controller) insertionWindow() uint32 {
	if wid := c.cfg.GetInsertionPoint(); wid != 0 {
		return wid
	}
	wid, err := c.backend.ActiveWindow()
	if err != nil {
		return 0
	}
	return wid
}

// tiledWindows lists the windows on the workspace and display that
// participate in tiling.
func (c *Controller) tiledWindows(ctx context) ([]bridge.Window, error) {
	windows, err := c.backend.ListWindows(ctx.workspace)
	if err != nil {
		return nil, err
	}
	windows = bridge.WindowsOnDisplay(windows, ctx.display)
	out := windows[:0]
	for _, w := range windows {
		if !c.tileable(w) || c.floating[w.ID] {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// applySpace pushes every window frame the virtual space implies. Tree
// mutation always precedes this call; focus changes always follow it.
func (c *Controller) applySpace(vs *vspace.VirtualSpace, display bridge.Display) {
	root := vs.RootRegion(display.Bounds)

	switch vs.Mode {
	case vspace.ModeBSP:
		if vs.Tree == nil {
			return
		}
		vs.Tree.SetRegion(root, vs.Gap())
		c.applyTreeFrames(vs.Tree)
	case vspace.ModeMonocle:
		if vs.Ring == nil {
			return
		}
		for _, wid := range vs.Ring.Windows() {
			if err := c.backend.SetFrame(wid, root); err != nil {
				log.Printf("failed to resize window 0x%x: %v", wid, err)
			}
		}
	}
}

// applyTreeFrames resizes every leaf to its region, honoring zoom slots.
func (c *Controller) applyTreeFrames(root *layout.Node) {
	for leaf := root.FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
		if err := c.backend.SetFrame(leaf.WindowID, leafFrame(root, leaf)); err != nil {
			log.Printf("failed to resize window 0x%x: %v", leaf.WindowID, err)
		}
	}
}

// leafFrame is the frame a leaf is drawn at: the root's zoom target fills the
// root region, a parent's zoom target the parent's region, everything else
// its own region.
func leafFrame(root, leaf *layout.Node) geometry.Region {
	if root.Zoom == leaf {
		return root.Region
	}
	if leaf.Parent != nil && leaf.Parent.Zoom == leaf {
		return leaf.Parent.Region
	}
	return leaf.Region
}

// focusWindow sets focus and optionally warps the cursor to the window.
func (c *Controller) focusWindow(windowID uint32, region geometry.Region) {
	if err := c.backend.Focus(windowID); err != nil {
		log.Printf("failed to focus window 0x%x: %v", windowID, err)
		return
	}
	c.cfg.SetInsertionPoint(windowID)
	if c.cfg.MouseFollowsFocus {
		c.centerMouse(region)
	}
}

// centerMouse warps the cursor to the region center unless it is already
// inside the region.
func (c *Controller) centerMouse(r geometry.Region) {
	p, err := c.backend.CursorPosition()
	if err == nil && r.Contains(p) {
		return
	}
	if err := c.backend.WarpCursor(r.Center()); err != nil {
		log.Printf("failed to warp cursor: %v", err)
	}
}

// clearPreselect drops a leaf's preselect record and its hint window.
func (c *Controller) clearPreselect(leaf *layout.Node) {
	if leaf == nil || leaf.Preselect == nil {
		return
	}
	c.hints.Hide(leaf.Preselect.HintWindow)
	leaf.Preselect = nil
}

// normalizeFrame re-maps a frame from one monitor's rectangle into
// another's, preserving the relative offset and scaling for resolution
// differences.
func normalizeFrame(frame geometry.Region, src, dst geometry.Region) geometry.Region {
	scaleX := src.Width / dst.Width
	scaleY := src.Height / dst.Height

	offX := frame.X - src.X
	offY := frame.Y - src.Y
	if scaleX > 1 {
		offX /= scaleX
	}
	if scaleY > 1 {
		offY /= scaleY
	}

	return geometry.Region{
		X:      dst.X + offX,
		Y:      dst.Y + offY,
		Width:  frame.Width / scaleX,
		Height: frame.Height / scaleY,
	}
}
