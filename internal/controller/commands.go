package controller

import (
	"fmt"
	"log"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/dock"
	"github.com/planewm/planewm/internal/layout"
	"github.com/planewm/planewm/internal/selector"
	"github.com/planewm/planewm/internal/vspace"
)

// Focus moves input focus to the window the target selects. In bsp mode the
// ordered and spatial strategies run over the tree; when both fail and the
// focus cycle is "all" the command falls through to the adjacent monitor. In
// monocle mode the ring's sibling links are walked; float mode resolves over
// raw window frames.
func (c *Controller) Focus(target string) error {
	t, ok := selector.Parse(target)
	if !ok || t == selector.TargetCancel {
		return fmt.Errorf("focus: unknown target %q", target)
	}
	ctx, err := c.activeContext("focus")
	if err != nil {
		return err
	}
	src := c.insertionWindow()
	if src == 0 {
		return fmt.Errorf("focus: no window to focus from")
	}
	cycle := selector.ParseCycleMode(c.cfg.FocusCycle())

	h := c.spaces.Acquire(ctx.key)
	vs := h.Space

	switch vs.Mode {
	case vspace.ModeMonocle:
		dst, derr := monocleSibling(vs, src, t, cycle != selector.CycleNone)
		if derr != nil {
			h.Release()
			return derr
		}
		region := vs.RootRegion(ctx.display.Bounds)
		h.Release()
		c.focusWindow(dst, region)
		return nil

	case vspace.ModeBSP:
		srcLeaf := vs.Tree.FindLeaf(src)
		if srcLeaf == nil {
			h.Release()
			return c.focusByFrame(ctx, src, t, cycle != selector.CycleNone)
		}
		dst := treeNeighbor(vs.Tree, srcLeaf, t, ctx, cycle)
		if dst == nil {
			h.Release()
			if cycle == selector.CycleAll {
				return c.FocusMonitor(monitorFallback(t))
			}
			return fmt.Errorf("focus: no window %s of the focused window", t)
		}
		wid, region := dst.WindowID, leafFrame(vs.Tree, dst)
		h.Release()
		c.focusWindow(wid, region)
		return nil

	default:
		h.Release()
		return c.focusByFrame(ctx, src, t, cycle != selector.CycleNone)
	}
}

// treeNeighbor resolves a target over a bsp tree: ordered traversal for
// prev/next/biggest, spatial scoring for the cardinal directions. Spatial
// wrap engages only for the "monitor" cycle; "all" prefers the cross-monitor
// fallback in the caller.
func treeNeighbor(root, src *layout.Node, t selector.Target, ctx context, cycle selector.CycleMode) *layout.Node {
	switch t {
	case selector.TargetPrev, selector.TargetNext, selector.TargetBiggest:
		return selector.Ordered(root, src, t, cycle != selector.CycleNone)
	}
	dir, ok := t.Cardinal()
	if !ok {
		return nil
	}
	return selector.Spatial(root, src, dir, ctx.display.Bounds, cycle == selector.CycleMonitor)
}

// monocleSibling walks the ring's sibling links from the source window.
func monocleSibling(vs *vspace.VirtualSpace, src uint32, t selector.Target, wrap bool) (uint32, error) {
	if vs.Ring == nil || vs.Ring.Len() == 0 {
		return 0, fmt.Errorf("focus: no windows on the monocle workspace")
	}
	node := vs.Ring.Find(src)
	if node == nil {
		node = vs.Ring.First()
	}

	var dst *layout.RingNode
	switch t {
	case selector.TargetPrev, selector.TargetWest, selector.TargetNorth:
		dst = node.Prev()
		if dst == nil && wrap {
			dst = vs.Ring.Last()
		}
	case selector.TargetNext, selector.TargetEast, selector.TargetSouth:
		dst = node.Next()
		if dst == nil && wrap {
			dst = vs.Ring.First()
		}
	case selector.TargetBiggest:
		dst = vs.Ring.First()
	}
	if dst == nil || dst == node {
		return 0, fmt.Errorf("focus: no window %s of the focused window", t)
	}
	return dst.WindowID, nil
}

// monitorFallback maps a failed directional focus to the monitor command
// operand the cross-monitor fallback should use.
func monitorFallback(t selector.Target) string {
	switch t {
	case selector.TargetWest, selector.TargetPrev:
		return "prev"
	}
	return "next"
}

// focusByFrame is the frame-based focus variant used when the source window
// is not part of any tree: float workspaces and windows the layout does not
// track. prev/next alias west/east.
func (c *Controller) focusByFrame(ctx context, src uint32, t selector.Target, wrap bool) error {
	windows, err := c.backend.ListWindows(ctx.workspace)
	if err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	windows = bridge.WindowsOnDisplay(windows, ctx.display)
	srcWin, err := c.backend.WindowInfo(src)
	if err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	dst, ok := selector.SpatialWindows(windows, srcWin, t, ctx.display.Bounds, wrap)
	if !ok {
		return fmt.Errorf("focus: no window %s of the focused window", t)
	}
	c.focusWindow(dst.ID, dst.Frame)
	return nil
}

// Swap exchanges the focused window with its neighbor. Unlike focus there is
// no cross-monitor fallback. In monocle mode only the ring order changes.
func (c *Controller) Swap(target string) error {
	t, ok := selector.Parse(target)
	if !ok || t == selector.TargetCancel {
		return fmt.Errorf("swap: unknown target %q", target)
	}
	ctx, err := c.activeContext("swap")
	if err != nil {
		return err
	}
	src := c.insertionWindow()
	if src == 0 {
		return fmt.Errorf("swap: no window to swap from")
	}
	cycle := selector.ParseCycleMode(c.cfg.FocusCycle())

	h := c.spaces.Acquire(ctx.key)
	vs := h.Space

	switch vs.Mode {
	case vspace.ModeMonocle:
		defer h.Release()
		dst, derr := monocleSibling(vs, src, t, cycle != selector.CycleNone)
		if derr != nil {
			return derr
		}
		srcNode, dstNode := vs.Ring.Find(src), vs.Ring.Find(dst)
		if srcNode == nil || dstNode == nil {
			return invariantf("swap", "ring lost window 0x%x or 0x%x", src, dst)
		}
		srcNode.WindowID, dstNode.WindowID = dstNode.WindowID, srcNode.WindowID
		return nil

	case vspace.ModeBSP:
		srcLeaf := vs.Tree.FindLeaf(src)
		if srcLeaf == nil {
			h.Release()
			return fmt.Errorf("swap: window 0x%x is not tiled", src)
		}
		dst := treeNeighbor(vs.Tree, srcLeaf, t, ctx, cycle)
		if dst == nil {
			h.Release()
			return fmt.Errorf("swap: no window %s of the focused window", t)
		}

		srcLeaf.WindowID, dst.WindowID = dst.WindowID, srcLeaf.WindowID
		c.setLeafFrame(vs.Tree, srcLeaf)
		c.setLeafFrame(vs.Tree, dst)
		region := leafFrame(vs.Tree, dst)
		h.Release()
		c.focusWindow(src, region)
		return nil

	default:
		h.Release()
		return fmt.Errorf("swap: workspace is in float mode")
	}
}

func (c *Controller) setLeafFrame(root, leaf *layout.Node) {
	if err := c.backend.SetFrame(leaf.WindowID, leafFrame(root, leaf)); err != nil {
		log.Printf("failed to resize window 0x%x: %v", leaf.WindowID, err)
	}
}

// Warp moves the focused window to its neighbor's position. Siblings reduce
// to a swap; otherwise the window is detached and re-attached at the
// neighbor, honoring any preselect on it.
func (c *Controller) Warp(target string) error {
	t, ok := selector.Parse(target)
	if !ok || t == selector.TargetCancel {
		return fmt.Errorf("warp: unknown target %q", target)
	}
	ctx, err := c.activeContext("warp")
	if err != nil {
		return err
	}
	src := c.insertionWindow()
	if src == 0 {
		return fmt.Errorf("warp: no window to warp")
	}
	cycle := selector.ParseCycleMode(c.cfg.FocusCycle())

	h := c.spaces.Acquire(ctx.key)
	vs := h.Space

	if vs.Mode == vspace.ModeMonocle {
		h.Release()
		return c.Swap(target)
	}
	if vs.Mode != vspace.ModeBSP {
		h.Release()
		return fmt.Errorf("warp: workspace is in float mode")
	}

	srcLeaf := vs.Tree.FindLeaf(src)
	if srcLeaf == nil {
		h.Release()
		return fmt.Errorf("warp: window 0x%x is not tiled", src)
	}
	dst := treeNeighbor(vs.Tree, srcLeaf, t, ctx, cycle)
	if dst == nil {
		h.Release()
		return fmt.Errorf("warp: no window %s of the focused window", t)
	}

	if srcLeaf.Parent != nil && dst.Parent == srcLeaf.Parent {
		srcLeaf.WindowID, dst.WindowID = dst.WindowID, srcLeaf.WindowID
	} else {
		vs.Tree = layout.Detach(vs.Tree, src)
		vs.Tree = layout.Attach(vs.Tree, dst, src, c.cfg.SplitRatio)
	}
	vs.Tree.SetRegion(vs.RootRegion(ctx.display.Bounds), vs.Gap())
	c.applyTreeFrames(vs.Tree)

	moved := vs.Tree.FindLeaf(src)
	if moved == nil {
		h.Release()
		return invariantf("warp", "window 0x%x vanished from the tree", src)
	}
	region := leafFrame(vs.Tree, moved)
	h.Release()
	c.focusWindow(src, region)
	return nil
}

// Toggle kinds accepted by the toggle command.
const (
	ToggleFloat            = "float"
	ToggleSticky           = "sticky"
	ToggleNativeFullscreen = "native-fullscreen"
	ToggleFullscreen       = "fullscreen"
	ToggleParent           = "parent"
	ToggleSplit            = "split"
)

// Toggle flips a per-window state flag.
func (c *Controller) Toggle(kind string) error {
	ctx, err := c.activeContext("toggle " + kind)
	if err != nil {
		return err
	}
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return fmt.Errorf("toggle %s: no focused window", kind)
	}

	switch kind {
	case ToggleFloat:
		return c.toggleFloat(ctx, wid)
	case ToggleSticky:
		return c.toggleSticky(ctx, wid)
	case ToggleNativeFullscreen:
		return c.toggleNativeFullscreen(ctx, wid)
	case ToggleFullscreen:
		return c.toggleZoom(ctx, wid, true)
	case ToggleParent:
		return c.toggleZoom(ctx, wid, false)
	case ToggleSplit:
		return c.toggleSplit(ctx, wid)
	default:
		return fmt.Errorf("toggle: unknown kind %q", kind)
	}
}

func (c *Controller) toggleFloat(ctx context, wid uint32) error {
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()

	if c.floating[wid] {
		delete(c.floating, wid)
		if c.cfg.WindowFloatTop {
			c.dock.Level(wid, dock.LevelNormal)
		}
		c.tileWindow(h.Space, ctx.display, wid)
	} else {
		c.floating[wid] = true
		if c.cfg.WindowFloatTop {
			c.dock.Level(wid, dock.LevelFloating)
		}
		c.untileWindow(h.Space, ctx.display, wid)
	}
	return nil
}

func (c *Controller) toggleSticky(ctx context, wid uint32) error {
	if c.sticky[wid] {
		delete(c.sticky, wid)
		c.dock.Sticky(wid, false)
		return nil
	}
	c.sticky[wid] = true
	c.dock.Sticky(wid, true)
	// Sticky windows follow the user across workspaces and cannot stay in
	// any single tree.
	if !c.floating[wid] {
		return c.toggleFloat(ctx, wid)
	}
	return nil
}

func (c *Controller) toggleNativeFullscreen(ctx context, wid uint32) error {
	h := c.spaces.Acquire(ctx.key)

	if c.fullscreen[wid] {
		delete(c.fullscreen, wid)
		if err := c.backend.ToggleNativeFullscreen(wid); err != nil {
			h.Release()
			return fmt.Errorf("toggle native-fullscreen: %w", err)
		}
		c.tileWindow(h.Space, ctx.display, wid)
		h.Release()
		return nil
	}

	c.fullscreen[wid] = true
	c.untileWindow(h.Space, ctx.display, wid)
	h.Release()
	if err := c.backend.ToggleNativeFullscreen(wid); err != nil {
		return fmt.Errorf("toggle native-fullscreen: %w", err)
	}
	return nil
}

// toggleZoom flips the fullscreen (root) or parent zoom slot of the focused
// leaf. The two slots are mutually exclusive.
func (c *Controller) toggleZoom(ctx context, wid uint32, root bool) error {
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Mode != vspace.ModeBSP {
		return fmt.Errorf("toggle zoom: workspace is not in bsp mode")
	}
	leaf := vs.Tree.FindLeaf(wid)
	if leaf == nil {
		return fmt.Errorf("toggle zoom: window 0x%x is not tiled", wid)
	}

	if root {
		if vs.Tree.Zoom == leaf {
			vs.Tree.Zoom = nil
		} else {
			vs.Tree.Zoom = leaf
			if leaf.Parent != nil && leaf.Parent != vs.Tree && leaf.Parent.Zoom == leaf {
				leaf.Parent.Zoom = nil
			}
		}
	} else {
		if leaf.Parent == nil {
			return fmt.Errorf("toggle parent: window 0x%x is the only tiled window", wid)
		}
		if leaf.Parent.Zoom == leaf {
			leaf.Parent.Zoom = nil
		} else {
			leaf.Parent.Zoom = leaf
			if leaf.Parent != vs.Tree && vs.Tree.Zoom == leaf {
				vs.Tree.Zoom = nil
			}
		}
	}

	c.applyTreeFrames(vs.Tree)
	return nil
}

func (c *Controller) toggleSplit(ctx context, wid uint32) error {
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Mode != vspace.ModeBSP {
		return fmt.Errorf("toggle split: workspace is not in bsp mode")
	}
	leaf := vs.Tree.FindLeaf(wid)
	if leaf == nil {
		return fmt.Errorf("toggle split: window 0x%x is not tiled", wid)
	}
	parent := leaf.Parent
	if parent == nil {
		return fmt.Errorf("toggle split: window 0x%x is the only tiled window", wid)
	}

	if parent.Split == layout.SplitVertical {
		parent.Split = layout.SplitHorizontal
	} else {
		parent.Split = layout.SplitVertical
	}
	parent.SetRegion(parent.Region, vs.Gap())
	c.applyTreeFrames(vs.Tree)
	return nil
}

// AdjustRatio resizes the focused window toward the given direction by step,
// 0.1 when step is zero. The split that moves is the lowest common ancestor
// of the window and its neighbor; the offset is negated when the window sits
// in the ancestor's right subtree, so the shared edge always moves toward
// the neighbor.
func (c *Controller) AdjustRatio(target string, step float64) error {
	t, ok := selector.Parse(target)
	if !ok {
		return fmt.Errorf("adjust ratio: unknown target %q", target)
	}
	if _, ok := t.Cardinal(); !ok {
		return fmt.Errorf("adjust ratio: target %s is not a direction", t)
	}
	if step == 0 {
		step = 0.1
	}
	ctx, err := c.activeContext("adjust ratio")
	if err != nil {
		return err
	}
	src := c.insertionWindow()
	if src == 0 {
		return fmt.Errorf("adjust ratio: no window to resize")
	}

	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Mode != vspace.ModeBSP {
		return fmt.Errorf("adjust ratio: workspace is not in bsp mode")
	}
	srcLeaf := vs.Tree.FindLeaf(src)
	if srcLeaf == nil {
		return fmt.Errorf("adjust ratio: window 0x%x is not tiled", src)
	}
	dir, _ := t.Cardinal()
	dst := selector.Spatial(vs.Tree, srcLeaf, dir, ctx.display.Bounds, false)
	if dst == nil {
		return fmt.Errorf("adjust ratio: no window %s of the focused window", t)
	}

	anc := layout.LowestCommonAncestor(srcLeaf, dst)
	if anc == nil || anc.IsLeaf() {
		return invariantf("adjust ratio", "no common split for 0x%x and 0x%x", srcLeaf.WindowID, dst.WindowID)
	}
	if !layout.InLeftSubtree(anc, srcLeaf) {
		step = -step
	}

	ratio := anc.Ratio + step
	if ratio < layout.MinRatio || ratio > layout.MaxRatio {
		return fmt.Errorf("adjust ratio: %.3f outside [%.1f, %.1f]", ratio, layout.MinRatio, layout.MaxRatio)
	}
	anc.Ratio = ratio
	anc.SetRegion(anc.Region, vs.Gap())
	c.applyTreeFrames(vs.Tree)
	return nil
}

// Preselect marks the focused leaf with the split the next spawned window
// should take and paints a border hint over the chosen half. Repeating the
// same direction toggles the mark off; cancel clears unconditionally.
func (c *Controller) Preselect(target string) error {
	t, ok := selector.Parse(target)
	if !ok {
		return fmt.Errorf("preselect: unknown target %q", target)
	}
	ctx, err := c.activeContext("preselect")
	if err != nil {
		return err
	}
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return fmt.Errorf("preselect: no focused window")
	}

	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Mode != vspace.ModeBSP {
		return fmt.Errorf("preselect: workspace is not in bsp mode")
	}
	leaf := vs.Tree.FindLeaf(wid)
	if leaf == nil {
		return fmt.Errorf("preselect: window 0x%x is not tiled", wid)
	}

	if t == selector.TargetCancel {
		c.clearPreselect(leaf)
		return nil
	}
	dir, ok := t.Cardinal()
	if !ok {
		return fmt.Errorf("preselect: target %s is not a direction", t)
	}
	if ps := leaf.Preselect; ps != nil && ps.Direction == dir {
		c.clearPreselect(leaf)
		return nil
	}

	c.clearPreselect(leaf)
	ps := layout.NewPreselect(leaf, dir, c.cfg.SplitRatio)
	ps.HintWindow = c.hints.Show(ps.Region)
	leaf.Preselect = ps
	return nil
}

// FocusWindow moves input focus to a specific window by id. Unlike Focus it
// takes no direction; the switcher and external tools use it to jump straight
// to a window they picked from the query surface.
func (c *Controller) FocusWindow(wid uint32) error {
	win, err := c.backend.WindowInfo(wid)
	if err != nil {
		return fmt.Errorf("focus-window: %w", err)
	}
	ws, err := c.backend.WindowWorkspace(wid)
	if err == nil {
		active, aerr := c.backend.ActiveWorkspace()
		if aerr == nil && ws != active {
			return fmt.Errorf("focus-window: window 0x%x is on another workspace", wid)
		}
	}
	c.focusWindow(wid, win.Frame)
	return nil
}

// CloseFocused asks the focused window to close. The layout reacts to the
// destroy notification, not to this call.
func (c *Controller) CloseFocused() error {
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return fmt.Errorf("close: no focused window")
	}
	if err := c.backend.Close(wid); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// tileWindow inserts a window into the virtual space's layout and reapplies
// frames. The insertion leaf is the insertion-point window's leaf when it is
// part of the tree, otherwise the last leaf.
func (c *Controller) tileWindow(vs *vspace.VirtualSpace, display bridge.Display, wid uint32) {
	switch vs.Mode {
	case vspace.ModeBSP:
		if vs.Tree != nil && vs.Tree.FindLeaf(wid) != nil {
			return
		}
		var at *layout.Node
		if vs.Tree != nil {
			if ip := c.cfg.GetInsertionPoint(); ip != 0 {
				at = vs.Tree.FindLeaf(ip)
			}
			if at == nil {
				at = vs.Tree.LastLeaf()
			}
			if at != nil && at.Preselect != nil {
				c.hints.Hide(at.Preselect.HintWindow)
				at.Preselect.HintWindow = 0
			}
		}
		vs.Tree = layout.Attach(vs.Tree, at, wid, c.cfg.SplitRatio)
		vs.Tree.SetRegion(vs.RootRegion(display.Bounds), vs.Gap())
		c.applyTreeFrames(vs.Tree)
	case vspace.ModeMonocle:
		if vs.Ring == nil {
			vs.Ring = layout.NewRing(nil)
		}
		if vs.Ring.Find(wid) == nil {
			vs.Ring.Append(wid)
		}
		if err := c.backend.SetFrame(wid, vs.RootRegion(display.Bounds)); err != nil {
			log.Printf("failed to resize window 0x%x: %v", wid, err)
		}
	}
}

// untileWindow removes a window from the virtual space's layout and
// reapplies the remaining frames. The window's own frame is left alone.
func (c *Controller) untileWindow(vs *vspace.VirtualSpace, display bridge.Display, wid uint32) {
	switch vs.Mode {
	case vspace.ModeBSP:
		if vs.Tree == nil {
			return
		}
		if leaf := vs.Tree.FindLeaf(wid); leaf != nil {
			c.clearPreselect(leaf)
		}
		vs.Tree = layout.Detach(vs.Tree, wid)
		if vs.Tree != nil {
			vs.Tree.SetRegion(vs.RootRegion(display.Bounds), vs.Gap())
			c.applyTreeFrames(vs.Tree)
		}
	case vspace.ModeMonocle:
		if vs.Ring != nil {
			vs.Ring.Remove(wid)
		}
	}
}
