package controller

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/planewm/planewm/internal/geometry"
	"github.com/planewm/planewm/internal/layout"
	"github.com/planewm/planewm/internal/vspace"
)

// Rotate turns the active workspace's tree by 90, 180 or 270 degrees.
func (c *Controller) Rotate(degrees int) error {
	switch degrees {
	case 90, 180, 270:
	default:
		return fmt.Errorf("rotate: %d is not one of 90, 180, 270", degrees)
	}
	return c.transformTree("rotate", func(root *layout.Node) {
		root.Rotate(degrees)
	})
}

// Mirror flips the active workspace's tree along the given split axis.
func (c *Controller) Mirror(axis string) error {
	split, ok := layout.ParseSplit(axis)
	if !ok {
		return fmt.Errorf("mirror: unknown axis %q", axis)
	}
	return c.transformTree("mirror", func(root *layout.Node) {
		root.Mirror(split)
	})
}

// Equalize resets every split on the active workspace to an even ratio.
func (c *Controller) Equalize() error {
	return c.transformTree("equalize", func(root *layout.Node) {
		root.Equalize()
	})
}

func (c *Controller) transformTree(op string, transform func(*layout.Node)) error {
	ctx, err := c.activeContext(op)
	if err != nil {
		return err
	}
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Mode != vspace.ModeBSP || vs.Tree == nil {
		return fmt.Errorf("%s: workspace has no bsp tree", op)
	}
	transform(vs.Tree)
	vs.Tree.SetRegion(vs.RootRegion(ctx.display.Bounds), vs.Gap())
	c.applyTreeFrames(vs.Tree)
	return nil
}

// ActivateLayout switches the active workspace to the given mode. The old
// tree or ring is dropped; bsp rebuilds from the visible windows unless a
// deserialized tree is pending for the workspace, in which case that tree's
// structure is bound to the visible windows instead.
func (c *Controller) ActivateLayout(mode string) error {
	m, ok := vspace.ParseMode(mode)
	if !ok {
		return fmt.Errorf("layout: unknown mode %q", mode)
	}
	ctx, err := c.activeContext("layout")
	if err != nil {
		return err
	}
	windows, err := c.tiledWindows(ctx)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	ids := make([]uint32, len(windows))
	for i, w := range windows {
		ids[i] = w.ID
	}

	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Tree != nil {
		for _, leaf := range vs.Tree.Leaves() {
			c.clearPreselect(leaf)
		}
	}
	vs.Tree, vs.Ring = nil, nil
	vs.Mode = m

	switch m {
	case vspace.ModeBSP:
		root := vs.RootRegion(ctx.display.Bounds)
		if pending := c.pending[ctx.key]; pending != nil {
			delete(c.pending, ctx.key)
			vs.Tree = bindTree(pending, ids, root, vs.Gap(), c.cfg.SplitRatio)
		} else {
			vs.Tree = layout.CreateTree(ids, root, vs.Gap(), c.cfg.SplitRatio)
		}
	case vspace.ModeMonocle:
		vs.Ring = layout.NewRing(ids)
	}

	c.applySpace(vs, ctx.display)
	return nil
}

// bindTree populates a deserialized tree skeleton with window ids in-order.
// Surplus windows split off the last leaf; surplus leaves collapse.
func bindTree(skeleton *layout.Node, ids []uint32, bounds geometry.Region, gap, ratio float64) *layout.Node {
	if len(ids) == 0 {
		return nil
	}

	leaves := skeleton.Leaves()
	for i, leaf := range leaves {
		if i < len(ids) {
			leaf.WindowID = ids[i]
		} else {
			leaf.WindowID = 0
		}
	}

	root := skeleton
	for root.FindLeaf(0) != nil {
		root = layout.Detach(root, 0)
	}
	root.SetRegion(bounds, gap)

	for i := len(leaves); i < len(ids); i++ {
		root = layout.Attach(root, root.LastLeaf(), ids[i], ratio)
		root.SetRegion(bounds, gap)
	}
	return root
}

// SerializeTree writes the active workspace's tree to path. I/O failure is
// logged and leaves the tree untouched.
func (c *Controller) SerializeTree(path string) error {
	ctx, err := c.activeContext("serialize")
	if err != nil {
		return err
	}
	h := c.spaces.Acquire(ctx.key)
	vs := h.Space
	if vs.Mode != vspace.ModeBSP || vs.Tree == nil {
		h.Release()
		return fmt.Errorf("serialize: workspace has no bsp tree")
	}
	data := layout.Serialize(vs.Tree)
	h.Release()

	if err := os.WriteFile(path, []byte(data+"\n"), 0644); err != nil {
		log.Printf("serialize: %v", err)
		return nil
	}
	return nil
}

// DeserializeTree loads a tree description from path. On a bsp workspace the
// loaded structure is bound to the visible windows immediately; otherwise it
// is held pending until the next bsp activation. I/O and parse failures are
// logged and leave the current tree untouched.
func (c *Controller) DeserializeTree(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("deserialize: %v", err)
		return nil
	}
	skeleton, err := layout.Deserialize(string(data))
	if err != nil {
		log.Printf("deserialize: %s: %v", path, err)
		return nil
	}

	ctx, err := c.activeContext("deserialize")
	if err != nil {
		return err
	}
	windows, err := c.tiledWindows(ctx)
	if err != nil {
		return fmt.Errorf("deserialize: %w", err)
	}
	ids := make([]uint32, len(windows))
	for i, w := range windows {
		ids[i] = w.ID
	}

	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Mode != vspace.ModeBSP {
		c.pending[ctx.key] = skeleton
		return nil
	}
	if vs.Tree != nil {
		for _, leaf := range vs.Tree.Leaves() {
			c.clearPreselect(leaf)
		}
	}
	vs.Tree = bindTree(skeleton, ids, vs.RootRegion(ctx.display.Bounds), vs.Gap(), c.cfg.SplitRatio)
	c.applySpace(vs, ctx.display)
	return nil
}

// AdjustPadding grows or shrinks the workspace's outer offsets by the
// configured step. An adjustment that would take any edge negative is
// rejected whole.
func (c *Controller) AdjustPadding(op string) error {
	step, err := offsetStep(op, c.cfg.PaddingStep)
	if err != nil {
		return fmt.Errorf("adjust padding: %w", err)
	}
	return c.adjustOffset("adjust padding", func(off *vspace.Offset) bool {
		if off.Top+step < 0 || off.Bottom+step < 0 || off.Left+step < 0 || off.Right+step < 0 {
			return false
		}
		off.Top += step
		off.Bottom += step
		off.Left += step
		off.Right += step
		return true
	})
}

// AdjustGap grows or shrinks the workspace's inter-window gap by the
// configured step. An adjustment that would take the gap below zero is
// rejected.
func (c *Controller) AdjustGap(op string) error {
	step, err := offsetStep(op, c.cfg.GapStep)
	if err != nil {
		return fmt.Errorf("adjust gap: %w", err)
	}
	return c.adjustOffset("adjust gap", func(off *vspace.Offset) bool {
		if off.Gap+step < 0 {
			return false
		}
		off.Gap += step
		return true
	})
}

func offsetStep(op string, step float64) (float64, error) {
	switch op {
	case "inc":
		return step, nil
	case "dec":
		return -step, nil
	}
	return 0, fmt.Errorf("unknown operand %q", op)
}

func (c *Controller) adjustOffset(op string, apply func(*vspace.Offset) bool) error {
	ctx, err := c.activeContext(op)
	if err != nil {
		return err
	}
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if !apply(&vs.DefaultOffset) {
		return fmt.Errorf("%s: offset would go negative", op)
	}
	if vs.Offset != nil {
		c.applySpace(vs, ctx.display)
	}
	return nil
}

// ToggleOffset switches the workspace between its configured inset and none.
func (c *Controller) ToggleOffset() error {
	ctx, err := c.activeContext("toggle offset")
	if err != nil {
		return err
	}
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space

	if vs.Offset == nil {
		vs.Offset = &vs.DefaultOffset
	} else {
		vs.Offset = nil
	}
	c.applySpace(vs, ctx.display)
	return nil
}

// Grid places a floating window on a cell range of an R-rows by C-columns
// grid over the workspace region. The operand is "rows:cols:x:y:w:h" with a
// zero-based cell origin; out-of-range positions and extents clamp to the
// grid.
func (c *Controller) Grid(operand string) error {
	parts := strings.Split(operand, ":")
	if len(parts) != 6 {
		return fmt.Errorf("grid: operand %q is not rows:cols:x:y:w:h", operand)
	}
	nums := make([]int, 6)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("grid: bad number %q: %w", p, err)
		}
		nums[i] = n
	}
	rows, cols, x, y, w, gh := nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]
	if rows < 1 || cols < 1 {
		return fmt.Errorf("grid: %dx%d has no cells", rows, cols)
	}

	ctx, err := c.activeContext("grid")
	if err != nil {
		return err
	}
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return fmt.Errorf("grid: no focused window")
	}

	h := c.spaces.Acquire(ctx.key)
	vs := h.Space
	if vs.Mode != vspace.ModeFloat && !c.floating[wid] {
		h.Release()
		return fmt.Errorf("grid: window 0x%x is not floating", wid)
	}
	region := vs.RootRegion(ctx.display.Bounds)
	h.Release()

	x = clampInt(x, 0, cols-1)
	y = clampInt(y, 0, rows-1)
	w = clampInt(w, 1, cols-x)
	gh = clampInt(gh, 1, rows-y)

	cellW := region.Width / float64(cols)
	cellH := region.Height / float64(rows)
	frame := geometry.Region{
		X:      region.X + cellW*float64(x),
		Y:      region.Y + cellH*float64(y),
		Width:  cellW * float64(w),
		Height: cellH * float64(gh),
	}
	if err := c.backend.SetFrame(wid, frame); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
