package controller

import (
	"log"
	"sort"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/layout"
	"github.com/planewm/planewm/internal/vspace"
)

// WindowCreated tiles a newly mapped window into the virtual space of the
// workspace and monitor it appeared on. Non-tileable and floating windows
// are left alone.
func (c *Controller) WindowCreated(wid uint32) {
	win, err := c.backend.WindowInfo(wid)
	if err != nil {
		log.Printf("window created: 0x%x vanished: %v", wid, err)
		return
	}
	if !c.tileable(win) || c.floating[wid] {
		return
	}
	workspace, err := c.backend.WindowWorkspace(wid)
	if err != nil {
		// Sticky from birth; nothing to tile.
		return
	}
	display, ok := c.displayForFrame(win)
	if !ok {
		return
	}

	h := c.spaces.Acquire(spaceKey(workspace, display.ID))
	c.tileWindow(h.Space, display, wid)
	h.Release()
}

// WindowDestroyed removes a window from every virtual space that still
// references it and forgets its controller-side flags.
func (c *Controller) WindowDestroyed(wid uint32) {
	delete(c.floating, wid)
	delete(c.sticky, wid)
	delete(c.fullscreen, wid)
	if c.cfg.GetInsertionPoint() == wid {
		c.cfg.SetInsertionPoint(0)
	}

	displays, err := c.backend.Displays()
	if err != nil {
		log.Printf("window destroyed: display list unavailable: %v", err)
		return
	}

	for _, key := range c.spaces.Keys() {
		display, ok := displayByID(displays, key&0xff)
		if !ok {
			continue
		}
		h := c.spaces.Acquire(key)
		c.untileWindow(h.Space, display, wid)
		h.Release()
	}
}

// WorkspaceActivated reconciles the virtual space of a workspace that just
// became visible: a pending deserialized tree is bound, an empty bsp space
// builds a fresh tree over the windows already there.
func (c *Controller) WorkspaceActivated(workspace int) {
	display, err := c.backend.ActiveDisplay()
	if err != nil {
		log.Printf("workspace activated: no active display: %v", err)
		return
	}
	key := spaceKey(workspace, display.ID)

	ctx := context{workspace: workspace, display: display, key: key}
	windows, err := c.tiledWindows(ctx)
	if err != nil {
		log.Printf("workspace activated: %v", err)
		return
	}
	ids := make([]uint32, len(windows))
	for i, w := range windows {
		ids[i] = w.ID
	}

	h := c.spaces.Acquire(key)
	defer h.Release()
	vs := h.Space

	switch vs.Mode {
	case vspace.ModeBSP:
		root := vs.RootRegion(display.Bounds)
		if pending := c.pending[key]; pending != nil {
			delete(c.pending, key)
			vs.Tree = bindTree(pending, ids, root, vs.Gap(), c.cfg.SplitRatio)
		} else if vs.Tree == nil {
			vs.Tree = layout.CreateTree(ids, root, vs.Gap(), c.cfg.SplitRatio)
		}
	case vspace.ModeMonocle:
		if vs.Ring == nil {
			vs.Ring = layout.NewRing(ids)
		}
	}
	c.applySpace(vs, display)
}

// WorkspaceDestroyed forgets every virtual space keyed on the removed
// workspace, across all monitors.
func (c *Controller) WorkspaceDestroyed(workspace int) {
	keys := c.spaces.Keys()
	sort.Ints(keys)
	for _, key := range keys {
		if key>>8 == workspace {
			c.spaces.Destroy(key)
		}
	}
	for key := range c.pending {
		if key>>8 == workspace {
			delete(c.pending, key)
		}
	}
}

// displayForFrame finds the monitor whose bounds contain the window's frame
// center.
func (c *Controller) displayForFrame(win bridge.Window) (bridge.Display, bool) {
	displays, err := c.backend.Displays()
	if err != nil {
		return bridge.Display{}, false
	}
	for _, d := range displays {
		if d.Bounds.Contains(win.Frame.Center()) {
			return d, true
		}
	}
	if len(displays) > 0 {
		return displays[0], true
	}
	return bridge.Display{}, false
}

func displayByID(displays []bridge.Display, id int) (bridge.Display, bool) {
	for _, d := range displays {
		if d.ID == id {
			return d, true
		}
	}
	return bridge.Display{}, false
}
