package controller

import (
	"fmt"
	"log"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/layout"
	"github.com/planewm/planewm/internal/vspace"
)

// Reconcile untiles windows the layouts still track but the window system no
// longer reports. Destroy notifications can be lost across daemon restarts
// and event storms; the drift shows up as phantom leaves squeezing the live
// windows. Returns how many stray windows were dropped.
func (c *Controller) Reconcile() (int, error) {
	displays, err := c.backend.Displays()
	if err != nil {
		return 0, fmt.Errorf("reconcile: %w", err)
	}
	displayByID := make(map[int]bridge.Display, len(displays))
	for _, d := range displays {
		displayByID[d.ID] = d
	}

	present := make(map[uint32]bool)
	listed := make(map[int]bool)

	removed := 0
	for _, key := range c.spaces.Keys() {
		workspace, displayID := key>>8, key&0xff
		if !listed[workspace] {
			windows, lerr := c.backend.ListWindows(workspace)
			if lerr != nil {
				log.Printf("reconcile: list workspace %d: %v", workspace, lerr)
				continue
			}
			for _, w := range windows {
				present[w.ID] = true
			}
			listed[workspace] = true
		}
		display, haveDisplay := displayByID[displayID]

		h := c.spaces.Acquire(key)
		vs := h.Space
		for _, wid := range trackedWindows(vs) {
			if present[wid] {
				continue
			}
			if haveDisplay {
				c.untileWindow(vs, display, wid)
			} else {
				// The monitor is gone too; drop the window without
				// re-applying frames against stale bounds.
				if vs.Tree != nil {
					if leaf := vs.Tree.FindLeaf(wid); leaf != nil {
						c.clearPreselect(leaf)
					}
					vs.Tree = layout.Detach(vs.Tree, wid)
				}
				if vs.Ring != nil {
					vs.Ring.Remove(wid)
				}
			}
			removed++
		}
		h.Release()
	}

	c.dropStaleFlags()
	return removed, nil
}

// trackedWindows snapshots every window id a virtual space's layout holds.
func trackedWindows(vs *vspace.VirtualSpace) []uint32 {
	var ids []uint32
	if vs.Tree != nil {
		for leaf := vs.Tree.FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
			ids = append(ids, leaf.WindowID)
		}
	}
	if vs.Ring != nil {
		ids = append(ids, vs.Ring.Windows()...)
	}
	return ids
}

// dropStaleFlags forgets float, sticky and fullscreen marks for windows the
// window system no longer knows.
func (c *Controller) dropStaleFlags() {
	for _, flags := range []map[uint32]bool{c.floating, c.sticky, c.fullscreen} {
		for wid := range flags {
			if _, err := c.backend.WindowInfo(wid); err != nil {
				delete(flags, wid)
			}
		}
	}
}
