package controller

import (
	"fmt"
	"log"
	"strconv"

	"github.com/planewm/planewm/internal/bridge"
)

// resolveRelative maps prev/next/<N> operands over a 0-based index range.
// Absolute operands are 1-indexed. Without wrap, walking off either end
// reports no destination.
func resolveRelative(op string, current, count int, wrap bool) (int, error) {
	switch op {
	case "prev":
		if current > 0 {
			return current - 1, nil
		}
		if wrap {
			return count - 1, nil
		}
		return -1, nil
	case "next":
		if current < count-1 {
			return current + 1, nil
		}
		if wrap {
			return 0, nil
		}
		return -1, nil
	}
	n, err := strconv.Atoi(op)
	if err != nil {
		return -1, fmt.Errorf("unknown operand %q", op)
	}
	if n < 1 || n > count {
		return -1, nil
	}
	return n - 1, nil
}

// SendToWorkspace moves the focused window to another workspace on the same
// monitor. The window is untiled from the source, handed to the window
// system, and focus falls back to the first remaining tiled window so the
// desktop does not follow the moved window.
func (c *Controller) SendToWorkspace(op string) error {
	ctx, err := c.activeContext("send to workspace")
	if err != nil {
		return err
	}
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return fmt.Errorf("send to workspace: no focused window")
	}
	count, err := c.backend.WorkspaceCount()
	if err != nil {
		return invariantf("send to workspace", "workspace count unavailable: %v", err)
	}

	src := ctx.workspace
	if op == "prev" || op == "next" {
		src, err = c.backend.WindowWorkspace(wid)
		if err != nil {
			return fmt.Errorf("send to workspace: %w", err)
		}
	}
	dst, err := resolveRelative(op, src, count, false)
	if err != nil {
		return fmt.Errorf("send to workspace: %w", err)
	}
	if dst < 0 || dst == src {
		log.Printf("send to workspace: no destination for %q from workspace %d", op, src)
		return nil
	}

	win, err := c.backend.WindowInfo(wid)
	if err != nil {
		return fmt.Errorf("send to workspace: %w", err)
	}

	srcKey := spaceKey(src, ctx.display.ID)
	dstKey := spaceKey(dst, ctx.display.ID)
	hs, hd := c.spaces.AcquirePair(srcKey, dstKey)

	if c.tileable(win) && !c.floating[wid] {
		c.untileWindow(hs.Space, ctx.display, wid)
		c.tileWindow(hd.Space, ctx.display, wid)
	}
	hs.Release()
	hd.Release()

	if err := c.backend.MoveToWorkspace(wid, dst); err != nil {
		return fmt.Errorf("send to workspace: %w", err)
	}
	c.focusFirstRemaining(ctx)
	return nil
}

// SendToMonitor moves the focused window to another monitor, normalizing its
// frame into the destination's work area and re-tiling it there when it was
// tiled on the source.
func (c *Controller) SendToMonitor(op string) error {
	ctx, err := c.activeContext("send to monitor")
	if err != nil {
		return err
	}
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return fmt.Errorf("send to monitor: no focused window")
	}
	displays, err := c.backend.Displays()
	if err != nil {
		return invariantf("send to monitor", "display list unavailable: %v", err)
	}

	cur := displayIndex(displays, ctx.display.ID)
	if cur < 0 {
		return invariantf("send to monitor", "active display %d not listed", ctx.display.ID)
	}
	idx, err := resolveRelative(op, cur, len(displays), true)
	if err != nil {
		return fmt.Errorf("send to monitor: %w", err)
	}
	if idx < 0 || idx == cur {
		log.Printf("send to monitor: no destination for %q from monitor %d", op, cur+1)
		return nil
	}
	target := displays[idx]

	win, err := c.backend.WindowInfo(wid)
	if err != nil {
		return fmt.Errorf("send to monitor: %w", err)
	}
	frame := normalizeFrame(win.Frame, ctx.display.Bounds, target.Bounds)

	srcKey := spaceKey(ctx.workspace, ctx.display.ID)
	dstKey := spaceKey(ctx.workspace, target.ID)
	hs, hd := c.spaces.AcquirePair(srcKey, dstKey)

	if c.tileable(win) && !c.floating[wid] {
		c.untileWindow(hs.Space, ctx.display, wid)
		if err := c.backend.SetFrame(wid, frame); err != nil {
			log.Printf("failed to move window 0x%x: %v", wid, err)
		}
		c.tileWindow(hd.Space, target, wid)
	} else if err := c.backend.SetFrame(wid, frame); err != nil {
		log.Printf("failed to move window 0x%x: %v", wid, err)
	}
	hs.Release()
	hd.Release()

	c.focusWindow(wid, frame)
	return nil
}

// FocusMonitor moves focus to another monitor's first visible window, or to
// the monitor itself when it is empty. prev/next wrap when the monitor focus
// cycle (or the all-windows focus cycle) is enabled.
func (c *Controller) FocusMonitor(op string) error {
	ctx, err := c.activeContext("focus monitor")
	if err != nil {
		return err
	}
	displays, err := c.backend.Displays()
	if err != nil {
		return invariantf("focus monitor", "display list unavailable: %v", err)
	}

	cur := displayIndex(displays, ctx.display.ID)
	if cur < 0 {
		return invariantf("focus monitor", "active display %d not listed", ctx.display.ID)
	}
	wrap := c.cfg.MonitorFocusCycle || c.cfg.FocusCycle() == "all"
	idx, err := resolveRelative(op, cur, len(displays), wrap)
	if err != nil {
		return fmt.Errorf("focus monitor: %w", err)
	}
	if idx < 0 || idx == cur {
		return fmt.Errorf("focus monitor: no monitor %s of the focused monitor", op)
	}
	target := displays[idx]

	windows, err := c.backend.ListWindows(ctx.workspace)
	if err != nil {
		return fmt.Errorf("focus monitor: %w", err)
	}
	windows = bridge.WindowsOnDisplay(windows, target)
	if len(windows) == 0 {
		if err := c.backend.WarpCursor(target.Bounds.Center()); err != nil {
			log.Printf("failed to warp cursor: %v", err)
		}
		return nil
	}
	c.focusWindow(windows[0].ID, windows[0].Frame)
	return nil
}

// focusFirstRemaining hands focus to the first tiled window left on the
// active workspace after one was moved away, keeping the window system's
// focus from chasing the departed window.
func (c *Controller) focusFirstRemaining(ctx context) {
	windows, err := c.tiledWindows(ctx)
	if err != nil || len(windows) == 0 {
		return
	}
	c.focusWindow(windows[0].ID, windows[0].Frame)
}

func displayIndex(displays []bridge.Display, id int) int {
	for i, d := range displays {
		if d.ID == id {
			return i
		}
	}
	return -1
}
