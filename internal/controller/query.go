package controller

import (
	"fmt"
	"io"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/layout"
	"github.com/planewm/planewm/internal/vspace"
)

// Queries are read-only: they write newline-delimited UTF-8 to the caller's
// sink and never mutate layout state. A lone "?" line means there is no
// focused window or active workspace to answer about.

const unknown = "?\n"

// QueryFocusedWindow writes one attribute of the focused window. Attributes:
// owner (the window class), name (the title), tag (owner and name joined),
// float (the controller's float flag as 0/1).
func (c *Controller) QueryFocusedWindow(w io.Writer, attr string) error {
	wid, err := c.backend.ActiveWindow()
	if err != nil || wid == 0 {
		_, err := io.WriteString(w, unknown)
		return err
	}
	win, err := c.backend.WindowInfo(wid)
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}

	switch attr {
	case "owner":
		_, err = fmt.Fprintf(w, "%s\n", win.Class)
	case "name":
		_, err = fmt.Fprintf(w, "%s\n", win.Title)
	case "tag":
		_, err = fmt.Fprintf(w, "%s - %s\n", win.Class, win.Title)
	case "float":
		v := 0
		if c.floating[wid] {
			v = 1
		}
		_, err = fmt.Fprintf(w, "%d\n", v)
	default:
		return fmt.Errorf("query window: unknown attribute %q", attr)
	}
	return err
}

// QueryWindow writes the details of one window by id.
func (c *Controller) QueryWindow(w io.Writer, wid uint32) error {
	win, err := c.backend.WindowInfo(wid)
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	_, err = fmt.Fprintf(w, "id: 0x%x\nowner: %s\nname: %s\nfloat: %d\nframe: %.0f %.0f %.0f %.0f\n",
		win.ID, win.Class, win.Title, boolFlag(c.floating[wid]),
		win.Frame.X, win.Frame.Y, win.Frame.Width, win.Frame.Height)
	return err
}

// QueryFocusedWorkspace writes the active workspace id, 1-indexed to match
// the command operands.
func (c *Controller) QueryFocusedWorkspace(w io.Writer) error {
	workspace, err := c.backend.ActiveWorkspace()
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	_, err = fmt.Fprintf(w, "%d\n", workspace+1)
	return err
}

// QuerySpaceMode writes the active workspace's layout mode name.
func (c *Controller) QuerySpaceMode(w io.Writer) error {
	ctx, err := c.activeContext("query mode")
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	h := c.spaces.Acquire(ctx.key)
	mode := h.Space.Mode
	h.Release()
	_, err = fmt.Fprintf(w, "%s\n", mode)
	return err
}

// QueryWindows writes one line per visible window on the active workspace.
func (c *Controller) QueryWindows(w io.Writer) error {
	ctx, err := c.activeContext("query windows")
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	windows, err := c.backend.ListWindows(ctx.workspace)
	if err != nil {
		return fmt.Errorf("query windows: %w", err)
	}
	for _, win := range windows {
		if _, err := fmt.Fprintf(w, "0x%x, %s, %s\n", win.ID, win.Class, win.Title); err != nil {
			return err
		}
	}
	return nil
}

// QueryFocusedMonitor writes the 1-indexed position of the active monitor.
func (c *Controller) QueryFocusedMonitor(w io.Writer) error {
	display, err := c.backend.ActiveDisplay()
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	displays, err := c.backend.Displays()
	if err != nil {
		return fmt.Errorf("query monitor: %w", err)
	}
	idx := displayIndex(displays, display.ID)
	if idx < 0 {
		_, err := io.WriteString(w, unknown)
		return err
	}
	_, err = fmt.Fprintf(w, "%d\n", idx+1)
	return err
}

// QueryMonitorCount writes the number of connected monitors.
func (c *Controller) QueryMonitorCount(w io.Writer) error {
	displays, err := c.backend.Displays()
	if err != nil {
		return fmt.Errorf("query monitor count: %w", err)
	}
	_, err = fmt.Fprintf(w, "%d\n", len(displays))
	return err
}

// QueryWorkspacesForMonitor writes the workspace ids reachable on the given
// 1-indexed monitor. Workspaces span every monitor here, so the answer is
// the full workspace range whenever the monitor exists.
func (c *Controller) QueryWorkspacesForMonitor(w io.Writer, monitor int) error {
	displays, err := c.backend.Displays()
	if err != nil {
		return fmt.Errorf("query workspaces: %w", err)
	}
	if monitor < 1 || monitor > len(displays) {
		_, err := io.WriteString(w, unknown)
		return err
	}
	count, err := c.backend.WorkspaceCount()
	if err != nil {
		return fmt.Errorf("query workspaces: %w", err)
	}
	for i := 0; i < count; i++ {
		if _, err := fmt.Fprintf(w, "%d\n", i+1); err != nil {
			return err
		}
	}
	return nil
}

// QueryMonitorForWorkspace writes the 1-indexed monitor showing the given
// workspace's focused content: the active monitor for the active workspace,
// the monitor of the workspace's first visible window otherwise.
func (c *Controller) QueryMonitorForWorkspace(w io.Writer, workspace int) error {
	displays, err := c.backend.Displays()
	if err != nil {
		return fmt.Errorf("query monitor: %w", err)
	}
	active, err := c.backend.ActiveWorkspace()
	if err == nil && active == workspace-1 {
		return c.QueryFocusedMonitor(w)
	}

	windows, err := c.backend.ListWindows(workspace - 1)
	if err != nil || len(windows) == 0 {
		_, err := io.WriteString(w, unknown)
		return err
	}
	for i, d := range displays {
		if len(bridge.WindowsOnDisplay(windows, d)) > 0 {
			_, err := fmt.Fprintf(w, "%d\n", i+1)
			return err
		}
	}
	_, err = io.WriteString(w, unknown)
	return err
}

// QueryTree writes the active workspace's serialized tree.
func (c *Controller) QueryTree(w io.Writer) error {
	ctx, err := c.activeContext("query tree")
	if err != nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	h := c.spaces.Acquire(ctx.key)
	defer h.Release()
	vs := h.Space
	if vs.Mode != vspace.ModeBSP || vs.Tree == nil {
		_, err := io.WriteString(w, unknown)
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", layout.Serialize(vs.Tree))
	return err
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
