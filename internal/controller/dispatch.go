package controller

import (
	"fmt"
	"io"
	"strconv"
)

// Dispatch runs one textual command against the controller, writing any
// query output to out. Commands are the wire-level names the IPC server and
// the hotkey bindings both use.
func (c *Controller) Dispatch(command string, args []string, out io.Writer) error {
	switch command {
	case "focus":
		return c.Focus(arg(args, 0))
	case "swap":
		return c.Swap(arg(args, 0))
	case "warp":
		return c.Warp(arg(args, 0))
	case "toggle":
		return c.Toggle(arg(args, 0))
	case "ratio":
		step := 0.0
		if len(args) > 1 {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("ratio: bad step %q: %w", args[1], err)
			}
			step = v
		}
		return c.AdjustRatio(arg(args, 0), step)
	case "rotate":
		deg, err := strconv.Atoi(arg(args, 0))
		if err != nil {
			return fmt.Errorf("rotate: bad degrees %q: %w", arg(args, 0), err)
		}
		return c.Rotate(deg)
	case "mirror":
		return c.Mirror(arg(args, 0))
	case "equalize":
		return c.Equalize()
	case "preselect":
		return c.Preselect(arg(args, 0))
	case "grid":
		return c.Grid(arg(args, 0))
	case "padding":
		return c.AdjustPadding(arg(args, 0))
	case "gap":
		return c.AdjustGap(arg(args, 0))
	case "offset":
		return c.ToggleOffset()
	case "layout":
		return c.ActivateLayout(arg(args, 0))
	case "serialize":
		return c.SerializeTree(arg(args, 0))
	case "deserialize":
		return c.DeserializeTree(arg(args, 0))
	case "snapshot":
		return c.Snapshot(args, out)
	case "send-to-desktop":
		return c.SendToWorkspace(arg(args, 0))
	case "send-to-monitor":
		return c.SendToMonitor(arg(args, 0))
	case "focus-monitor":
		return c.FocusMonitor(arg(args, 0))
	case "focus-window":
		wid, err := strconv.ParseUint(arg(args, 0), 0, 32)
		if err != nil {
			return fmt.Errorf("focus-window: bad window id %q", arg(args, 0))
		}
		return c.FocusWindow(uint32(wid))
	case "close":
		return c.CloseFocused()
	case "query":
		return c.dispatchQuery(args, out)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *Controller) dispatchQuery(args []string, out io.Writer) error {
	switch arg(args, 0) {
	case "window":
		if len(args) > 1 {
			if wid, err := strconv.ParseUint(args[1], 0, 32); err == nil {
				return c.QueryWindow(out, uint32(wid))
			}
			return c.QueryFocusedWindow(out, args[1])
		}
		return fmt.Errorf("query window: missing attribute or id")
	case "desktop":
		return c.QueryFocusedWorkspace(out)
	case "mode":
		return c.QuerySpaceMode(out)
	case "windows":
		return c.QueryWindows(out)
	case "monitor":
		return c.QueryFocusedMonitor(out)
	case "monitor-count":
		return c.QueryMonitorCount(out)
	case "desktops-for-monitor":
		n, err := strconv.Atoi(arg(args, 1))
		if err != nil {
			return fmt.Errorf("query desktops-for-monitor: bad monitor %q", arg(args, 1))
		}
		return c.QueryWorkspacesForMonitor(out, n)
	case "monitor-for-desktop":
		n, err := strconv.Atoi(arg(args, 1))
		if err != nil {
			return fmt.Errorf("query monitor-for-desktop: bad desktop %q", arg(args, 1))
		}
		return c.QueryMonitorForWorkspace(out, n)
	case "tree":
		return c.QueryTree(out)
	default:
		return fmt.Errorf("unknown query %q", arg(args, 0))
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
