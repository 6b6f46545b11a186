package x11

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/planewm/planewm/internal/bridge"
	"github.com/planewm/planewm/internal/geometry"
)

// Monitors enumerates active monitors via XRandR. Each monitor's bounds are
// clipped against the EWMH work area so panels and docks stay uncovered.
func (c *Connection) Monitors() ([]bridge.Display, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var displays []bridge.Display
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		displays = append(displays, bridge.Display{
			ID:   i,
			Name: name,
			Bounds: geometry.Region{
				X:      float64(info.X),
				Y:      float64(info.Y),
				Width:  float64(info.Width),
				Height: float64(info.Height),
			},
		})
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	sort.Slice(displays, func(i, j int) bool { return displays[i].ID < displays[j].ID })

	if wa, ok := c.workArea(); ok {
		for i := range displays {
			displays[i].Bounds = clipToWorkArea(displays[i].Bounds, wa)
		}
	}

	return displays, nil
}

// ActiveMonitor returns the monitor containing the focused window, falling
// back to the monitor under the pointer, then the first monitor.
func (c *Connection) ActiveMonitor() (bridge.Display, error) {
	displays, err := c.Monitors()
	if err != nil {
		return bridge.Display{}, err
	}

	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if frame, ok := c.windowFrame(win); ok {
			if d, ok := displayAt(displays, frame.Center()); ok {
				return d, nil
			}
		}
	}

	if p, err := c.pointerPosition(); err == nil {
		if d, ok := displayAt(displays, p); ok {
			return d, nil
		}
	}

	return displays[0], nil
}

// workArea returns the EWMH work area of the current desktop.
func (c *Connection) workArea() (geometry.Region, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return geometry.Region{}, false
	}
	idx := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(areas) {
		idx = int(cur)
	}
	wa := areas[idx]
	return geometry.Region{
		X:      float64(wa.X),
		Y:      float64(wa.Y),
		Width:  float64(wa.Width),
		Height: float64(wa.Height),
	}, true
}

// clipToWorkArea intersects a monitor's bounds with the work area, keeping
// the monitor untouched when they do not overlap.
func clipToWorkArea(b, wa geometry.Region) geometry.Region {
	x1 := maxf(b.X, wa.X)
	y1 := maxf(b.Y, wa.Y)
	x2 := minf(b.X+b.Width, wa.X+wa.Width)
	y2 := minf(b.Y+b.Height, wa.Y+wa.Height)
	if x2 <= x1 || y2 <= y1 {
		return b
	}
	return geometry.Region{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func displayAt(displays []bridge.Display, p geometry.Point) (bridge.Display, bool) {
	for _, d := range displays {
		if d.Bounds.Contains(p) {
			return d, true
		}
	}
	return bridge.Display{}, false
}

func (c *Connection) pointerPosition() (geometry.Point, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: float64(pointer.RootX), Y: float64(pointer.RootY)}, nil
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
