package layout

import (
	"github.com/planewm/planewm/internal/geometry"
)

// Preselect marks a leaf with the split the next tiling operation on it
// should perform. HintWindow holds the id of the visual hint painted over
// the preselect region, 0 when none exists.
type Preselect struct {
	Direction  geometry.Direction
	Split      Split
	SpawnLeft  bool
	Ratio      float64
	Region     geometry.Region
	HintWindow uint32
}

// NewPreselect builds the preselect record for splitting leaf toward dir.
// West and north place the new window on the near side (spawn left); east
// and south on the far side, with the ratio inverted so the new window
// still receives the configured share.
func NewPreselect(leaf *Node, dir geometry.Direction, splitRatio float64) *Preselect {
	ps := &Preselect{Direction: dir}

	switch dir {
	case geometry.DirWest:
		ps.Split = SplitVertical
		ps.SpawnLeft = true
	case geometry.DirEast:
		ps.Split = SplitVertical
	case geometry.DirNorth:
		ps.Split = SplitHorizontal
		ps.SpawnLeft = true
	case geometry.DirSouth:
		ps.Split = SplitHorizontal
	}

	if ps.SpawnLeft {
		ps.Ratio = splitRatio
	} else {
		ps.Ratio = 1 - splitRatio
	}

	ps.Region = preselectRegion(leaf.Region, ps)
	return ps
}

// preselectRegion carves the slice of r the next window would occupy.
func preselectRegion(r geometry.Region, ps *Preselect) geometry.Region {
	if ps.Split == SplitVertical {
		near := r.Width * ps.Ratio
		if ps.SpawnLeft {
			return geometry.Region{X: r.X, Y: r.Y, Width: near, Height: r.Height}
		}
		return geometry.Region{X: r.X + near, Y: r.Y, Width: r.Width - near, Height: r.Height}
	}

	near := r.Height * ps.Ratio
	if ps.SpawnLeft {
		return geometry.Region{X: r.X, Y: r.Y, Width: r.Width, Height: near}
	}
	return geometry.Region{X: r.X, Y: r.Y + near, Width: r.Width, Height: r.Height - near}
}
