package geometry

import "math"

// Region describes a rectangular area in display coordinates. The display
// coordinate space is the union of all monitor rectangles with the origin at
// the primary display's origin.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Point is a coordinate in display space.
type Point struct {
	X float64
	Y float64
}

// Direction is a compass direction used by directional commands.
type Direction int

const (
	DirNone Direction = iota
	DirNorth
	DirEast
	DirSouth
	DirWest
)

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	default:
		return "none"
	}
}

// Center returns the center point of the region.
func (r Region) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies in the closed rectangle
// [X, X+Width] x [Y, Y+Height].
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// WrapMonitorEdge adjusts b so that the directional distance metric treats
// the far edge of the monitor as adjacent to the near edge. a is the source
// center, b the candidate center; both are mutated views of the same monitor
// whose bounds are given.
func WrapMonitorEdge(bounds Region, dir Direction, a Point, b Point) Point {
	switch dir {
	case DirNorth:
		if a.Y < b.Y {
			b.Y -= bounds.Height
		}
	case DirEast:
		if a.X > b.X {
			b.X += bounds.Width
		}
	case DirSouth:
		if a.Y > b.Y {
			b.Y += bounds.Height
		}
	case DirWest:
		if a.X < b.X {
			b.X -= bounds.Width
		}
	}
	return b
}

// DirectionalScore rates candidate center b as a move target from source
// center a in the given direction. Candidates behind the source score +Inf.
// Lower is better: score = distance / cos(deltaAngle/2), so candidates close
// to the direction axis win over nearer but oblique ones.
func DirectionalScore(dir Direction, a Point, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	angle := math.Atan2(dy, dx)
	dist := math.Hypot(dx, dy)

	var delta float64
	switch dir {
	case DirNorth:
		if dy >= 0 {
			return math.Inf(1)
		}
		delta = -math.Pi/2 - angle
	case DirEast:
		if dx <= 0 {
			return math.Inf(1)
		}
		delta = -angle
	case DirSouth:
		if dy <= 0 {
			return math.Inf(1)
		}
		delta = math.Pi/2 - angle
	case DirWest:
		if dx >= 0 {
			return math.Inf(1)
		}
		delta = math.Pi - math.Abs(angle)
	default:
		return math.Inf(1)
	}

	return dist / math.Cos(delta/2)
}

// SpansOverlap reports whether the half-open spans [a1,a2) and [b1,b2)
// intersect. Used to filter directional candidates to those sharing a
// perpendicular extent with the source.
func SpansOverlap(a1, a2, b1, b2 float64) bool {
	return math.Max(a1, b1) < math.Min(a2, b2)
}
