package layout

import (
	"github.com/planewm/planewm/internal/geometry"
)

// Split is the partition axis of an internal node.
type Split int

const (
	SplitNone Split = iota
	SplitVertical
	SplitHorizontal
)

func (s Split) String() string {
	switch s {
	case SplitVertical:
		return "vertical"
	case SplitHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// ParseSplit maps the textual axis names to Split values.
func ParseSplit(s string) (Split, bool) {
	switch s {
	case "vertical":
		return SplitVertical, true
	case "horizontal":
		return SplitHorizontal, true
	}
	return SplitNone, false
}

// OptimalSplit picks the axis that halves the region's longer side.
func OptimalSplit(r geometry.Region) Split {
	if r.Width > r.Height {
		return SplitVertical
	}
	return SplitHorizontal
}

const (
	// MinRatio and MaxRatio bound every internal node's split ratio.
	MinRatio = 0.1
	MaxRatio = 0.9
)

// Node is a vertex of a per-workspace BSP tree. A leaf carries exactly one
// window id and nil children; an internal node carries a split axis, a ratio
// in [MinRatio, MaxRatio] and exactly two children. Every node caches the
// region it was last laid out to.
//
// Zoom is a weak reference: the pointed-to descendant is drawn at this
// node's region instead of its own. On the root it implements fullscreen
// zoom, on any other internal node parent zoom. Detaching a subtree clears
// zoom pointers into it.
type Node struct {
	Parent *Node
	Left   *Node
	Right  *Node

	WindowID uint32
	Split    Split
	Ratio    float64
	Region   geometry.Region

	Zoom      *Node
	Preselect *Preselect
}

// NewLeaf returns a leaf node for the given window.
func NewLeaf(windowID uint32) *Node {
	return &Node{WindowID: windowID}
}

// IsLeaf reports whether n carries a window rather than a partition.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// SetRegion assigns r as n's region and recomputes every descendant region
// using the given inter-window gap.
func (n *Node) SetRegion(r geometry.Region, gap float64) {
	n.Region = r
	n.computeChildRegions(gap)
}

func (n *Node) computeChildRegions(gap float64) {
	if n.IsLeaf() {
		return
	}

	r := n.Region
	switch n.Split {
	case SplitHorizontal:
		n.Left.Region = geometry.Region{
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height*n.Ratio - gap/2,
		}
		n.Right.Region = geometry.Region{
			X:      r.X,
			Y:      r.Y + r.Height*n.Ratio + gap/2,
			Width:  r.Width,
			Height: r.Height - r.Height*n.Ratio - gap/2,
		}
	case SplitVertical:
		n.Left.Region = geometry.Region{
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width*n.Ratio - gap/2,
			Height: r.Height,
		}
		n.Right.Region = geometry.Region{
			X:      r.X + r.Width*n.Ratio + gap/2,
			Y:      r.Y,
			Width:  r.Width - r.Width*n.Ratio - gap/2,
			Height: r.Height,
		}
	}

	n.Left.computeChildRegions(gap)
	n.Right.computeChildRegions(gap)
}

// FirstLeaf returns the leftmost leaf under n.
func (n *Node) FirstLeaf() *Node {
	for !n.IsLeaf() {
		n = n.Left
	}
	return n
}

// LastLeaf returns the rightmost leaf under n.
func (n *Node) LastLeaf() *Node {
	for !n.IsLeaf() {
		n = n.Right
	}
	return n
}

// NextLeaf returns the in-order successor leaf of n, or nil at the end.
func (n *Node) NextLeaf() *Node {
	for n.Parent != nil && n.Parent.Right == n {
		n = n.Parent
	}
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Right.FirstLeaf()
}

// PrevLeaf returns the in-order predecessor leaf of n, or nil at the start.
func (n *Node) PrevLeaf() *Node {
	for n.Parent != nil && n.Parent.Left == n {
		n = n.Parent
	}
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Left.LastLeaf()
}

// Leaves returns all leaves under n in in-order traversal order.
func (n *Node) Leaves() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for leaf := n.FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
		out = append(out, leaf)
	}
	return out
}

// BiggestLeaf returns the leaf with the greatest area, or nil for an empty
// tree.
func (n *Node) BiggestLeaf() *Node {
	if n == nil {
		return nil
	}
	var best *Node
	var bestArea float64
	for leaf := n.FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
		area := leaf.Region.Width * leaf.Region.Height
		if best == nil || area > bestArea {
			best = leaf
			bestArea = area
		}
	}
	return best
}

// FindLeaf returns the leaf holding windowID, or nil.
func (n *Node) FindLeaf(windowID uint32) *Node {
	if n == nil {
		return nil
	}
	for leaf := n.FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
		if leaf.WindowID == windowID {
			return leaf
		}
	}
	return nil
}

// Root walks parent pointers up to the tree root.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// LowestCommonAncestor returns the deepest node that has both a and b in its
// subtree, or nil if they belong to different trees.
func LowestCommonAncestor(a, b *Node) *Node {
	seen := make(map[*Node]struct{})
	for n := a; n != nil; n = n.Parent {
		seen[n] = struct{}{}
	}
	for n := b; n != nil; n = n.Parent {
		if _, ok := seen[n]; ok {
			return n
		}
	}
	return nil
}

// InLeftSubtree reports whether n lies under ancestor's left child.
func InLeftSubtree(ancestor, n *Node) bool {
	for n != nil && n.Parent != ancestor {
		n = n.Parent
	}
	return n != nil && ancestor.Left == n
}

// IsDescendant reports whether n lies in the subtree rooted at root
// (inclusive).
func IsDescendant(root, n *Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Equalize sets every internal node's ratio to 0.5. Regions are not
// recomputed; callers follow up with SetRegion.
func (n *Node) Equalize() {
	if n == nil || n.IsLeaf() {
		return
	}
	n.Ratio = 0.5
	n.Left.Equalize()
	n.Right.Equalize()
}

// Rotate transforms the subtree for a rotation of 90, 180 or 270 degrees.
// For 90 and 270 the children swap on the axis that becomes inverted toward
// the rotation and every split axis flips; for 180 every node swaps children
// and flips ratio with axes unchanged.
func (n *Node) Rotate(degrees int) {
	if n == nil || n.IsLeaf() {
		return
	}

	swap := degrees == 180 ||
		(degrees == 90 && n.Split == SplitVertical) ||
		(degrees == 270 && n.Split == SplitHorizontal)

	if swap {
		n.Left, n.Right = n.Right, n.Left
		n.Ratio = 1 - n.Ratio
	}
	if degrees != 180 {
		if n.Split == SplitVertical {
			n.Split = SplitHorizontal
		} else {
			n.Split = SplitVertical
		}
	}

	n.Left.Rotate(degrees)
	n.Right.Rotate(degrees)
}

// Mirror swaps the children of every internal node whose split equals axis.
func (n *Node) Mirror(axis Split) {
	if n == nil || n.IsLeaf() {
		return
	}
	if n.Split == axis {
		n.Left, n.Right = n.Right, n.Left
	}
	n.Left.Mirror(axis)
	n.Right.Mirror(axis)
}

// Attach inserts a new leaf for windowID by splitting the leaf at. When the
// leaf carries a preselect record it is consumed for the split axis, side and
// ratio; otherwise the optimal axis for the leaf's region and defaultRatio
// are used. Returns the tree's new root.
func Attach(root, at *Node, windowID uint32, defaultRatio float64) *Node {
	if root == nil {
		return NewLeaf(windowID)
	}
	if at == nil || !at.IsLeaf() {
		at = root.FirstLeaf()
	}

	split := OptimalSplit(at.Region)
	ratio := defaultRatio
	spawnLeft := false
	if ps := at.Preselect; ps != nil {
		split = ps.Split
		ratio = ps.Ratio
		spawnLeft = ps.SpawnLeft
		at.Preselect = nil
	}

	existing := NewLeaf(at.WindowID)
	existing.Parent = at
	existing.Region = at.Region
	fresh := NewLeaf(windowID)
	fresh.Parent = at

	at.WindowID = 0
	at.Split = split
	at.Ratio = ratio
	if spawnLeft {
		at.Left, at.Right = fresh, existing
	} else {
		at.Left, at.Right = existing, fresh
	}

	return root
}

// Detach removes the leaf holding windowID and promotes its sibling into the
// parent's place. Zoom pointers into the removed subtree are cleared.
// Returns the tree's new root, nil when the last leaf was removed.
func Detach(root *Node, windowID uint32) *Node {
	leaf := root.FindLeaf(windowID)
	if leaf == nil {
		return root
	}
	if leaf == root {
		return nil
	}

	parent := leaf.Parent
	sibling := parent.Left
	if sibling == leaf {
		sibling = parent.Right
	}

	clearZoomReferences(root, parent, leaf)

	grand := parent.Parent
	sibling.Parent = grand
	sibling.Region = parent.Region
	if grand == nil {
		return sibling
	}
	if grand.Left == parent {
		grand.Left = sibling
	} else {
		grand.Right = sibling
	}
	return root
}

// clearZoomReferences drops every zoom pointer in the tree that references
// one of the nodes about to be unlinked.
func clearZoomReferences(n *Node, removed ...*Node) {
	if n == nil {
		return
	}
	for _, r := range removed {
		if n.Zoom == r {
			n.Zoom = nil
		}
	}
	clearZoomReferences(n.Left, removed...)
	clearZoomReferences(n.Right, removed...)
}

// CreateTree builds a BSP tree over windowIDs in order by successive
// optimal-split insertion, laying each intermediate tree out over bounds so
// the axis choice tracks the shrinking regions.
func CreateTree(windowIDs []uint32, bounds geometry.Region, gap, defaultRatio float64) *Node {
	var root *Node
	for _, id := range windowIDs {
		var at *Node
		if root != nil {
			at = root.LastLeaf()
		}
		root = Attach(root, at, id, defaultRatio)
		root.SetRegion(bounds, gap)
	}
	return root
}
