package layout

import (
	"testing"

	"github.com/planewm/planewm/internal/geometry"
)

var testBounds = geometry.Region{X: 0, Y: 0, Width: 1920, Height: 1080}

func regionsEqual(a, b geometry.Region) bool {
	const eps = 1e-9
	abs := func(v float64) float64 {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(a.X-b.X) < eps && abs(a.Y-b.Y) < eps &&
		abs(a.Width-b.Width) < eps && abs(a.Height-b.Height) < eps
}

func TestCreateTree_SuccessiveOptimalSplits(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)

	// First split halves the wide root vertically; the second halves the
	// right column (960x1080, taller than wide) horizontally.
	if root.Split != SplitVertical {
		t.Fatalf("root split = %v, want vertical", root.Split)
	}
	if root.Left.WindowID != 1 {
		t.Fatalf("left leaf window = %d, want 1", root.Left.WindowID)
	}
	if root.Right.Split != SplitHorizontal {
		t.Fatalf("right split = %v, want horizontal", root.Right.Split)
	}

	want := map[uint32]geometry.Region{
		1: {X: 0, Y: 0, Width: 960, Height: 1080},
		2: {X: 960, Y: 0, Width: 960, Height: 540},
		3: {X: 960, Y: 540, Width: 960, Height: 540},
	}
	for id, w := range want {
		leaf := root.FindLeaf(id)
		if leaf == nil {
			t.Fatalf("window %d missing from tree", id)
		}
		if !regionsEqual(leaf.Region, w) {
			t.Fatalf("window %d region = %+v, want %+v", id, leaf.Region, w)
		}
	}
}

func TestSetRegion_GapSplitsEvenly(t *testing.T) {
	root := CreateTree([]uint32{1, 2}, testBounds, 10, 0.5)
	root.SetRegion(testBounds, 10)

	// width*0.5 - gap/2 = 960 - 5 = 955 on both sides, right shifted past
	// the gap.
	left := root.FindLeaf(1)
	right := root.FindLeaf(2)
	if !regionsEqual(left.Region, geometry.Region{X: 0, Y: 0, Width: 955, Height: 1080}) {
		t.Fatalf("left region = %+v", left.Region)
	}
	if !regionsEqual(right.Region, geometry.Region{X: 965, Y: 0, Width: 955, Height: 1080}) {
		t.Fatalf("right region = %+v", right.Region)
	}
}

func TestAttach_ConsumesPreselect(t *testing.T) {
	root := CreateTree([]uint32{1}, testBounds, 0, 0.5)
	leaf := root.FindLeaf(1)
	leaf.Preselect = NewPreselect(leaf, geometry.DirWest, 0.3)

	root = Attach(root, leaf, 2, 0.5)
	root.SetRegion(testBounds, 0)

	if root.Split != SplitVertical {
		t.Fatalf("split = %v, want vertical from preselect", root.Split)
	}
	if root.Ratio != 0.3 {
		t.Fatalf("ratio = %v, want preselect ratio 0.3", root.Ratio)
	}
	// West preselect spawns the new window on the near side.
	if root.Left.WindowID != 2 || root.Right.WindowID != 1 {
		t.Fatalf("children = (%d, %d), want (2, 1)", root.Left.WindowID, root.Right.WindowID)
	}
	if root.Preselect != nil {
		t.Fatal("preselect should be consumed by the attach")
	}
}

func TestAttach_EmptyTree(t *testing.T) {
	root := Attach(nil, nil, 7, 0.5)
	if root == nil || !root.IsLeaf() || root.WindowID != 7 {
		t.Fatalf("attach into empty tree produced %+v", root)
	}
}

func TestDetach_PromotesSibling(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)

	root = Detach(root, 2)
	root.SetRegion(testBounds, 0)

	// The sibling of 2 takes its parent's place: 3 now owns the whole
	// right column.
	if root.FindLeaf(2) != nil {
		t.Fatal("window 2 still present after detach")
	}
	leaf := root.FindLeaf(3)
	if !regionsEqual(leaf.Region, geometry.Region{X: 960, Y: 0, Width: 960, Height: 1080}) {
		t.Fatalf("window 3 region = %+v", leaf.Region)
	}
	if leaf.Parent != root {
		t.Fatal("promoted leaf should hang directly off the root")
	}
}

func TestDetach_LastLeafYieldsNil(t *testing.T) {
	root := CreateTree([]uint32{1}, testBounds, 0, 0.5)
	if got := Detach(root, 1); got != nil {
		t.Fatalf("detaching the only leaf returned %+v, want nil", got)
	}
}

func TestDetach_ClearsZoomIntoRemovedSubtree(t *testing.T) {
	root := CreateTree([]uint32{1, 2}, testBounds, 0, 0.5)
	root.Zoom = root.FindLeaf(2)

	root = Detach(root, 2)
	if root.Zoom != nil {
		t.Fatal("zoom pointer into detached leaf should be cleared")
	}
}

func TestRotate180(t *testing.T) {
	root := CreateTree([]uint32{1, 2}, testBounds, 0, 0.5)
	root.Ratio = 0.3

	root.Rotate(180)

	if root.Split != SplitVertical {
		t.Fatalf("180 rotation changed the axis to %v", root.Split)
	}
	if root.Left.WindowID != 2 || root.Right.WindowID != 1 {
		t.Fatal("180 rotation should swap children")
	}
	if root.Ratio != 0.7 {
		t.Fatalf("ratio = %v, want 0.7", root.Ratio)
	}
}

func TestRotate90(t *testing.T) {
	root := CreateTree([]uint32{1, 2}, testBounds, 0, 0.5)
	root.Ratio = 0.3

	root.Rotate(90)

	// A vertical split rotated 90 degrees becomes horizontal with the
	// children swapped.
	if root.Split != SplitHorizontal {
		t.Fatalf("split = %v, want horizontal", root.Split)
	}
	if root.Left.WindowID != 2 || root.Right.WindowID != 1 {
		t.Fatal("vertical node rotated 90 should swap children")
	}
	if root.Ratio != 0.7 {
		t.Fatalf("ratio = %v, want 0.7", root.Ratio)
	}
}

func TestMirror_OnlyMatchingAxisSwaps(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)

	root.Mirror(SplitVertical)

	// Root is vertical and swaps; the inner horizontal node keeps its order.
	if root.Left.IsLeaf() {
		t.Fatal("expected the internal node on the left after mirror")
	}
	if root.Right.WindowID != 1 {
		t.Fatalf("right leaf = %d, want 1", root.Right.WindowID)
	}
	inner := root.Left
	if inner.Left.WindowID != 2 || inner.Right.WindowID != 3 {
		t.Fatalf("horizontal children = (%d, %d), want (2, 3)", inner.Left.WindowID, inner.Right.WindowID)
	}
}

func TestEqualize(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)
	root.Ratio = 0.2
	root.Right.Ratio = 0.8

	root.Equalize()

	if root.Ratio != 0.5 || root.Right.Ratio != 0.5 {
		t.Fatalf("ratios = (%v, %v), want 0.5 everywhere", root.Ratio, root.Right.Ratio)
	}
}

func TestLeafTraversalOrder(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3, 4}, testBounds, 0, 0.5)

	var order []uint32
	for leaf := root.FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
		order = append(order, leaf.WindowID)
	}
	if len(order) != 4 {
		t.Fatalf("traversed %d leaves, want 4", len(order))
	}
	for i, id := range []uint32{1, 2, 3, 4} {
		if order[i] != id {
			t.Fatalf("in-order leaves = %v, want [1 2 3 4]", order)
		}
	}

	var reverse []uint32
	for leaf := root.LastLeaf(); leaf != nil; leaf = leaf.PrevLeaf() {
		reverse = append(reverse, leaf.WindowID)
	}
	for i, id := range []uint32{4, 3, 2, 1} {
		if reverse[i] != id {
			t.Fatalf("reverse leaves = %v, want [4 3 2 1]", reverse)
		}
	}
}

func TestLowestCommonAncestor(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)
	a := root.FindLeaf(1)
	b := root.FindLeaf(3)

	if got := LowestCommonAncestor(a, b); got != root {
		t.Fatalf("LCA(1, 3) = %+v, want root", got)
	}

	c := root.FindLeaf(2)
	if got := LowestCommonAncestor(b, c); got != root.Right {
		t.Fatal("LCA(3, 2) should be the inner right node")
	}

	stranger := NewLeaf(9)
	if got := LowestCommonAncestor(a, stranger); got != nil {
		t.Fatalf("LCA across trees = %+v, want nil", got)
	}
}

func TestInLeftSubtree(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)

	if !InLeftSubtree(root, root.FindLeaf(1)) {
		t.Fatal("window 1 should be in the root's left subtree")
	}
	if InLeftSubtree(root, root.FindLeaf(3)) {
		t.Fatal("window 3 should not be in the root's left subtree")
	}
}

func TestBiggestLeaf(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)

	// Window 1 holds the full left half, the other two a quarter each.
	if got := root.BiggestLeaf(); got.WindowID != 1 {
		t.Fatalf("biggest leaf = window %d, want 1", got.WindowID)
	}
}
