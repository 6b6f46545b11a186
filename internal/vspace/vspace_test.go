package vspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planewm/planewm/internal/geometry"
)

func testRegistry() *Registry {
	return NewRegistry(ModeBSP, Offset{Top: 20, Gap: 10})
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"bsp", "monocle", "float"} {
		mode, ok := ParseMode(s)
		require.True(t, ok, "ParseMode(%q)", s)
		require.Equal(t, s, mode.String())
	}
	_, ok := ParseMode("stacking")
	require.False(t, ok)
}

func TestAcquire_CreatesWithDefaults(t *testing.T) {
	r := testRegistry()

	h := r.Acquire(3)
	defer h.Release()

	require.Equal(t, 3, h.Space.ID)
	require.Equal(t, ModeBSP, h.Space.Mode)
	require.NotNil(t, h.Space.Offset)
	require.Equal(t, 20.0, h.Space.Offset.Top)
	require.Equal(t, 10.0, h.Space.Gap())
}

func TestAcquire_SameSpaceAcrossAcquires(t *testing.T) {
	r := testRegistry()

	h := r.Acquire(1)
	h.Space.Mode = ModeMonocle
	h.Release()

	h = r.Acquire(1)
	defer h.Release()
	require.Equal(t, ModeMonocle, h.Space.Mode)
}

func TestRelease_Idempotent(t *testing.T) {
	r := testRegistry()

	h := r.Acquire(1)
	h.Release()
	h.Release()

	// The lock must actually be free again.
	h2 := r.Acquire(1)
	h2.Release()
}

func TestAcquirePair_LocksBoth(t *testing.T) {
	r := testRegistry()

	ha, hb := r.AcquirePair(5, 2)
	require.Equal(t, 5, ha.Space.ID)
	require.Equal(t, 2, hb.Space.ID)
	ha.Release()
	hb.Release()

	// Reverse argument order locks the same pair without deadlock.
	ha, hb = r.AcquirePair(2, 5)
	require.Equal(t, 2, ha.Space.ID)
	require.Equal(t, 5, hb.Space.ID)
	ha.Release()
	hb.Release()
}

func TestDestroyAndKnown(t *testing.T) {
	r := testRegistry()

	r.Acquire(1).Release()
	r.Acquire(2).Release()
	require.True(t, r.Known(1))
	require.ElementsMatch(t, []int{1, 2}, r.Keys())

	r.Destroy(1)
	require.False(t, r.Known(1))
	require.ElementsMatch(t, []int{2}, r.Keys())
}

func TestRootRegion(t *testing.T) {
	bounds := geometry.Region{X: 0, Y: 0, Width: 1920, Height: 1080}
	vs := &VirtualSpace{DefaultOffset: Offset{Top: 30, Bottom: 10, Left: 5, Right: 5, Gap: 8}}

	// Without an active offset the bounds pass through untouched.
	require.Equal(t, bounds, vs.RootRegion(bounds))
	require.Equal(t, 0.0, vs.Gap())

	vs.Offset = &vs.DefaultOffset
	got := vs.RootRegion(bounds)
	require.Equal(t, geometry.Region{X: 5, Y: 30, Width: 1910, Height: 1040}, got)
	require.Equal(t, 8.0, vs.Gap())
}
