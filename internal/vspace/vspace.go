package vspace

import (
	"sync"

	"github.com/planewm/planewm/internal/geometry"
	"github.com/planewm/planewm/internal/layout"
)

// Mode selects how a workspace arranges its windows.
type Mode int

const (
	ModeBSP Mode = iota
	ModeMonocle
	ModeFloat
)

func (m Mode) String() string {
	switch m {
	case ModeBSP:
		return "bsp"
	case ModeMonocle:
		return "monocle"
	case ModeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParseMode maps the textual layout names to Mode values.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "bsp":
		return ModeBSP, true
	case "monocle":
		return ModeMonocle, true
	case "float":
		return ModeFloat, true
	}
	return ModeFloat, false
}

// Offset is the inset applied to a workspace's display region before tiling,
// plus the inter-window gap used at every split.
type Offset struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
	Gap    float64
}

// VirtualSpace is the controller's per-workspace state. Tree is used in bsp
// mode, Ring in monocle mode; float mode uses neither. Offset is nil when
// the workspace runs without inset and otherwise points at DefaultOffset.
type VirtualSpace struct {
	ID   int
	Mode Mode

	Tree *layout.Node
	Ring *layout.Ring

	Offset        *Offset
	DefaultOffset Offset
}

// RootRegion shrinks the workspace display bounds by the active offset.
func (vs *VirtualSpace) RootRegion(bounds geometry.Region) geometry.Region {
	off := vs.Offset
	if off == nil {
		return bounds
	}
	return geometry.Region{
		X:      bounds.X + off.Left,
		Y:      bounds.Y + off.Top,
		Width:  bounds.Width - off.Left - off.Right,
		Height: bounds.Height - off.Top - off.Bottom,
	}
}

// Gap returns the inter-window spacing for the active offset.
func (vs *VirtualSpace) Gap() float64 {
	if vs.Offset == nil {
		return 0
	}
	return vs.Offset.Gap
}

type entry struct {
	mu sync.Mutex
	vs *VirtualSpace
}

// Registry owns every workspace's virtual space. Spaces are created lazily
// on first acquire with the registry's defaults and destroyed when the
// workspace is removed.
type Registry struct {
	mu            sync.Mutex
	spaces        map[int]*entry
	defaultMode   Mode
	defaultOffset Offset
}

// NewRegistry returns a registry creating spaces in the given default mode
// with the given default offset.
func NewRegistry(defaultMode Mode, defaultOffset Offset) *Registry {
	return &Registry{
		spaces:        make(map[int]*entry),
		defaultMode:   defaultMode,
		defaultOffset: defaultOffset,
	}
}

// Handle is an exclusive reference to one workspace's virtual space. The
// per-workspace lock is held from Acquire until Release.
type Handle struct {
	Space *VirtualSpace

	entry    *entry
	released bool
}

// Acquire locks the virtual space for workspaceID, creating it if the
// workspace has not been seen before. Callers must Release on every path.
func (r *Registry) Acquire(workspaceID int) *Handle {
	r.mu.Lock()
	e, ok := r.spaces[workspaceID]
	if !ok {
		e = &entry{vs: &VirtualSpace{
			ID:            workspaceID,
			Mode:          r.defaultMode,
			DefaultOffset: r.defaultOffset,
		}}
		e.vs.Offset = &e.vs.DefaultOffset
		r.spaces[workspaceID] = e
	}
	r.mu.Unlock()

	e.mu.Lock()
	return &Handle{Space: e.vs, entry: e}
}

// AcquirePair locks two distinct workspaces in ascending id order so that
// cross-workspace commands cannot deadlock against each other.
func (r *Registry) AcquirePair(a, b int) (*Handle, *Handle) {
	if a < b {
		ha := r.Acquire(a)
		hb := r.Acquire(b)
		return ha, hb
	}
	hb := r.Acquire(b)
	ha := r.Acquire(a)
	return ha, hb
}

// Release unlocks the virtual space. Safe to call more than once.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.entry.mu.Unlock()
}

// Destroy drops the virtual space for a removed workspace. A holder of the
// space's handle keeps its reference; the registry simply forgets it.
func (r *Registry) Destroy(workspaceID int) {
	r.mu.Lock()
	delete(r.spaces, workspaceID)
	r.mu.Unlock()
}

// Keys returns a snapshot of every workspace id with a virtual space.
func (r *Registry) Keys() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]int, 0, len(r.spaces))
	for id := range r.spaces {
		keys = append(keys, id)
	}
	return keys
}

// Known reports whether a virtual space exists for workspaceID.
func (r *Registry) Known(workspaceID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.spaces[workspaceID]
	return ok
}
