package layout

// RingNode is one window in a monocle ring.
type RingNode struct {
	WindowID uint32
	prev     *RingNode
	next     *RingNode
}

// Prev returns the previous window in the ring, nil at the front.
func (n *RingNode) Prev() *RingNode { return n.prev }

// Next returns the next window in the ring, nil at the back.
func (n *RingNode) Next() *RingNode { return n.next }

// Ring is the monocle-mode window list: a doubly linked sequence where every
// window occupies the full workspace region and directional commands walk
// the sibling links.
type Ring struct {
	first *RingNode
	last  *RingNode
	size  int
}

// NewRing builds a ring over windowIDs in order.
func NewRing(windowIDs []uint32) *Ring {
	r := &Ring{}
	for _, id := range windowIDs {
		r.Append(id)
	}
	return r
}

// Len returns the number of windows in the ring.
func (r *Ring) Len() int { return r.size }

// First returns the front of the ring, nil when empty.
func (r *Ring) First() *RingNode { return r.first }

// Last returns the back of the ring, nil when empty.
func (r *Ring) Last() *RingNode { return r.last }

// Append adds windowID to the back of the ring.
func (r *Ring) Append(windowID uint32) *RingNode {
	n := &RingNode{WindowID: windowID, prev: r.last}
	if r.last != nil {
		r.last.next = n
	} else {
		r.first = n
	}
	r.last = n
	r.size++
	return n
}

// Find returns the node holding windowID, or nil.
func (r *Ring) Find(windowID uint32) *RingNode {
	for n := r.first; n != nil; n = n.next {
		if n.WindowID == windowID {
			return n
		}
	}
	return nil
}

// Remove unlinks the node holding windowID. Reports whether it was present.
func (r *Ring) Remove(windowID uint32) bool {
	n := r.Find(windowID)
	if n == nil {
		return false
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		r.first = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		r.last = n.prev
	}
	n.prev, n.next = nil, nil
	r.size--
	return true
}

// NextWrap returns the window after n, wrapping to the front at the end.
func (r *Ring) NextWrap(n *RingNode) *RingNode {
	if n.next != nil {
		return n.next
	}
	return r.first
}

// PrevWrap returns the window before n, wrapping to the back at the front.
func (r *Ring) PrevWrap(n *RingNode) *RingNode {
	if n.prev != nil {
		return n.prev
	}
	return r.last
}

// Windows returns the window ids front to back.
func (r *Ring) Windows() []uint32 {
	out := make([]uint32, 0, r.size)
	for n := r.first; n != nil; n = n.next {
		out = append(out, n.WindowID)
	}
	return out
}
