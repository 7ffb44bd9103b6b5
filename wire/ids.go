package wire

// EntityID identifies an entity, unique within a document. Zero is
// reserved and never allocated.
type EntityID uint32

// LayerID identifies a layer, drawn from a separate 32-bit space
// than EntityID. Zero is reserved and never allocated.
type LayerID uint32

// IDAllocator hands out strictly increasing 32-bit identifiers and
// persists the watermark across snapshot save/load, matching spec
// invariant 5 (nextEntityId strictly exceeds every live id and every
// id present in any undo snapshot).
type IDAllocator struct {
	next uint32
}

// NewIDAllocator returns an allocator whose first Alloc returns 1.
func NewIDAllocator() *IDAllocator { return &IDAllocator{next: 1} }

// Alloc returns the next id and advances the watermark.
func (a *IDAllocator) Alloc() uint32 {
	id := a.next
	a.next++
	return id
}

// Peek returns the watermark that the next Alloc call will return.
func (a *IDAllocator) Peek() uint32 { return a.next }

// Observe advances the watermark so that it strictly exceeds id, if
// it does not already. Used when loading entities whose id was
// allocated by a previous session (snapshot/history load/replay).
func (a *IDAllocator) Observe(id uint32) {
	if id >= a.next {
		a.next = id + 1
	}
}

// Reset sets the watermark explicitly, e.g. from a loaded NIDX section.
func (a *IDAllocator) Reset(next uint32) { a.next = next }
