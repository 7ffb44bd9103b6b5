// Package store implements the entity store: typed dense arenas for
// each geometric shape kind plus the global id→(kind,slot) index
// (spec §4.1), the shared polyline point arena and its compaction,
// and per-layer / per-entity style records (spec §3 Layers).
package store

// Arena is a dense, append-only-with-swap-remove container, the
// same shape node.Graph.Remove uses for its node/data slices: a
// slot is freed by moving the last element into it and popping,
// so the arena never develops holes.
type Arena[T any] struct {
	items []T
}

// Len returns the number of live items.
func (a *Arena[T]) Len() int { return len(a.items) }

// Get returns a pointer to the item at slot. The caller must ensure
// slot is in range; this mirrors the arena's role as the hot-loop
// iteration target, where bounds are already established by the
// global index.
func (a *Arena[T]) Get(slot int) *T { return &a.items[slot] }

// All returns the live items in current arena order (dense,
// back-to-front render order is derived elsewhere via draw order).
func (a *Arena[T]) All() []T { return a.items }

// Append adds v to the end of the arena and returns its slot.
func (a *Arena[T]) Append(v T) int {
	a.items = append(a.items, v)
	return len(a.items) - 1
}

// RemoveSwap removes the item at slot by moving the last item into
// its place (unless slot is already last) and popping. It returns
// the slot the moved item vacated (== len-1 prior to the call) and
// whether a move actually occurred, so the caller can rewrite the
// global index entry for whichever id previously lived at that
// last slot before it's gone.
func (a *Arena[T]) RemoveSwap(slot int) (lastSlot int, moved bool) {
	lastSlot = len(a.items) - 1
	if slot < lastSlot {
		a.items[slot] = a.items[lastSlot]
		moved = true
	}
	var zero T
	a.items[lastSlot] = zero
	a.items = a.items[:lastSlot]
	return
}
