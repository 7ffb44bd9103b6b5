package store

import "github.com/draftcore/engine/wire"

// Loc identifies where an entity's record lives: which kind's arena,
// and the slot within it. This is the "global index" of spec §3/§4.1,
// generalizing the id→(kind,slot) idea sketched in the teacher's
// (incomplete) engine.dataMap into a concrete, swap-remove-aware map.
type Loc struct {
	Kind wire.Kind
	Slot int
}

// Index maps entity ids to their current Loc. A plain map is the
// idiomatic choice here (not a bitmap-backed dense table): entity
// ids are sparse and monotonically increasing (spec invariant 5),
// never recycled, so there is no finite dense range to bit-pack.
type Index struct {
	locs map[uint32]Loc
}

// NewIndex returns an empty Index.
func NewIndex() *Index { return &Index{locs: make(map[uint32]Loc)} }

// Lookup returns the Loc for id, if any.
func (ix *Index) Lookup(id uint32) (Loc, bool) {
	l, ok := ix.locs[id]
	return l, ok
}

// Set records id's Loc, overwriting any previous entry.
func (ix *Index) Set(id uint32, loc Loc) { ix.locs[id] = loc }

// Delete removes id's entry.
func (ix *Index) Delete(id uint32) { delete(ix.locs, id) }

// Len returns the number of indexed ids.
func (ix *Index) Len() int { return len(ix.locs) }
