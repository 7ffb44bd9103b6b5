package store

import (
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/wire"
)

// EntityStore owns the per-kind arenas, the global index, the
// shared polyline point arena, layers and per-entity style
// overrides (spec §3, §4.1). It does not know about draw order,
// selection, history or events — those are coordinated by the
// engine façade, which calls EntityStore methods and then updates
// its own draw-order/selection/history/event bookkeeping.
type EntityStore struct {
	Index *Index

	rects     Arena[Rect]
	lines     Arena[Line]
	polylines Arena[Polyline]
	circles   Arena[Circle]
	polygons  Arena[Polygon]
	arrows    Arena[Arrow]
	Points    PointArena

	layers     []Layer
	layerSlot  map[uint32]int
	nextLayer  uint32
	overrides  map[uint32]StyleOverride
}

// New returns an empty EntityStore.
func New() *EntityStore {
	return &EntityStore{
		Index:     NewIndex(),
		layerSlot: make(map[uint32]int),
		nextLayer: 1,
		overrides: make(map[uint32]StyleOverride),
	}
}

// kindStable ensures that, if id currently exists with a kind other
// than want, its existing record is fully deleted first (spec §4.1
// "kind stability"). It returns true if a prior record of a
// different kind was removed.
func (s *EntityStore) kindStable(id uint32, want wire.Kind) bool {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind == want {
		return false
	}
	s.DeleteEntity(id)
	return true
}

// --- Rect ---

// UpsertRect creates or updates a Rect at id.
func (s *EntityStore) UpsertRect(id uint32, r Rect) int {
	s.kindStable(id, wire.KindRect)
	r.common.ID = id
	if loc, ok := s.Index.Lookup(id); ok {
		*s.rects.Get(loc.Slot) = r
		return loc.Slot
	}
	slot := s.rects.Append(r)
	s.Index.Set(id, Loc{Kind: wire.KindRect, Slot: slot})
	return slot
}

// FindRect returns the Rect stored at id, if any.
func (s *EntityStore) FindRect(id uint32) (*Rect, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind != wire.KindRect {
		return nil, false
	}
	return s.rects.Get(loc.Slot), true
}

// Rects returns all live rects in dense arena order.
func (s *EntityStore) Rects() []Rect { return s.rects.All() }

// --- Line ---

func (s *EntityStore) UpsertLine(id uint32, l Line) int {
	s.kindStable(id, wire.KindLine)
	l.common.ID = id
	if loc, ok := s.Index.Lookup(id); ok {
		*s.lines.Get(loc.Slot) = l
		return loc.Slot
	}
	slot := s.lines.Append(l)
	s.Index.Set(id, Loc{Kind: wire.KindLine, Slot: slot})
	return slot
}

func (s *EntityStore) FindLine(id uint32) (*Line, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind != wire.KindLine {
		return nil, false
	}
	return s.lines.Get(loc.Slot), true
}

func (s *EntityStore) Lines() []Line { return s.lines.All() }

// --- Polyline ---

// UpsertPolyline creates or updates a Polyline at id, appending pts
// to the shared point arena. On update, the previous [offset,count)
// range is left in place (orphaned) until CompactPolylinePoints runs.
func (s *EntityStore) UpsertPolyline(id uint32, pl Polyline, pts []geom.Vec2) int {
	s.kindStable(id, wire.KindPolyline)
	pl.common.ID = id
	pl.Offset = s.Points.Append(pts)
	pl.Count = len(pts)
	if loc, ok := s.Index.Lookup(id); ok {
		*s.polylines.Get(loc.Slot) = pl
		return loc.Slot
	}
	slot := s.polylines.Append(pl)
	s.Index.Set(id, Loc{Kind: wire.KindPolyline, Slot: slot})
	return slot
}

func (s *EntityStore) FindPolyline(id uint32) (*Polyline, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind != wire.KindPolyline {
		return nil, false
	}
	return s.polylines.Get(loc.Slot), true
}

func (s *EntityStore) Polylines() []Polyline { return s.polylines.All() }

// CompactPolylinePoints rebuilds the shared point arena, dropping
// orphaned ranges (spec §4.1 "Polyline compaction").
func (s *EntityStore) CompactPolylinePoints() {
	CompactPolylinePoints(&s.Points, s.polylines.items)
}

// --- Circle ---

func (s *EntityStore) UpsertCircle(id uint32, c Circle) int {
	s.kindStable(id, wire.KindCircle)
	c.common.ID = id
	if loc, ok := s.Index.Lookup(id); ok {
		*s.circles.Get(loc.Slot) = c
		return loc.Slot
	}
	slot := s.circles.Append(c)
	s.Index.Set(id, Loc{Kind: wire.KindCircle, Slot: slot})
	return slot
}

func (s *EntityStore) FindCircle(id uint32) (*Circle, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind != wire.KindCircle {
		return nil, false
	}
	return s.circles.Get(loc.Slot), true
}

func (s *EntityStore) Circles() []Circle { return s.circles.All() }

// --- Polygon ---

func (s *EntityStore) UpsertPolygon(id uint32, p Polygon) int {
	s.kindStable(id, wire.KindPolygon)
	p.common.ID = id
	if loc, ok := s.Index.Lookup(id); ok {
		*s.polygons.Get(loc.Slot) = p
		return loc.Slot
	}
	slot := s.polygons.Append(p)
	s.Index.Set(id, Loc{Kind: wire.KindPolygon, Slot: slot})
	return slot
}

func (s *EntityStore) FindPolygon(id uint32) (*Polygon, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind != wire.KindPolygon {
		return nil, false
	}
	return s.polygons.Get(loc.Slot), true
}

func (s *EntityStore) Polygons() []Polygon { return s.polygons.All() }

// --- Arrow ---

func (s *EntityStore) UpsertArrow(id uint32, a Arrow) int {
	s.kindStable(id, wire.KindArrow)
	a.common.ID = id
	if loc, ok := s.Index.Lookup(id); ok {
		*s.arrows.Get(loc.Slot) = a
		return loc.Slot
	}
	slot := s.arrows.Append(a)
	s.Index.Set(id, Loc{Kind: wire.KindArrow, Slot: slot})
	return slot
}

func (s *EntityStore) FindArrow(id uint32) (*Arrow, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok || loc.Kind != wire.KindArrow {
		return nil, false
	}
	return s.arrows.Get(loc.Slot), true
}

func (s *EntityStore) Arrows() []Arrow { return s.arrows.All() }

// --- Deletion ---

// DeleteEntity removes the geometric entity at id, if any, using
// swap-remove (spec §4.1 Algorithm). It returns whether anything
// was deleted. It does not touch the text subsystem; text entities
// are removed via the text package's own DeleteText.
func (s *EntityStore) DeleteEntity(id uint32) bool {
	loc, ok := s.Index.Lookup(id)
	if !ok {
		return false
	}
	var movedID uint32
	var lastSlot int
	var moved bool
	switch loc.Kind {
	case wire.KindRect:
		lastSlot, moved = s.rects.RemoveSwap(loc.Slot)
		if moved {
			movedID = s.rects.Get(loc.Slot).ID
		}
	case wire.KindLine:
		lastSlot, moved = s.lines.RemoveSwap(loc.Slot)
		if moved {
			movedID = s.lines.Get(loc.Slot).ID
		}
	case wire.KindPolyline:
		lastSlot, moved = s.polylines.RemoveSwap(loc.Slot)
		if moved {
			movedID = s.polylines.Get(loc.Slot).ID
		}
	case wire.KindCircle:
		lastSlot, moved = s.circles.RemoveSwap(loc.Slot)
		if moved {
			movedID = s.circles.Get(loc.Slot).ID
		}
	case wire.KindPolygon:
		lastSlot, moved = s.polygons.RemoveSwap(loc.Slot)
		if moved {
			movedID = s.polygons.Get(loc.Slot).ID
		}
	case wire.KindArrow:
		lastSlot, moved = s.arrows.RemoveSwap(loc.Slot)
		if moved {
			movedID = s.arrows.Get(loc.Slot).ID
		}
	default:
		return false
	}
	_ = lastSlot
	s.Index.Delete(id)
	if moved {
		// Invariant 2: rewrite the moved entity's index entry
		// before it would otherwise be considered lost.
		s.Index.Set(movedID, loc)
	}
	delete(s.overrides, id)
	return true
}

// Kind returns the kind of the geometric entity at id, if any.
func (s *EntityStore) Kind(id uint32) (wire.Kind, bool) {
	loc, ok := s.Index.Lookup(id)
	if !ok {
		return 0, false
	}
	return loc.Kind, true
}

// --- Style overrides ---

// SetStyleOverride sets the per-entity style sidecar for id.
func (s *EntityStore) SetStyleOverride(id uint32, o StyleOverride) { s.overrides[id] = o }

// StyleOverrideOf returns the override for id, if any.
func (s *EntityStore) StyleOverrideOf(id uint32) (StyleOverride, bool) {
	o, ok := s.overrides[id]
	return o, ok
}

// AllOverrides returns every (id, override) pair, used by the
// snapshot codec's STYL section.
func (s *EntityStore) AllOverrides() map[uint32]StyleOverride { return s.overrides }

// --- Layers ---

// UpsertLayer creates or updates a layer, assigning an id if id is 0.
func (s *EntityStore) UpsertLayer(l Layer) uint32 {
	if l.ID == 0 {
		l.ID = s.nextLayer
		s.nextLayer++
	} else if l.ID >= s.nextLayer {
		s.nextLayer = l.ID + 1
	}
	if slot, ok := s.layerSlot[l.ID]; ok {
		s.layers[slot] = l
		return l.ID
	}
	s.layerSlot[l.ID] = len(s.layers)
	s.layers = append(s.layers, l)
	return l.ID
}

// FindLayer returns the layer with the given id, if any.
func (s *EntityStore) FindLayer(id uint32) (*Layer, bool) {
	slot, ok := s.layerSlot[id]
	if !ok {
		return nil, false
	}
	return &s.layers[slot], true
}

// Layers returns all layers in arena order.
func (s *EntityStore) Layers() []Layer { return s.layers }

// DeleteLayer removes a layer by id.
func (s *EntityStore) DeleteLayer(id uint32) bool {
	slot, ok := s.layerSlot[id]
	if !ok {
		return false
	}
	last := len(s.layers) - 1
	if slot < last {
		s.layers[slot] = s.layers[last]
		s.layerSlot[s.layers[slot].ID] = slot
	}
	s.layers = s.layers[:last]
	delete(s.layerSlot, id)
	return true
}

// LoadRect appends r verbatim (preserving r.ID) and indexes it,
// without the kind-stability check upsertX performs — used only by
// the snapshot loader, which restores a document from a state already
// known to satisfy every store invariant.
func (s *EntityStore) LoadRect(r Rect) {
	slot := s.rects.Append(r)
	s.Index.Set(r.ID, Loc{Kind: wire.KindRect, Slot: slot})
}

// LoadLine is LoadRect's Line counterpart.
func (s *EntityStore) LoadLine(l Line) {
	slot := s.lines.Append(l)
	s.Index.Set(l.ID, Loc{Kind: wire.KindLine, Slot: slot})
}

// LoadPolyline appends pl verbatim, including its Offset/Count as
// loaded, since the snapshot's point arena is restored separately
// and in lockstep (see PointArena.SetAll).
func (s *EntityStore) LoadPolyline(pl Polyline) {
	slot := s.polylines.Append(pl)
	s.Index.Set(pl.ID, Loc{Kind: wire.KindPolyline, Slot: slot})
}

// LoadCircle is LoadRect's Circle counterpart.
func (s *EntityStore) LoadCircle(c Circle) {
	slot := s.circles.Append(c)
	s.Index.Set(c.ID, Loc{Kind: wire.KindCircle, Slot: slot})
}

// LoadPolygon is LoadRect's Polygon counterpart.
func (s *EntityStore) LoadPolygon(p Polygon) {
	slot := s.polygons.Append(p)
	s.Index.Set(p.ID, Loc{Kind: wire.KindPolygon, Slot: slot})
}

// LoadArrow is LoadRect's Arrow counterpart.
func (s *EntityStore) LoadArrow(a Arrow) {
	slot := s.arrows.Append(a)
	s.Index.Set(a.ID, Loc{Kind: wire.KindArrow, Slot: slot})
}

// Clear resets the store to empty (used by ClearAll / snapshot load).
func (s *EntityStore) Clear() {
	*s = EntityStore{
		Index:     NewIndex(),
		layerSlot: make(map[uint32]int),
		nextLayer: 1,
		overrides: make(map[uint32]StyleOverride),
	}
}
