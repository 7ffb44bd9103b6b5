// Package history implements the undo/redo transaction manager and
// its versioned binary encoding (spec §4.7).
package history

import (
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/wire"
)

// EntitySnapshot is a full copy of one geometric entity's record,
// tagged by kind. Text entities are outside history's scope: no
// text state is recorded.
type EntitySnapshot struct {
	Kind     wire.Kind
	Rect     store.Rect
	Line     store.Line
	Polyline store.Polyline
	Points   []geom.Vec2
	Circle   store.Circle
	Polygon  store.Polygon
	Arrow    store.Arrow
}

// SnapshotEntity captures the full record at id, if it exists and is
// a kind history tracks.
func SnapshotEntity(st *store.EntityStore, id uint32) (EntitySnapshot, bool) {
	kind, ok := st.Kind(id)
	if !ok {
		return EntitySnapshot{}, false
	}
	switch kind {
	case wire.KindRect:
		r, _ := st.FindRect(id)
		return EntitySnapshot{Kind: kind, Rect: *r}, true
	case wire.KindLine:
		l, _ := st.FindLine(id)
		return EntitySnapshot{Kind: kind, Line: *l}, true
	case wire.KindPolyline:
		pl, _ := st.FindPolyline(id)
		pts := append([]geom.Vec2(nil), st.Points.Slice(pl.Offset, pl.Count)...)
		return EntitySnapshot{Kind: kind, Polyline: *pl, Points: pts}, true
	case wire.KindCircle:
		c, _ := st.FindCircle(id)
		return EntitySnapshot{Kind: kind, Circle: *c}, true
	case wire.KindPolygon:
		p, _ := st.FindPolygon(id)
		return EntitySnapshot{Kind: kind, Polygon: *p}, true
	case wire.KindArrow:
		a, _ := st.FindArrow(id)
		return EntitySnapshot{Kind: kind, Arrow: *a}, true
	default:
		return EntitySnapshot{}, false
	}
}

// ApplyEntity upserts snap at id, recreating it with the exact
// recorded fields.
func ApplyEntity(st *store.EntityStore, id uint32, snap EntitySnapshot) {
	switch snap.Kind {
	case wire.KindRect:
		st.UpsertRect(id, snap.Rect)
	case wire.KindLine:
		st.UpsertLine(id, snap.Line)
	case wire.KindPolyline:
		st.UpsertPolyline(id, snap.Polyline, snap.Points)
	case wire.KindCircle:
		st.UpsertCircle(id, snap.Circle)
	case wire.KindPolygon:
		st.UpsertPolygon(id, snap.Polygon)
	case wire.KindArrow:
		st.UpsertArrow(id, snap.Arrow)
	}
}

func sameEntity(a, b EntitySnapshot) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case wire.KindRect:
		return a.Rect == b.Rect
	case wire.KindLine:
		return a.Line == b.Line
	case wire.KindPolyline:
		return a.Polyline == b.Polyline && samePoints(a.Points, b.Points)
	case wire.KindCircle:
		return a.Circle == b.Circle
	case wire.KindPolygon:
		return a.Polygon == b.Polygon
	case wire.KindArrow:
		return a.Arrow == b.Arrow
	}
	return true
}

func samePoints(a, b []geom.Vec2) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EntityChange records one entity's before/after state within a
// HistoryEntry (spec §4.7 "Entry").
type EntityChange struct {
	ID            uint32
	ExistedBefore bool
	ExistedAfter  bool
	Before        EntitySnapshot
	After         EntitySnapshot
}

// HistoryEntry is one undoable transaction (spec §4.7 "Entry").
// Optional fields are gated by the HasX flags: absence means that
// aspect of state did not change in this transaction and must not
// be touched by undo/redo.
type HistoryEntry struct {
	HasLayers    bool
	LayersBefore []store.Layer
	LayersAfter  []store.Layer

	Entities []EntityChange

	HasDrawOrder    bool
	DrawOrderBefore []uint32
	DrawOrderAfter  []uint32

	HasSelection    bool
	SelectionBefore []uint32
	SelectionAfter  []uint32

	NextIDBefore uint32
	NextIDAfter  uint32
	Generation   uint64
}
