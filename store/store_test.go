package store

import (
	"testing"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/wire"
)

func TestUpsertAndFindRect(t *testing.T) {
	s := New()
	s.UpsertRect(7, Rect{X: 0, Y: 0, W: 10, H: 5})
	r, ok := s.FindRect(7)
	if !ok || r.W != 10 {
		t.Fatalf("FindRect: have %+v, ok=%v", r, ok)
	}
	if k, _ := s.Kind(7); k != wire.KindRect {
		t.Fatalf("Kind: have %v", k)
	}
}

func TestSwapRemoveRewritesIndex(t *testing.T) {
	s := New()
	s.UpsertRect(1, Rect{})
	s.UpsertRect(2, Rect{})
	s.UpsertRect(3, Rect{})
	if !s.DeleteEntity(1) {
		t.Fatal("DeleteEntity: want true")
	}
	for _, id := range []uint32{2, 3} {
		loc, ok := s.Index.Lookup(id)
		if !ok {
			t.Fatalf("id %d missing from index after unrelated delete", id)
		}
		r := s.rects.Get(loc.Slot)
		if r.ID != id {
			t.Fatalf("index invariant broken: slot %d holds id %d, want %d", loc.Slot, r.ID, id)
		}
	}
	if s.rects.Len() != 2 {
		t.Fatalf("rects.Len: have %d, want 2", s.rects.Len())
	}
}

func TestDeleteNonExistentIsNoop(t *testing.T) {
	s := New()
	if s.DeleteEntity(999) {
		t.Fatal("DeleteEntity on absent id must return false")
	}
}

func TestKindStabilityReplacesRecord(t *testing.T) {
	s := New()
	s.UpsertRect(5, Rect{W: 1})
	s.UpsertLine(5, Line{X1: 9})
	if _, ok := s.FindRect(5); ok {
		t.Fatal("old Rect record must be gone after kind change")
	}
	l, ok := s.FindLine(5)
	if !ok || l.X1 != 9 {
		t.Fatalf("FindLine: have %+v, ok=%v", l, ok)
	}
}

func TestPolylineCompaction(t *testing.T) {
	s := New()
	s.UpsertPolyline(1, Polyline{}, []geom.Vec2{{0, 0}, {1, 1}})
	s.UpsertPolyline(1, Polyline{}, []geom.Vec2{{2, 2}, {3, 3}, {4, 4}})
	if s.Points.Len() != 5 {
		t.Fatalf("Points.Len before compaction: have %d, want 5 (orphaned run retained)", s.Points.Len())
	}
	s.CompactPolylinePoints()
	if s.Points.Len() != 3 {
		t.Fatalf("Points.Len after compaction: have %d, want 3", s.Points.Len())
	}
	pl, _ := s.FindPolyline(1)
	if pl.Offset != 0 || pl.Count != 3 {
		t.Fatalf("Polyline after compaction: have %+v", pl)
	}
	pts := s.Points.Slice(pl.Offset, pl.Count)
	if len(pts) != 3 || pts[0] != (geom.Vec2{2, 2}) {
		t.Fatalf("Slice after compaction: have %v", pts)
	}
}

func TestPolylineOffsetPlusCountNeverExceedsArena(t *testing.T) {
	s := New()
	s.UpsertPolyline(1, Polyline{}, []geom.Vec2{{0, 0}})
	pl, _ := s.FindPolyline(1)
	if pl.Offset+pl.Count > s.Points.Len() {
		t.Fatalf("invariant 3 violated: offset=%d count=%d len=%d", pl.Offset, pl.Count, s.Points.Len())
	}
}

func TestZeroCountPolylineSurvives(t *testing.T) {
	s := New()
	s.UpsertPolyline(1, Polyline{}, nil)
	pl, ok := s.FindPolyline(1)
	if !ok || pl.Count != 0 {
		t.Fatalf("zero-count polyline: have %+v, ok=%v", pl, ok)
	}
}

func TestLayerUpsertAndDelete(t *testing.T) {
	s := New()
	id := s.UpsertLayer(Layer{Name: "base"})
	if id == 0 {
		t.Fatal("UpsertLayer must allocate a non-zero id")
	}
	l, ok := s.FindLayer(id)
	if !ok || l.Name != "base" {
		t.Fatalf("FindLayer: have %+v, ok=%v", l, ok)
	}
	if !s.DeleteLayer(id) {
		t.Fatal("DeleteLayer: want true")
	}
	if _, ok := s.FindLayer(id); ok {
		t.Fatal("layer should be gone")
	}
}
