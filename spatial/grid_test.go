package spatial

import (
	"testing"

	"github.com/draftcore/engine/geom"
)

func TestUpdateAndQueryArea(t *testing.T) {
	g := New(50)
	g.Update(1, geom.AABB{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	g.Update(2, geom.AABB{MinX: 200, MinY: 200, MaxX: 210, MaxY: 210})

	got := g.QueryArea(geom.AABB{MinX: -5, MinY: -5, MaxX: 15, MaxY: 15})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("QueryArea: have %v, want [1]", got)
	}
}

func TestUpdateMovesAcrossCells(t *testing.T) {
	g := New(50)
	g.Update(1, geom.AABB{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5})
	g.Update(1, geom.AABB{MinX: 300, MinY: 300, MaxX: 305, MaxY: 305})

	if got := g.QueryArea(geom.AABB{MinX: -5, MinY: -5, MaxX: 10, MaxY: 10}); len(got) != 0 {
		t.Fatalf("stale cell membership not cleared: %v", got)
	}
	if got := g.QueryArea(geom.AABB{MinX: 295, MinY: 295, MaxX: 310, MaxY: 310}); len(got) != 1 {
		t.Fatalf("moved entity not found at new position: %v", got)
	}
}

func TestRemove(t *testing.T) {
	g := New(50)
	g.Update(1, geom.AABB{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5})
	g.Remove(1)
	if got := g.QueryArea(geom.AABB{MinX: -5, MinY: -5, MaxX: 10, MaxY: 10}); len(got) != 0 {
		t.Fatalf("removed entity still present: %v", got)
	}
}

func TestSpanningMultipleCellsDoesNotDuplicate(t *testing.T) {
	g := New(50)
	g.Update(1, geom.AABB{MinX: -10, MinY: -10, MaxX: 60, MaxY: 60})
	got := g.QueryArea(geom.AABB{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100})
	if len(got) != 1 {
		t.Fatalf("entity spanning cells reported %d times, want 1", len(got))
	}
}
