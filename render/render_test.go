package render

import (
	"testing"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
)

func newFixtureStore() *store.EntityStore {
	s := store.New()
	s.UpsertLayer(store.Layer{ID: 1, Order: 0, Flags: store.LayerVisible})
	return s
}

func TestRebuildEmitsRectTrianglesAndOutline(t *testing.T) {
	s := newFixtureStore()
	s.UpsertRect(1, store.Rect{
		LayerID: 1, Flags: store.Visible,
		X: 0, Y: 0, W: 10, H: 5,
		Fill: geom.RGBA{1, 0, 0, 1}, Stroke: geom.RGBA{0, 0, 0, 1},
		StrokeEnabled: true, StrokeWidthPx: 1,
	})
	b := New(s)
	b.Rebuild([]uint32{1})

	rng, ok := b.RangeOf(1)
	if !ok {
		t.Fatal("missing range for entity 1")
	}
	if got := rng.Tri.Width(); got != 6*vertexStride {
		t.Fatalf("tri width = %d, want %d", got, 6*vertexStride)
	}
	if got := rng.Line.Width(); got != 8*vertexStride {
		t.Fatalf("line width = %d, want %d", got, 8*vertexStride)
	}
}

func TestInvisibleEntityReservesZeroWidthRange(t *testing.T) {
	s := newFixtureStore()
	s.UpsertRect(1, store.Rect{LayerID: 1, Flags: 0, W: 10, H: 5})
	b := New(s)
	b.Rebuild([]uint32{1})

	rng, ok := b.RangeOf(1)
	if !ok {
		t.Fatal("missing range for entity 1")
	}
	if rng.Tri.Width() != 0 || rng.Line.Width() != 0 {
		t.Fatalf("invisible entity should reserve a zero-width range, got %+v", rng)
	}
}

func TestInvisibleWhenLayerHidden(t *testing.T) {
	s := store.New()
	s.UpsertLayer(store.Layer{ID: 1, Order: 0, Flags: 0}) // not LayerVisible
	s.UpsertRect(1, store.Rect{LayerID: 1, Flags: store.Visible, W: 10, H: 5})
	b := New(s)
	b.Rebuild([]uint32{1})

	rng, _ := b.RangeOf(1)
	if rng.Tri.Width() != 0 {
		t.Fatal("entity on a hidden layer must contribute zero vertices")
	}
}

func TestLineAndPolylineSegmentCounts(t *testing.T) {
	s := newFixtureStore()
	s.UpsertLine(1, store.Line{LayerID: 1, Flags: store.Visible, Enabled: true, X1: 1, Y1: 1})
	s.UpsertPolyline(2, store.Polyline{LayerID: 1, Flags: store.Visible, Enabled: true},
		[]geom.Vec2{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
	b := New(s)
	b.Rebuild([]uint32{1, 2})

	lineRng, _ := b.RangeOf(1)
	if got := lineRng.Line.Width(); got != 2*vertexStride {
		t.Fatalf("line width = %d, want %d", got, 2*vertexStride)
	}
	polyRng, _ := b.RangeOf(2)
	if got := polyRng.Line.Width(); got != 3*2*vertexStride { // (count-1) segments
		t.Fatalf("polyline width = %d, want %d", got, 3*2*vertexStride)
	}
}

func TestZeroCountPolylineContributesNothing(t *testing.T) {
	s := newFixtureStore()
	s.UpsertPolyline(1, store.Polyline{LayerID: 1, Flags: store.Visible, Enabled: true}, nil)
	b := New(s)
	b.Rebuild([]uint32{1})

	rng, _ := b.RangeOf(1)
	if rng.Line.Width() != 0 {
		t.Fatal("zero-count polyline must render zero segments")
	}
}

func TestArrowEmitsShaftAndHead(t *testing.T) {
	s := newFixtureStore()
	s.UpsertArrow(1, store.Arrow{LayerID: 1, Flags: store.Visible, AX: 0, AY: 0, BX: 10, BY: 0, Head: 2})
	b := New(s)
	b.Rebuild([]uint32{1})

	rng, _ := b.RangeOf(1)
	if got := rng.Tri.Width(); got != 3*vertexStride {
		t.Fatalf("arrow head tri width = %d, want %d", got, 3*vertexStride)
	}
	if got := rng.Line.Width(); got != 8*vertexStride { // shaft (2) + 3 head segments (6)
		t.Fatalf("arrow line width = %d, want %d", got, 8*vertexStride)
	}
}

func TestRefreshPatchesInPlaceWhenWidthUnchanged(t *testing.T) {
	s := newFixtureStore()
	s.UpsertRect(1, store.Rect{LayerID: 1, Flags: store.Visible, W: 10, H: 5, Fill: geom.RGBA{1, 0, 0, 1}})
	b := New(s)
	b.Rebuild([]uint32{1})
	genBefore := b.Generation()

	s.UpsertRect(1, store.Rect{LayerID: 1, Flags: store.Visible, W: 10, H: 5, Fill: geom.RGBA{0, 1, 0, 1}})
	b.RefreshEntityRenderRange(1)

	if b.pendingFullRebuild {
		t.Fatal("same-width edit should patch in place, not schedule a full rebuild")
	}
	if b.Generation() <= genBefore {
		t.Fatal("generation must advance after an in-place patch")
	}
	rng, _ := b.RangeOf(1)
	tri := b.TriangleBuffer()[rng.Tri.FirstFloat:rng.Tri.LastFloat]
	if tri[3] != 0 || tri[4] != 1 {
		t.Fatalf("patched color not reflected in buffer: %v", tri[3:7])
	}
}

func TestRefreshSchedulesFullRebuildWhenWidthChanges(t *testing.T) {
	s := newFixtureStore()
	s.UpsertCircle(1, store.Circle{LayerID: 1, Flags: store.Visible, RX: 5, RY: 5, StrokeEnabled: true})
	b := New(s)
	b.Rebuild([]uint32{1})

	// Hiding the entity changes its vertex count to zero.
	s.UpsertCircle(1, store.Circle{LayerID: 1, Flags: 0, RX: 5, RY: 5, StrokeEnabled: true})
	b.RefreshEntityRenderRange(1)

	if !b.pendingFullRebuild {
		t.Fatal("width change must schedule a full rebuild")
	}

	meta := b.PositionBufferMeta([]uint32{1})
	if meta.Len != 0 {
		t.Fatalf("after rebuild, hidden entity should contribute 0 triangle floats, got %d", meta.Len)
	}
	if b.pendingFullRebuild {
		t.Fatal("EnsureFresh should have cleared pendingFullRebuild")
	}
}

func TestGenerationMonotonic(t *testing.T) {
	s := newFixtureStore()
	s.UpsertRect(1, store.Rect{LayerID: 1, Flags: store.Visible, W: 1, H: 1})
	b := New(s)
	g0 := b.Generation()
	b.Rebuild([]uint32{1})
	g1 := b.Generation()
	b.MarkFullRebuild()
	b.Rebuild([]uint32{1})
	g2 := b.Generation()
	if !(g0 < g1 && g1 < g2) {
		t.Fatalf("generation must strictly increase: %d, %d, %d", g0, g1, g2)
	}
}
