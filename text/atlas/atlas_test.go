package atlas

import "testing"

func TestGetGlyphCachesByKey(t *testing.T) {
	a := New(16, 4)
	calls := 0
	rasterize := func() (int, int, float32, float32) {
		calls++
		return 16, 16, 0, 0
	}
	e1, ok := a.GetGlyph("fontA", 7, 0, rasterize)
	if !ok {
		t.Fatal("GetGlyph should succeed with room available")
	}
	e2, ok := a.GetGlyph("fontA", 7, 0, rasterize)
	if !ok || e1 != e2 {
		t.Fatalf("second GetGlyph for same key must hit cache: %+v vs %+v", e1, e2)
	}
	if calls != 1 {
		t.Fatalf("rasterize must run once per distinct glyph: ran %d times", calls)
	}
}

func TestGetGlyphDistinctKeysGetDistinctCells(t *testing.T) {
	a := New(16, 4)
	rasterize := func() (int, int, float32, float32) { return 16, 16, 0, 0 }
	e1, _ := a.GetGlyph("fontA", 1, 0, rasterize)
	e2, _ := a.GetGlyph("fontA", 2, 0, rasterize)
	if e1 == e2 {
		t.Fatal("distinct glyphs must land in distinct cells")
	}
}

func TestAtlasResetsWhenFull(t *testing.T) {
	a := New(16, 2) // 4 cells total
	rasterize := func() (int, int, float32, float32) { return 16, 16, 0, 0 }
	for i := uint32(0); i < 4; i++ {
		if _, ok := a.GetGlyph("fontA", i, 0, rasterize); !ok {
			t.Fatalf("glyph %d should fit before atlas is full", i)
		}
	}
	before := a.ResetVersion()
	if _, ok := a.GetGlyph("fontA", 99, 0, rasterize); !ok {
		t.Fatal("GetGlyph should succeed after an internal reset")
	}
	if a.ResetVersion() != before+1 {
		t.Fatalf("ResetVersion must bump on overflow: have %d, want %d", a.ResetVersion(), before+1)
	}
}
