package text

import (
	"testing"

	"github.com/draftcore/engine/text/atlas"
	"github.com/go-text/typesetting/font"
)

type fakeLayouter struct {
	layouts map[uint32]TextLayout
	calls   map[uint32]int
}

func (f *fakeLayouter) LayoutText(id uint32) TextLayout   { return f.ensure(id) }
func (f *fakeLayouter) EnsureLayout(id uint32) TextLayout { return f.ensure(id) }
func (f *fakeLayouter) ensure(id uint32) TextLayout {
	f.calls[id]++
	return f.layouts[id]
}

type fakeRasterizer struct{ calls int }

func (r *fakeRasterizer) RasterizeGlyph(fontID font.ID, glyphID GlyphID, fontSize float32, flags StyleFlags) (int, int, float32, float32) {
	r.calls++
	return 8, 8, 0, 6
}

func oneGlyphLayout() TextLayout {
	return TextLayout{
		Lines:  []TextLine{{StartGlyph: 0, GlyphCount: 1, Ascent: 12 * 64, LineHeight: 16 * 64}},
		Glyphs: []Glyph{{ClusterIndex: 0, GlyphID: 5, XAdvance: 8 * 64}},
	}
}

func TestQuadBuilderEmitsOneQuadPerGlyph(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{AnchorX: 0, AnchorY: 0, Flags: Visible, Content: "a", Runs: []TextRun{{StartIndex: 0, Length: 1, FontID: 3, FontSize: 12}}})

	l := &fakeLayouter{layouts: map[uint32]TextLayout{1: oneGlyphLayout()}, calls: map[uint32]int{}}
	a := atlas.New(16, 8)
	r := &fakeRasterizer{}
	qb := NewQuadBuilder(a, r, 8)

	buf := qb.Build(s, l, []uint32{1})
	if len(buf) != quadVertexFloats*6 {
		t.Fatalf("expected one glyph quad (%d floats), got %d", quadVertexFloats*6, len(buf))
	}
	if r.calls != 1 {
		t.Fatalf("rasterizer should run once for a fresh glyph, ran %d times", r.calls)
	}
}

func TestQuadBuilderCachesUntilMarkedDirty(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{Flags: Visible, Runs: []TextRun{{StartIndex: 0, Length: 1}}})
	l := &fakeLayouter{layouts: map[uint32]TextLayout{1: oneGlyphLayout()}, calls: map[uint32]int{}}
	qb := NewQuadBuilder(atlas.New(16, 8), &fakeRasterizer{}, 8)

	qb.Build(s, l, []uint32{1})
	qb.Build(s, l, []uint32{1})
	if l.calls[1] != 1 {
		t.Fatalf("second Build should reuse cached quads without re-laying out: EnsureLayout called %d times", l.calls[1])
	}

	qb.MarkDirty(1)
	qb.Build(s, l, []uint32{1})
	if l.calls[1] != 2 {
		t.Fatalf("MarkDirty should force re-layout on next Build: EnsureLayout called %d times", l.calls[1])
	}
}

func TestQuadBuilderSkipsInvisibleText(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{Flags: 0})
	l := &fakeLayouter{layouts: map[uint32]TextLayout{}, calls: map[uint32]int{}}
	qb := NewQuadBuilder(atlas.New(16, 8), &fakeRasterizer{}, 8)

	if buf := qb.Build(s, l, []uint32{1}); len(buf) != 0 {
		t.Fatalf("invisible text must not emit quads, got %d floats", len(buf))
	}
}

func TestQuadBuilderFullRebuildsOnAtlasReset(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{Flags: Visible, Runs: []TextRun{{StartIndex: 0, Length: 1}}})
	l := &fakeLayouter{layouts: map[uint32]TextLayout{1: oneGlyphLayout()}, calls: map[uint32]int{}}
	a := atlas.New(16, 2) // 4 cells, fills fast to force a reset
	qb := NewQuadBuilder(a, &fakeRasterizer{}, 8)

	qb.Build(s, l, []uint32{1})
	for i := uint32(0); i < 5; i++ {
		a.GetGlyph("other", i, 0, func() (int, int, float32, float32) { return 16, 16, 0, 0 })
	}
	qb.Build(s, l, []uint32{1})
	if l.calls[1] != 2 {
		t.Fatalf("an atlas reset must force a full re-emit: EnsureLayout called %d times", l.calls[1])
	}
}

func TestActiveRunSkipsDegenerateCaretRuns(t *testing.T) {
	runs := []TextRun{
		{StartIndex: 0, Length: 2, Flags: Bold},
		{StartIndex: 2, Length: 0, Flags: Bold | Italic},
		{StartIndex: 2, Length: 3, Flags: Italic},
	}
	r, ok := activeRun(runs, 2)
	if !ok || r.Flags != Italic {
		t.Fatalf("activeRun(2) should resolve to the real run starting at 2, got %+v ok=%v", r, ok)
	}
	r, ok = activeRun(runs, 0)
	if !ok || r.Flags != Bold {
		t.Fatalf("activeRun(0) should resolve to the first run, got %+v ok=%v", r, ok)
	}
}
