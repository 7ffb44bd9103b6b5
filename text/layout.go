package text

import (
	"golang.org/x/image/math/fixed"
)

// GlyphID is the shaping engine's glyph index within a font face.
type GlyphID uint32

// TextLine is one laid-out line, indexing a run of TextLayout.Glyphs
// (spec §4.8 "Layout contract").
type TextLine struct {
	StartGlyph int
	GlyphCount int
	Ascent     fixed.Int26_6
	LineHeight fixed.Int26_6
	XOffset    fixed.Int26_6
}

// Glyph is one positioned glyph cluster.
type Glyph struct {
	ClusterIndex int
	GlyphID      GlyphID
	XAdvance     fixed.Int26_6
	XOffset      fixed.Int26_6
	YOffset      fixed.Int26_6
}

// TextLayout is the external shaping engine's output for one text
// entity — the only shape the core depends on (spec §4.8 "Layout
// contract").
type TextLayout struct {
	Lines  []TextLine
	Glyphs []Glyph
}

// Layouter is the external collaborator contract for text shaping.
// An implementation is expected to be idempotent per id and to
// consult Store only through its exported accessors.
type Layouter interface {
	// LayoutText recomputes id's layout unconditionally and writes
	// back bounds to its TextRec.
	LayoutText(id uint32) TextLayout
	// EnsureLayout is a no-op if id is not in the dirty set,
	// otherwise behaves as LayoutText.
	EnsureLayout(id uint32) TextLayout
}

// LayoutDirtyTexts calls l.EnsureLayout for every currently dirty id
// and clears its dirty bit, returning the ids processed.
func (s *Store) LayoutDirtyTexts(l Layouter) []uint32 {
	ids := s.DirtyIDs()
	for _, id := range ids {
		layout := l.EnsureLayout(id)
		s.writeBackBounds(id, layout)
		s.ClearDirty(id)
	}
	return ids
}

func (s *Store) writeBackBounds(id uint32, layout TextLayout) {
	r, ok := s.recs[id]
	if !ok || len(layout.Lines) == 0 {
		return
	}
	var minX, minY, maxX, maxY fixed.Int26_6
	first := true
	y := fixed.Int26_6(0)
	for _, line := range layout.Lines {
		x0 := line.XOffset
		x1 := line.XOffset
		for i := line.StartGlyph; i < line.StartGlyph+line.GlyphCount && i < len(layout.Glyphs); i++ {
			x1 += layout.Glyphs[i].XAdvance
		}
		top := y
		bottom := y + line.LineHeight
		if first {
			minX, maxX, minY, maxY = x0, x1, top, bottom
			first = false
		} else {
			if x0 < minX {
				minX = x0
			}
			if x1 > maxX {
				maxX = x1
			}
			if bottom > maxY {
				maxY = bottom
			}
		}
		y += line.LineHeight
	}
	r.BoundsX = float32(minX) / 64
	r.BoundsY = float32(minY) / 64
	r.BoundsW = float32(maxX-minX) / 64
	r.BoundsH = float32(maxY-minY) / 64
}
