package text

import (
	"sort"
	"strconv"

	"golang.org/x/image/math/fixed"

	"github.com/draftcore/engine/text/atlas"
	"github.com/go-text/typesetting/font"
)

// GlyphRasterizer is the external collaborator a QuadBuilder asks to
// produce pixels for a glyph the atlas hasn't cached yet. Like
// Layouter, the core depends only on this narrow contract and never
// rasterizes a glyph itself.
type GlyphRasterizer interface {
	RasterizeGlyph(fontID font.ID, glyphID GlyphID, fontSize float32, flags StyleFlags) (w, h int, bearingX, bearingY float32)
}

// quadVertexFloats is the per-vertex width of a text quad:
// (x, y, z, u, v, r, g, b, a). Distinct from the geometric render
// buffers, which carry no UV.
const quadVertexFloats = 9

// QuadBuilder assembles per-glyph quad buffers from laid-out text,
// caching the result per id so unaffected texts are not re-walked on
// every frame.
type QuadBuilder struct {
	atlas      *atlas.Atlas
	rasterizer GlyphRasterizer
	capacity   int

	cache     map[uint32][]float32
	recency   []uint32
	lastReset uint32
}

// NewQuadBuilder returns a QuadBuilder over a, using r to rasterize
// glyphs the atlas has not yet cached. capacity bounds the number of
// texts whose quads are kept in the LRU cache at once; <=0 selects a
// default.
func NewQuadBuilder(a *atlas.Atlas, r GlyphRasterizer, capacity int) *QuadBuilder {
	if capacity <= 0 {
		capacity = 256
	}
	return &QuadBuilder{atlas: a, rasterizer: r, capacity: capacity, cache: make(map[uint32][]float32)}
}

// MarkDirty evicts id's cached quads, forcing it to be re-emitted on
// the next Build. Callers invalidate an id whenever its content,
// runs, or style change.
func (b *QuadBuilder) MarkDirty(id uint32) {
	delete(b.cache, id)
	b.removeRecency(id)
}

// Clear empties the cache outright (used by ClearAll / snapshot load
// and by an atlas reset).
func (b *QuadBuilder) Clear() {
	b.cache = make(map[uint32][]float32)
	b.recency = nil
}

// Build walks drawOrder and returns the stitched quad buffer for
// every visible text, ensuring each one's layout first. A text whose
// quads are still cached and whose atlas cells survived since the
// last Build is not re-emitted. An atlas reset forces a full rebuild,
// since every cached UV may now point at a different cell.
func (b *QuadBuilder) Build(s *Store, l Layouter, drawOrder []uint32) []float32 {
	if v := b.atlas.ResetVersion(); v != b.lastReset {
		b.lastReset = v
		b.Clear()
	}
	var out []float32
	for _, id := range drawOrder {
		rec, ok := s.FindText(id)
		if !ok || rec.Flags&Visible == 0 {
			continue
		}
		quads, cached := b.cache[id]
		if !cached {
			layout := l.EnsureLayout(id)
			quads = b.emit(rec, layout)
			b.cache[id] = quads
			b.recency = append(b.recency, id)
			b.evictExcess()
		} else {
			b.touch(id)
		}
		out = append(out, quads...)
	}
	return out
}

func (b *QuadBuilder) touch(id uint32) {
	b.removeRecency(id)
	b.recency = append(b.recency, id)
}

func (b *QuadBuilder) removeRecency(id uint32) {
	for i, x := range b.recency {
		if x == id {
			b.recency = append(b.recency[:i], b.recency[i+1:]...)
			return
		}
	}
}

func (b *QuadBuilder) evictExcess() {
	for len(b.recency) > b.capacity {
		oldest := b.recency[0]
		b.recency = b.recency[1:]
		delete(b.cache, oldest)
	}
}

// activeRun returns the run spanning byte offset idx, skipping the
// degenerate zero-length caret runs a style change may have left
// behind. Runs are sorted by StartIndex, so the scan is a binary
// search.
func activeRun(runs []TextRun, idx int) (TextRun, bool) {
	i := sort.Search(len(runs), func(i int) bool { return runs[i].end() > idx })
	for ; i < len(runs); i++ {
		r := runs[i]
		if r.Length == 0 {
			continue
		}
		if r.StartIndex <= idx && idx < r.end() {
			return r, true
		}
		break
	}
	return TextRun{}, false
}

// emit assembles rec's quad buffer from a freshly ensured layout: one
// 6-vertex quad per glyph, plus solid underline/strikethrough quads
// for contiguous style-run spans, in line order.
func (b *QuadBuilder) emit(rec *TextRec, layout TextLayout) []float32 {
	var out []float32
	y := fixed.Int26_6(0)
	for _, line := range layout.Lines {
		x := line.XOffset
		spanStart := x
		var spanFlags StyleFlags
		haveSpan := false

		flushSpan := func(end fixed.Int26_6) {
			if !haveSpan || spanFlags&(Underline|Strikethrough) == 0 {
				haveSpan = false
				return
			}
			x0 := rec.AnchorX + float32(spanStart)/64
			x1 := rec.AnchorX + float32(end)/64
			if spanFlags&Underline != 0 {
				out = b.appendDecoration(out, x0, x1, rec.AnchorY+float32(y+line.Ascent)/64+1)
			}
			if spanFlags&Strikethrough != 0 {
				out = b.appendDecoration(out, x0, x1, rec.AnchorY+float32(y+line.Ascent)/64*0.55)
			}
			haveSpan = false
		}

		last := line.StartGlyph + line.GlyphCount
		if last > len(layout.Glyphs) {
			last = len(layout.Glyphs)
		}
		for i := line.StartGlyph; i < last; i++ {
			g := layout.Glyphs[i]
			run, ok := activeRun(rec.Runs, g.ClusterIndex)
			var fontID font.ID
			var fontSize float32 = 12
			var flags StyleFlags
			if ok {
				fontID, fontSize, flags = run.FontID, run.FontSize, run.Flags
			}

			if !haveSpan {
				spanStart, spanFlags, haveSpan = x, flags, true
			} else if flags != spanFlags {
				flushSpan(x)
				spanStart, spanFlags, haveSpan = x, flags, true
			}

			glyphID := g.GlyphID
			entry, got := b.atlas.GetGlyph(fontKey(fontID), uint32(glyphID), uint16(flags), func() (int, int, float32, float32) {
				return b.rasterizer.RasterizeGlyph(fontID, glyphID, fontSize, flags)
			})
			if got {
				gx := rec.AnchorX + float32(x+g.XOffset)/64
				gy := rec.AnchorY + float32(y+g.YOffset)/64
				out = appendQuad(out,
					gx+entry.BearingX, gy-entry.BearingY,
					gx+entry.BearingX+float32(entry.Width), gy-entry.BearingY+float32(entry.Height),
					entry.U0, entry.V0, entry.U1, entry.V1)
			}
			x += g.XAdvance
		}
		flushSpan(x)
		y += line.LineHeight
	}
	return out
}

// appendDecoration appends a solid quad for an underline or
// strikethrough, sampled from the atlas's reserved white-pixel cell.
func (b *QuadBuilder) appendDecoration(buf []float32, x0, x1, yCenter float32) []float32 {
	entry, ok := b.atlas.WhitePixel()
	if !ok {
		return buf
	}
	const thicknessPx = 1
	return appendQuad(buf, x0, yCenter-thicknessPx/2, x1, yCenter+thicknessPx/2, entry.U0, entry.V0, entry.U1, entry.V1)
}

func fontKey(id font.ID) string { return strconv.FormatUint(uint64(id), 10) }

func appendQuad(buf []float32, x0, y0, x1, y1, u0, v0, u1, v1 float32) []float32 {
	v := func(buf []float32, x, y, u, vv float32) []float32 {
		return append(buf, x, y, 0, u, vv, 1, 1, 1, 1)
	}
	buf = v(buf, x0, y0, u0, v0)
	buf = v(buf, x1, y0, u1, v0)
	buf = v(buf, x1, y1, u1, v1)
	buf = v(buf, x0, y0, u0, v0)
	buf = v(buf, x1, y1, u1, v1)
	buf = v(buf, x0, y1, u0, v1)
	return buf
}
