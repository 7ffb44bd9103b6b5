package drawcore

import (
	"sort"

	"github.com/draftcore/engine/digest"
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
)

// Digest returns the document's canonical 64-bit content digest,
// split into (lo, hi) halves (§4.11). Two documents with identical
// entities, layers, draw order, selection and text content produce
// the same digest regardless of the order commands built them in,
// since the walk is driven by ascending id rather than insertion
// order.
func (e *Engine) Digest() (lo, hi uint32) {
	b := digest.New()

	layers := append([]store.Layer(nil), e.Store.Layers()...)
	sort.Slice(layers, func(i, j int) bool { return layers[i].Order < layers[j].Order })
	b.U32(uint32(len(layers)))
	for _, l := range layers {
		b.U32(l.ID)
		b.U32(uint32(l.Order))
		b.U32(uint32(l.Flags))
		b.String(l.Name)
		digestRGBA(b, l.Style.Stroke)
		digestRGBA(b, l.Style.Fill)
		digestRGBA(b, l.Style.TextColor)
		digestRGBA(b, l.Style.TextBackground)
	}

	digestRects(b, e.Store)
	digestLines(b, e.Store)
	digestPolylines(b, e.Store)
	digestCircles(b, e.Store)
	digestPolygons(b, e.Store)
	digestArrows(b, e.Store)
	digestTexts(b, e.Text)

	order := e.DrawOrder.IDs()
	b.U32(uint32(len(order)))
	for _, id := range order {
		b.U32(id)
	}

	sel := e.Selection.IDs()
	b.U32(uint32(len(sel)))
	for _, id := range sel {
		b.U32(id)
	}

	b.U32(e.ids.Peek())
	return b.Sum()
}

func digestRGBA(b *digest.Builder, c geom.RGBA) {
	b.F32(c[0])
	b.F32(c[1])
	b.F32(c[2])
	b.F32(c[3])
}

func digestCommon(b *digest.Builder, id, layerID uint32, flags store.Flags) {
	b.U32(id)
	b.U32(layerID)
	b.U32(uint32(flags))
}

func digestOverride(b *digest.Builder, st *store.EntityStore, id uint32) {
	o, ok := st.StyleOverrideOf(id)
	if !ok {
		b.U32(0)
		return
	}
	b.U32(1)
	b.U32(boolU32(o.HasStroke))
	digestRGBA(b, o.Stroke)
	b.U32(boolU32(o.HasFill))
	digestRGBA(b, o.Fill)
	b.U32(boolU32(o.HasTextColor))
	digestRGBA(b, o.TextColor)
	b.U32(boolU32(o.HasTextBackground))
	digestRGBA(b, o.TextBackground)
}

func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func digestRects(b *digest.Builder, st *store.EntityStore) {
	rs := append([]store.Rect(nil), st.Rects()...)
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	b.U32(uint32(len(rs)))
	for _, r := range rs {
		digestCommon(b, r.ID, r.LayerID, r.Flags)
		b.F32(r.X)
		b.F32(r.Y)
		b.F32(r.W)
		b.F32(r.H)
		digestRGBA(b, r.Fill)
		digestRGBA(b, r.Stroke)
		b.U32(boolU32(r.StrokeEnabled))
		b.F32(r.StrokeWidthPx)
		digestOverride(b, st, r.ID)
	}
}

func digestLines(b *digest.Builder, st *store.EntityStore) {
	ls := append([]store.Line(nil), st.Lines()...)
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
	b.U32(uint32(len(ls)))
	for _, l := range ls {
		digestCommon(b, l.ID, l.LayerID, l.Flags)
		b.F32(l.X0)
		b.F32(l.Y0)
		b.F32(l.X1)
		b.F32(l.Y1)
		digestRGBA(b, l.Color)
		b.U32(boolU32(l.Enabled))
		b.F32(l.StrokeWidthPx)
		digestOverride(b, st, l.ID)
	}
}

func digestPolylines(b *digest.Builder, st *store.EntityStore) {
	pls := append([]store.Polyline(nil), st.Polylines()...)
	sort.Slice(pls, func(i, j int) bool { return pls[i].ID < pls[j].ID })
	b.U32(uint32(len(pls)))
	for _, pl := range pls {
		digestCommon(b, pl.ID, pl.LayerID, pl.Flags)
		pts := st.Points.Slice(pl.Offset, pl.Count)
		b.U32(uint32(len(pts)))
		for _, p := range pts {
			b.F32(p[0])
			b.F32(p[1])
		}
		digestRGBA(b, pl.Color)
		b.U32(boolU32(pl.Enabled))
		b.F32(pl.StrokeWidthPx)
		digestOverride(b, st, pl.ID)
	}
}

func digestCircles(b *digest.Builder, st *store.EntityStore) {
	cs := append([]store.Circle(nil), st.Circles()...)
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	b.U32(uint32(len(cs)))
	for _, c := range cs {
		digestCommon(b, c.ID, c.LayerID, c.Flags)
		b.F32(c.CX)
		b.F32(c.CY)
		b.F32(c.RX)
		b.F32(c.RY)
		b.F32(c.Rot)
		b.F32(c.SX)
		b.F32(c.SY)
		digestRGBA(b, c.Fill)
		digestRGBA(b, c.Stroke)
		b.U32(boolU32(c.StrokeEnabled))
		b.F32(c.StrokeWidthPx)
		digestOverride(b, st, c.ID)
	}
}

func digestPolygons(b *digest.Builder, st *store.EntityStore) {
	ps := append([]store.Polygon(nil), st.Polygons()...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	b.U32(uint32(len(ps)))
	for _, p := range ps {
		digestCommon(b, p.ID, p.LayerID, p.Flags)
		b.F32(p.CX)
		b.F32(p.CY)
		b.F32(p.RX)
		b.F32(p.RY)
		b.F32(p.Rot)
		b.F32(p.SX)
		b.F32(p.SY)
		b.U32(uint32(p.Sides))
		digestRGBA(b, p.Fill)
		digestRGBA(b, p.Stroke)
		b.U32(boolU32(p.StrokeEnabled))
		b.F32(p.StrokeWidthPx)
		digestOverride(b, st, p.ID)
	}
}

func digestArrows(b *digest.Builder, st *store.EntityStore) {
	as := append([]store.Arrow(nil), st.Arrows()...)
	sort.Slice(as, func(i, j int) bool { return as[i].ID < as[j].ID })
	b.U32(uint32(len(as)))
	for _, a := range as {
		digestCommon(b, a.ID, a.LayerID, a.Flags)
		b.F32(a.AX)
		b.F32(a.AY)
		b.F32(a.BX)
		b.F32(a.BY)
		b.F32(a.Head)
		digestRGBA(b, a.Stroke)
		b.F32(a.StrokeWidthPx)
		digestOverride(b, st, a.ID)
	}
}

func digestTexts(b *digest.Builder, ts *text.Store) {
	recs := append([]*text.TextRec(nil), ts.All()...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	b.U32(uint32(len(recs)))
	for _, rec := range recs {
		digestCommon(b, rec.ID, rec.LayerID, store.Flags(rec.Flags))
		b.F32(rec.AnchorX)
		b.F32(rec.AnchorY)
		b.F32(rec.Rotation)
		b.U32(uint32(rec.Box))
		b.U32(uint32(rec.Align))
		b.F32(rec.ConstraintWidth)
		b.String(rec.Content)
		b.U32(uint32(len(rec.Runs)))
		for _, run := range rec.Runs {
			b.U32(uint32(run.StartIndex))
			b.U32(uint32(run.Length))
			b.U32(uint32(run.Flags))
			b.U32(uint32(run.FontID))
			b.F32(run.FontSize)
		}
	}
}
