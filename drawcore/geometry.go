package drawcore

import (
	"math"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

// entityAABB computes kind's current world-space bounding box,
// conservative for Circle/Polygon (center ± max radius) per §4.5
// "AABBs per kind". ok is false for a kind entityAABB does not
// resolve (only wire.KindText, which the text subsystem bounds
// itself after layout).
func entityAABB(st *store.EntityStore, kind wire.Kind, id uint32) (geom.AABB, bool) {
	switch kind {
	case wire.KindRect:
		r, ok := st.FindRect(id)
		if !ok {
			return geom.AABB{}, false
		}
		return geom.AABB{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}, true

	case wire.KindLine:
		l, ok := st.FindLine(id)
		if !ok {
			return geom.AABB{}, false
		}
		return geom.Empty().Extend(l.X0, l.Y0).Extend(l.X1, l.Y1), true

	case wire.KindPolyline:
		pl, ok := st.FindPolyline(id)
		if !ok {
			return geom.AABB{}, false
		}
		box := geom.Empty()
		for _, p := range st.Points.Slice(pl.Offset, pl.Count) {
			box = box.Extend(p[0], p[1])
		}
		return box, true

	case wire.KindCircle:
		c, ok := st.FindCircle(id)
		if !ok {
			return geom.AABB{}, false
		}
		r := maxF32(c.RX, c.RY)
		return geom.AABB{MinX: c.CX - r, MinY: c.CY - r, MaxX: c.CX + r, MaxY: c.CY + r}, true

	case wire.KindPolygon:
		p, ok := st.FindPolygon(id)
		if !ok {
			return geom.AABB{}, false
		}
		r := maxF32(p.RX, p.RY)
		return geom.AABB{MinX: p.CX - r, MinY: p.CY - r, MaxX: p.CX + r, MaxY: p.CY + r}, true

	case wire.KindArrow:
		a, ok := st.FindArrow(id)
		if !ok {
			return geom.AABB{}, false
		}
		box := geom.Empty().Extend(a.AX, a.AY).Extend(a.BX, a.BY)
		box.MinX -= a.Head
		box.MinY -= a.Head
		box.MaxX += a.Head
		box.MaxY += a.Head
		return box, true
	}
	return geom.AABB{}, false
}

// allEntityIDs groups every geometric entity's id by kind, for a
// full spatial-index rebuild after a snapshot load.
func allEntityIDs(st *store.EntityStore) map[wire.Kind][]uint32 {
	out := make(map[wire.Kind][]uint32, 6)
	for _, r := range st.Rects() {
		out[wire.KindRect] = append(out[wire.KindRect], r.ID)
	}
	for _, l := range st.Lines() {
		out[wire.KindLine] = append(out[wire.KindLine], l.ID)
	}
	for _, pl := range st.Polylines() {
		out[wire.KindPolyline] = append(out[wire.KindPolyline], pl.ID)
	}
	for _, c := range st.Circles() {
		out[wire.KindCircle] = append(out[wire.KindCircle], c.ID)
	}
	for _, p := range st.Polygons() {
		out[wire.KindPolygon] = append(out[wire.KindPolygon], p.ID)
	}
	for _, a := range st.Arrows() {
		out[wire.KindArrow] = append(out[wire.KindArrow], a.ID)
	}
	return out
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// textWorldBounds returns rec's cached layout bounds translated into
// world space: writeBackBounds (package text) stores them relative
// to the text's anchor.
func textWorldBounds(rec *text.TextRec) geom.AABB {
	return geom.AABB{
		MinX: rec.AnchorX + rec.BoundsX,
		MinY: rec.AnchorY + rec.BoundsY,
		MaxX: rec.AnchorX + rec.BoundsX + rec.BoundsW,
		MaxY: rec.AnchorY + rec.BoundsY + rec.BoundsH,
	}
}

// polygonPoints samples the n vertices of the regular polygon /
// ellipse described by (cx, cy, rx, ry, rot, sx, sy), mirroring
// render.ellipsePoints's sampling so pick-time containment and
// edge-distance tests agree with what is actually tessellated.
func polygonPoints(cx, cy, rx, ry, rot, sx, sy float32, n int) []geom.Vec2 {
	if n < 3 {
		n = 3
	}
	pts := make([]geom.Vec2, n)
	cr, sr := float32(math.Cos(float64(rot))), float32(math.Sin(float64(rot)))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		lx := rx * float32(math.Cos(a)) * sx
		ly := ry * float32(math.Sin(a)) * sy
		pts[i] = geom.Vec2{cx + lx*cr - ly*sr, cy + lx*sr + ly*cr}
	}
	return pts
}

// polygonEdgeDistance returns the minimum perpendicular distance
// from (px, py) to any edge of the closed polygon pts.
func polygonEdgeDistance(px, py float32, pts []geom.Vec2) float32 {
	n := len(pts)
	if n == 0 {
		return float32(math.Inf(1))
	}
	best := float32(math.Inf(1))
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		d := geom.SegmentDistance(px, py, pts[i][0], pts[i][1], pts[j][0], pts[j][1])
		if d < best {
			best = d
		}
	}
	return best
}
