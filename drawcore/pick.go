package drawcore

import (
	"math"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/spatial"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/wire"
)

func (e *Engine) halfStroke(px float32) float32 {
	scale := e.ViewScale()
	if scale <= 0 {
		scale = 1
	}
	return px / (2 * scale)
}

// distanceTo returns the world-space distance from (x, y) to id's
// silhouette, 0 meaning x,y is inside or on a filled/closed shape.
// ok is false if id no longer resolves to a pickable kind (§4.5).
func (e *Engine) distanceTo(id uint32, x, y float32) (float32, bool) {
	kind, ok := e.Store.Kind(id)
	if !ok {
		return 0, false
	}
	switch kind {
	case wire.KindRect:
		r, ok := e.Store.FindRect(id)
		if !ok {
			return 0, false
		}
		box := geom.AABB{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
		return box.EdgeDistance(x, y), true

	case wire.KindLine:
		l, ok := e.Store.FindLine(id)
		if !ok {
			return 0, false
		}
		d := geom.SegmentDistance(x, y, l.X0, l.Y0, l.X1, l.Y1) - e.halfStroke(l.StrokeWidthPx)
		return maxF32(d, 0), true

	case wire.KindPolyline:
		pl, ok := e.Store.FindPolyline(id)
		if !ok {
			return 0, false
		}
		pts := e.Store.Points.Slice(pl.Offset, pl.Count)
		if len(pts) == 0 {
			return 0, false
		}
		best := float32(math.Inf(1))
		for i := 0; i < len(pts)-1; i++ {
			d := geom.SegmentDistance(x, y, pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1])
			if d < best {
				best = d
			}
		}
		if len(pts) == 1 {
			best = geom.SegmentDistance(x, y, pts[0][0], pts[0][1], pts[0][0], pts[0][1])
		}
		return maxF32(best-e.halfStroke(pl.StrokeWidthPx), 0), true

	case wire.KindCircle:
		c, ok := e.Store.FindCircle(id)
		if !ok {
			return 0, false
		}
		r := maxF32(c.RX, c.RY)
		d := float32(math.Hypot(float64(x-c.CX), float64(y-c.CY))) - r
		return maxF32(d, 0), true

	case wire.KindPolygon:
		p, ok := e.Store.FindPolygon(id)
		if !ok {
			return 0, false
		}
		pts := polygonPoints(p.CX, p.CY, p.RX, p.RY, p.Rot, p.SX, p.SY, p.Sides)
		if geom.PointInPolygon(x, y, pts) {
			return 0, true
		}
		return polygonEdgeDistance(x, y, pts), true

	case wire.KindArrow:
		a, ok := e.Store.FindArrow(id)
		if !ok {
			return 0, false
		}
		shaft := geom.SegmentDistance(x, y, a.AX, a.AY, a.BX, a.BY) - e.halfStroke(a.StrokeWidthPx)
		head := arrowHeadDistance(a, x, y)
		return maxF32(minF32(maxF32(shaft, 0), head), 0), true

	case wire.KindText:
		rec, ok := e.Text.FindText(id)
		if !ok {
			return 0, false
		}
		box := textWorldBounds(rec)
		if box.ContainsPoint(x, y) {
			return 0, true
		}
		return box.EdgeDistance(x, y), true
	}
	return 0, false
}

// arrowHeadDistance returns 0 if (x, y) falls inside the arrow's
// triangular head, else the distance to the nearest head edge.
func arrowHeadDistance(a *store.Arrow, x, y float32) float32 {
	dx, dy := a.BX-a.AX, a.BY-a.AY
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return float32(math.Inf(1))
	}
	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux
	tip := geom.Vec2{a.BX, a.BY}
	base := geom.Vec2{a.BX - ux*a.Head, a.BY - uy*a.Head}
	left := geom.Vec2{base[0] + nx*a.Head*0.5, base[1] + ny*a.Head*0.5}
	right := geom.Vec2{base[0] - nx*a.Head*0.5, base[1] - ny*a.Head*0.5}
	pts := []geom.Vec2{tip, left, right}
	if geom.PointInPolygon(x, y, pts) {
		return 0
	}
	return polygonEdgeDistance(x, y, pts)
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Pick returns the nearest entity within tolerance world units of
// (x, y), ranked by ascending distance then descending draw order (so
// the topmost wins a distance tie), or 0 if nothing qualifies (§4.5).
func (e *Engine) Pick(x, y, tolerance float32) uint32 {
	e.syncTextLayout()
	return e.grid.Pick(x, y, tolerance, e.distanceTo)
}

// QueryArea returns every entity whose AABB intersects rect, in no
// particular order.
func (e *Engine) QueryArea(rect geom.AABB) []uint32 {
	e.syncTextLayout()
	return e.grid.QueryArea(rect)
}

// QueryMarquee returns every entity selected by a marquee rect under
// mode (window: fully contained; crossing: any overlap), in draw
// order.
func (e *Engine) QueryMarquee(rect geom.AABB, mode spatial.MarqueeMode) []uint32 {
	e.syncTextLayout()
	return e.grid.QueryMarquee(rect, mode, e.DrawOrder.IDs())
}
