package snapshot

import (
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/wire"
)

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func encodeRect(w *wire.Writer, r store.Rect) {
	w.U32(r.ID)
	w.U32(r.LayerID)
	w.U32(uint32(r.Flags))
	w.F32(r.X)
	w.F32(r.Y)
	w.F32(r.W)
	w.F32(r.H)
	writeRGBA(w, r.Fill)
	writeRGBA(w, r.Stroke)
	w.U32(boolU32(r.StrokeEnabled))
	w.F32(r.StrokeWidthPx)
}

func decodeRect(r *wire.Reader) store.Rect {
	var rect store.Rect
	rect.ID = r.U32()
	rect.LayerID = r.U32()
	rect.Flags = store.Flags(r.U32())
	rect.X, rect.Y, rect.W, rect.H = r.F32(), r.F32(), r.F32(), r.F32()
	rect.Fill = readRGBA(r)
	rect.Stroke = readRGBA(r)
	rect.StrokeEnabled = r.U32() != 0
	rect.StrokeWidthPx = r.F32()
	return rect
}

func encodeLine(w *wire.Writer, l store.Line) {
	w.U32(l.ID)
	w.U32(l.LayerID)
	w.U32(uint32(l.Flags))
	w.F32(l.X0)
	w.F32(l.Y0)
	w.F32(l.X1)
	w.F32(l.Y1)
	writeRGBA(w, l.Color)
	w.U32(boolU32(l.Enabled))
	w.F32(l.StrokeWidthPx)
}

func decodeLine(r *wire.Reader) store.Line {
	var l store.Line
	l.ID = r.U32()
	l.LayerID = r.U32()
	l.Flags = store.Flags(r.U32())
	l.X0, l.Y0, l.X1, l.Y1 = r.F32(), r.F32(), r.F32(), r.F32()
	l.Color = readRGBA(r)
	l.Enabled = r.U32() != 0
	l.StrokeWidthPx = r.F32()
	return l
}

// encodePolyline writes the polyline record with its Offset/Count as
// currently stored; the companion point array is serialized
// separately and in lockstep, so these offsets remain valid on load.
func encodePolyline(w *wire.Writer, pl store.Polyline) {
	w.U32(pl.ID)
	w.U32(pl.LayerID)
	w.U32(uint32(pl.Flags))
	w.U32(uint32(pl.Offset))
	w.U32(uint32(pl.Count))
	writeRGBA(w, pl.Color)
	w.U32(boolU32(pl.Enabled))
	w.F32(pl.StrokeWidthPx)
}

func decodePolyline(r *wire.Reader) store.Polyline {
	var pl store.Polyline
	pl.ID = r.U32()
	pl.LayerID = r.U32()
	pl.Flags = store.Flags(r.U32())
	pl.Offset = int(r.U32())
	pl.Count = int(r.U32())
	pl.Color = readRGBA(r)
	pl.Enabled = r.U32() != 0
	pl.StrokeWidthPx = r.F32()
	return pl
}

func encodeCircle(w *wire.Writer, c store.Circle) {
	w.U32(c.ID)
	w.U32(c.LayerID)
	w.U32(uint32(c.Flags))
	w.F32(c.CX)
	w.F32(c.CY)
	w.F32(c.RX)
	w.F32(c.RY)
	w.F32(c.Rot)
	w.F32(c.SX)
	w.F32(c.SY)
	writeRGBA(w, c.Fill)
	writeRGBA(w, c.Stroke)
	w.U32(boolU32(c.StrokeEnabled))
	w.F32(c.StrokeWidthPx)
}

func decodeCircle(r *wire.Reader) store.Circle {
	var c store.Circle
	c.ID = r.U32()
	c.LayerID = r.U32()
	c.Flags = store.Flags(r.U32())
	c.CX, c.CY, c.RX, c.RY, c.Rot, c.SX, c.SY = r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
	c.Fill = readRGBA(r)
	c.Stroke = readRGBA(r)
	c.StrokeEnabled = r.U32() != 0
	c.StrokeWidthPx = r.F32()
	return c
}

func encodePolygon(w *wire.Writer, p store.Polygon) {
	w.U32(p.ID)
	w.U32(p.LayerID)
	w.U32(uint32(p.Flags))
	w.F32(p.CX)
	w.F32(p.CY)
	w.F32(p.RX)
	w.F32(p.RY)
	w.F32(p.Rot)
	w.F32(p.SX)
	w.F32(p.SY)
	w.U32(uint32(p.Sides))
	writeRGBA(w, p.Fill)
	writeRGBA(w, p.Stroke)
	w.U32(boolU32(p.StrokeEnabled))
	w.F32(p.StrokeWidthPx)
}

func decodePolygon(r *wire.Reader) store.Polygon {
	var p store.Polygon
	p.ID = r.U32()
	p.LayerID = r.U32()
	p.Flags = store.Flags(r.U32())
	p.CX, p.CY, p.RX, p.RY, p.Rot, p.SX, p.SY = r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
	p.Sides = int(r.U32())
	p.Fill = readRGBA(r)
	p.Stroke = readRGBA(r)
	p.StrokeEnabled = r.U32() != 0
	p.StrokeWidthPx = r.F32()
	return p
}

func encodeArrow(w *wire.Writer, a store.Arrow) {
	w.U32(a.ID)
	w.U32(a.LayerID)
	w.U32(uint32(a.Flags))
	w.F32(a.AX)
	w.F32(a.AY)
	w.F32(a.BX)
	w.F32(a.BY)
	w.F32(a.Head)
	writeRGBA(w, a.Stroke)
	w.F32(a.StrokeWidthPx)
}

func decodeArrow(r *wire.Reader) store.Arrow {
	var a store.Arrow
	a.ID = r.U32()
	a.LayerID = r.U32()
	a.Flags = store.Flags(r.U32())
	a.AX, a.AY, a.BX, a.BY, a.Head = r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
	a.Stroke = readRGBA(r)
	a.StrokeWidthPx = r.F32()
	return a
}
