package command

import (
	"github.com/go-text/typesetting/font"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

func readRGBA(r *wire.Reader) geom.RGBA { return geom.RGBA{r.F32(), r.F32(), r.F32(), r.F32()} }

func writeRGBA(w *wire.Writer, c geom.RGBA) {
	w.F32(c[0])
	w.F32(c[1])
	w.F32(c[2])
	w.F32(c[3])
}

func boolU32(v uint32) bool { return v != 0 }

func u32Bool(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// finish checks that a payload decode consumed every byte: truncation
// is reported as BufferTruncated and trailing garbage as
// InvalidPayloadSize.
func finish(r *wire.Reader) error {
	if r.Truncated() {
		return wire.NewError(wire.BufferTruncated, "truncated command payload")
	}
	if r.Remaining() != 0 {
		return wire.NewError(wire.InvalidPayloadSize, "trailing bytes in command payload")
	}
	return nil
}

func decodeUpsertRect(payload []byte) (store.Rect, error) {
	r := wire.NewReader(payload)
	var rect store.Rect
	rect.LayerID = r.U32()
	rect.Flags = store.Flags(r.U32())
	rect.X, rect.Y, rect.W, rect.H = r.F32(), r.F32(), r.F32(), r.F32()
	rect.Fill = readRGBA(r)
	rect.Stroke = readRGBA(r)
	rect.StrokeEnabled = boolU32(r.U32())
	rect.StrokeWidthPx = r.F32()
	return rect, finish(r)
}

func encodeUpsertRect(w *wire.Writer, r store.Rect) {
	w.U32(r.LayerID)
	w.U32(uint32(r.Flags))
	w.F32(r.X)
	w.F32(r.Y)
	w.F32(r.W)
	w.F32(r.H)
	writeRGBA(w, r.Fill)
	writeRGBA(w, r.Stroke)
	w.U32(u32Bool(r.StrokeEnabled))
	w.F32(r.StrokeWidthPx)
}

func decodeUpsertLine(payload []byte) (store.Line, error) {
	r := wire.NewReader(payload)
	var l store.Line
	l.LayerID = r.U32()
	l.Flags = store.Flags(r.U32())
	l.X0, l.Y0, l.X1, l.Y1 = r.F32(), r.F32(), r.F32(), r.F32()
	l.Color = readRGBA(r)
	l.Enabled = boolU32(r.U32())
	l.StrokeWidthPx = r.F32()
	return l, finish(r)
}

func encodeUpsertLine(w *wire.Writer, l store.Line) {
	w.U32(l.LayerID)
	w.U32(uint32(l.Flags))
	w.F32(l.X0)
	w.F32(l.Y0)
	w.F32(l.X1)
	w.F32(l.Y1)
	writeRGBA(w, l.Color)
	w.U32(u32Bool(l.Enabled))
	w.F32(l.StrokeWidthPx)
}

func decodeUpsertPolyline(payload []byte) (store.Polyline, []geom.Vec2, error) {
	r := wire.NewReader(payload)
	var pl store.Polyline
	pl.LayerID = r.U32()
	pl.Flags = store.Flags(r.U32())
	pl.Color = readRGBA(r)
	pl.Enabled = boolU32(r.U32())
	pl.StrokeWidthPx = r.F32()
	count := r.U32()
	pts := make([]geom.Vec2, count)
	for i := range pts {
		pts[i] = geom.Vec2{r.F32(), r.F32()}
	}
	return pl, pts, finish(r)
}

func encodeUpsertPolyline(w *wire.Writer, pl store.Polyline, pts []geom.Vec2) {
	w.U32(pl.LayerID)
	w.U32(uint32(pl.Flags))
	writeRGBA(w, pl.Color)
	w.U32(u32Bool(pl.Enabled))
	w.F32(pl.StrokeWidthPx)
	w.U32(uint32(len(pts)))
	for _, p := range pts {
		w.F32(p[0])
		w.F32(p[1])
	}
}

func decodeUpsertCircle(payload []byte) (store.Circle, error) {
	r := wire.NewReader(payload)
	var c store.Circle
	c.LayerID = r.U32()
	c.Flags = store.Flags(r.U32())
	c.CX, c.CY, c.RX, c.RY, c.Rot, c.SX, c.SY = r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
	c.Fill = readRGBA(r)
	c.Stroke = readRGBA(r)
	c.StrokeEnabled = boolU32(r.U32())
	c.StrokeWidthPx = r.F32()
	return c, finish(r)
}

func encodeUpsertCircle(w *wire.Writer, c store.Circle) {
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
	w.U32(u32Bool(c.StrokeEnabled))
	w.F32(c.StrokeWidthPx)
}

func decodeUpsertPolygon(payload []byte) (store.Polygon, error) {
	r := wire.NewReader(payload)
	var p store.Polygon
	p.LayerID = r.U32()
	p.Flags = store.Flags(r.U32())
	p.CX, p.CY, p.RX, p.RY, p.Rot, p.SX, p.SY = r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
	p.Sides = int(r.U32())
	p.Fill = readRGBA(r)
	p.Stroke = readRGBA(r)
	p.StrokeEnabled = boolU32(r.U32())
	p.StrokeWidthPx = r.F32()
	return p, finish(r)
}

func encodeUpsertPolygon(w *wire.Writer, p store.Polygon) {
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
	w.U32(u32Bool(p.StrokeEnabled))
	w.F32(p.StrokeWidthPx)
}

func decodeUpsertArrow(payload []byte) (store.Arrow, error) {
	r := wire.NewReader(payload)
	var a store.Arrow
	a.LayerID = r.U32()
	a.Flags = store.Flags(r.U32())
	a.AX, a.AY, a.BX, a.BY, a.Head = r.F32(), r.F32(), r.F32(), r.F32(), r.F32()
	a.Stroke = readRGBA(r)
	a.StrokeWidthPx = r.F32()
	return a, finish(r)
}

func encodeUpsertArrow(w *wire.Writer, a store.Arrow) {
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

func decodeSetDrawOrder(payload []byte) ([]uint32, error) {
	r := wire.NewReader(payload)
	count := r.U32()
	ids := make([]uint32, count)
	for i := range ids {
		ids[i] = r.U32()
	}
	return ids, finish(r)
}

func encodeSetDrawOrder(w *wire.Writer, ids []uint32) {
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		w.U32(id)
	}
}

func decodeSetViewScale(payload []byte) (float32, error) {
	r := wire.NewReader(payload)
	v := r.F32()
	return v, finish(r)
}

func decodeUpsertText(payload []byte) (text.TextRec, error) {
	r := wire.NewReader(payload)
	var rec text.TextRec
	rec.LayerID = r.U32()
	rec.Flags = text.Flags(r.U32())
	rec.AnchorX, rec.AnchorY, rec.Rotation = r.F32(), r.F32(), r.F32()
	rec.Box = text.BoxMode(r.U32())
	rec.Align = text.AlignMode(r.U32())
	rec.ConstraintWidth = r.F32()
	contentLen := r.U32()
	rec.Content = string(r.Bytes(int(contentLen)))
	runCount := r.U32()
	rec.Runs = make([]text.TextRun, runCount)
	for i := range rec.Runs {
		rec.Runs[i] = text.TextRun{
			StartIndex: int(r.U32()),
			Length:     int(r.U32()),
			FontID:     font.ID(r.U32()),
			FontSize:   r.F32(),
			Flags:      text.StyleFlags(r.U16()),
		}
		r.Skip(2) // pad to 4-byte boundary
	}
	return rec, finish(r)
}

func encodeUpsertText(w *wire.Writer, rec text.TextRec) {
	w.U32(rec.LayerID)
	w.U32(uint32(rec.Flags))
	w.F32(rec.AnchorX)
	w.F32(rec.AnchorY)
	w.F32(rec.Rotation)
	w.U32(uint32(rec.Box))
	w.U32(uint32(rec.Align))
	w.F32(rec.ConstraintWidth)
	w.U32(uint32(len(rec.Content)))
	w.RawBytes([]byte(rec.Content))
	w.U32(uint32(len(rec.Runs)))
	for _, run := range rec.Runs {
		w.U32(uint32(run.StartIndex))
		w.U32(uint32(run.Length))
		w.U32(uint32(run.FontID))
		w.F32(run.FontSize)
		w.U16(uint16(run.Flags))
		w.U16(0)
	}
}

func decodeByteOffset(payload []byte) (int, error) {
	r := wire.NewReader(payload)
	v := int(r.U32())
	return v, finish(r)
}

func decodeRange(payload []byte) (int, int, error) {
	r := wire.NewReader(payload)
	lo, hi := int(r.U32()), int(r.U32())
	return lo, hi, finish(r)
}

func decodeInsertTextContent(payload []byte) (int, string, error) {
	r := wire.NewReader(payload)
	at := int(r.U32())
	n := r.U32()
	s := string(r.Bytes(int(n)))
	return at, s, finish(r)
}

// styleOp is the decoded form of an ApplyTextStyle payload: a byte
// range over styleMask with the given mode, plus an optional
// fontId/fontSize override pair encoded as a simplified TLV (a
// present-flag word ahead of each value).
type styleOp struct {
	Lo, Hi int
	Mask   text.StyleFlags
	Mode   text.StyleMode
	Params text.StyleParams
}

func decodeApplyTextStyle(payload []byte) (styleOp, error) {
	r := wire.NewReader(payload)
	var op styleOp
	op.Lo, op.Hi = int(r.U32()), int(r.U32())
	op.Mask = text.StyleFlags(r.U16())
	op.Mode = text.StyleMode(r.U8())
	r.Skip(1) // pad
	if r.U32() != 0 {
		op.Params.HasFontID = true
		op.Params.FontID = font.ID(r.U32())
	}
	if r.U32() != 0 {
		op.Params.HasSize = true
		op.Params.FontSize = r.F32()
	}
	return op, finish(r)
}

func decodeSetTextAlign(payload []byte) (text.AlignMode, error) {
	r := wire.NewReader(payload)
	a := text.AlignMode(r.U32())
	return a, finish(r)
}
