package snapshot

import (
	"sort"

	"github.com/go-text/typesetting/font"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

func decodeTextRun(r *wire.Reader) text.TextRun {
	return text.TextRun{
		StartIndex: int(r.U32()),
		Length:     int(r.U32()),
		FontID:     font.ID(r.U32()),
		FontSize:   r.F32(),
		Flags:      text.StyleFlags(r.U32()),
	}
}

func finishSection(r *wire.Reader) error {
	if r.Truncated() {
		return wire.NewError(wire.BufferTruncated, "truncated snapshot section")
	}
	if r.Remaining() != 0 {
		return wire.NewError(wire.InvalidPayloadSize, "trailing bytes in snapshot section")
	}
	return nil
}

// --- ENTS ---

func encodeENTS(s *store.EntityStore) []byte {
	w := wire.NewWriter(512)

	rects := append([]store.Rect(nil), s.Rects()...)
	sort.Slice(rects, func(i, j int) bool { return rects[i].ID < rects[j].ID })
	w.U32(uint32(len(rects)))
	for _, r := range rects {
		encodeRect(w, r)
	}

	lines := append([]store.Line(nil), s.Lines()...)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	w.U32(uint32(len(lines)))
	for _, l := range lines {
		encodeLine(w, l)
	}

	polys := append([]store.Polyline(nil), s.Polylines()...)
	sort.Slice(polys, func(i, j int) bool { return polys[i].ID < polys[j].ID })
	w.U32(uint32(len(polys)))
	for _, pl := range polys {
		encodePolyline(w, pl)
	}

	circles := append([]store.Circle(nil), s.Circles()...)
	sort.Slice(circles, func(i, j int) bool { return circles[i].ID < circles[j].ID })
	w.U32(uint32(len(circles)))
	for _, c := range circles {
		encodeCircle(w, c)
	}

	polygons := append([]store.Polygon(nil), s.Polygons()...)
	sort.Slice(polygons, func(i, j int) bool { return polygons[i].ID < polygons[j].ID })
	w.U32(uint32(len(polygons)))
	for _, p := range polygons {
		encodePolygon(w, p)
	}

	arrows := append([]store.Arrow(nil), s.Arrows()...)
	sort.Slice(arrows, func(i, j int) bool { return arrows[i].ID < arrows[j].ID })
	w.U32(uint32(len(arrows)))
	for _, a := range arrows {
		encodeArrow(w, a)
	}

	pts := s.Points.All()
	w.U32(uint32(len(pts)))
	for _, p := range pts {
		w.F32(p[0])
		w.F32(p[1])
	}

	return w.Bytes()
}

func decodeENTS(payload []byte, into *store.EntityStore) error {
	r := wire.NewReader(payload)
	n := r.U32()
	for i := uint32(0); i < n; i++ {
		into.LoadRect(decodeRect(r))
	}
	n = r.U32()
	for i := uint32(0); i < n; i++ {
		into.LoadLine(decodeLine(r))
	}
	n = r.U32()
	for i := uint32(0); i < n; i++ {
		into.LoadPolyline(decodePolyline(r))
	}
	n = r.U32()
	for i := uint32(0); i < n; i++ {
		into.LoadCircle(decodeCircle(r))
	}
	n = r.U32()
	for i := uint32(0); i < n; i++ {
		into.LoadPolygon(decodePolygon(r))
	}
	n = r.U32()
	for i := uint32(0); i < n; i++ {
		into.LoadArrow(decodeArrow(r))
	}
	n = r.U32()
	pts := make([]geom.Vec2, n)
	for i := range pts {
		pts[i] = geom.Vec2{r.F32(), r.F32()}
	}
	into.Points.SetAll(pts)
	return finishSection(r)
}

// --- LAYR ---

func encodeLAYR(s *store.EntityStore) []byte {
	layers := append([]store.Layer(nil), s.Layers()...)
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Order < layers[j].Order })
	w := wire.NewWriter(64 * (len(layers) + 1))
	w.U32(uint32(len(layers)))
	for _, l := range layers {
		w.U32(l.ID)
		w.U32(uint32(l.Order))
		w.U32(uint32(l.Flags))
		nameBytes := []byte(l.Name)
		w.U32(uint32(len(nameBytes)))
		w.RawBytes(nameBytes)
		writeRGBA(w, l.Style.Stroke)
		writeRGBA(w, l.Style.Fill)
		writeRGBA(w, l.Style.TextColor)
		writeRGBA(w, l.Style.TextBackground)
	}
	return w.Bytes()
}

func decodeLAYR(payload []byte, into *store.EntityStore) error {
	r := wire.NewReader(payload)
	n := r.U32()
	for i := uint32(0); i < n; i++ {
		var l store.Layer
		l.ID = r.U32()
		l.Order = int(r.U32())
		l.Flags = store.LayerFlags(r.U32())
		nameLen := r.U32()
		l.Name = string(r.Bytes(int(nameLen)))
		l.Style.Stroke = readRGBA(r)
		l.Style.Fill = readRGBA(r)
		l.Style.TextColor = readRGBA(r)
		l.Style.TextBackground = readRGBA(r)
		into.UpsertLayer(l)
	}
	return finishSection(r)
}

// --- ORDR / SELC ---

func encodeIDVector(ids []uint32) []byte {
	w := wire.NewWriter(4 + 4*len(ids))
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		w.U32(id)
	}
	return w.Bytes()
}

func decodeIDVector(payload []byte) ([]uint32, error) {
	r := wire.NewReader(payload)
	n := r.U32()
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = r.U32()
	}
	return ids, finishSection(r)
}

// --- TEXT ---

func encodeTEXT(t *text.Store) []byte {
	recs := append([]*text.TextRec(nil), t.All()...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	w := wire.NewWriter(128 * (len(recs) + 1))
	w.U32(uint32(len(recs)))
	for _, rec := range recs {
		w.U32(rec.ID)
		w.U32(rec.LayerID)
		w.U32(uint32(rec.Flags))
		w.F32(rec.AnchorX)
		w.F32(rec.AnchorY)
		w.F32(rec.Rotation)
		w.U32(uint32(rec.Box))
		w.U32(uint32(rec.Align))
		w.F32(rec.ConstraintWidth)
		w.U32(uint32(rec.CaretByte))
		w.U32(uint32(rec.SelectionAnchor))
		w.U32(boolU32(rec.HasSelection))
		w.F32(rec.BoundsX)
		w.F32(rec.BoundsY)
		w.F32(rec.BoundsW)
		w.F32(rec.BoundsH)
		w.U32(uint32(len(rec.Runs)))
		for _, run := range rec.Runs {
			w.U32(uint32(run.StartIndex))
			w.U32(uint32(run.Length))
			w.U32(uint32(run.FontID))
			w.F32(run.FontSize)
			w.U32(uint32(run.Flags))
		}
		content := []byte(rec.Content)
		w.U32(uint32(len(content)))
		w.RawBytes(content)
	}
	return w.Bytes()
}

func decodeTEXT(payload []byte, into *text.Store) error {
	r := wire.NewReader(payload)
	n := r.U32()
	for i := uint32(0); i < n; i++ {
		var rec text.TextRec
		rec.ID = r.U32()
		rec.LayerID = r.U32()
		rec.Flags = text.Flags(r.U32())
		rec.AnchorX, rec.AnchorY, rec.Rotation = r.F32(), r.F32(), r.F32()
		rec.Box = text.BoxMode(r.U32())
		rec.Align = text.AlignMode(r.U32())
		rec.ConstraintWidth = r.F32()
		rec.CaretByte = int(r.U32())
		rec.SelectionAnchor = int(r.U32())
		rec.HasSelection = r.U32() != 0
		rec.BoundsX, rec.BoundsY, rec.BoundsW, rec.BoundsH = r.F32(), r.F32(), r.F32(), r.F32()
		runCount := r.U32()
		rec.Runs = make([]text.TextRun, runCount)
		for j := range rec.Runs {
			rec.Runs[j] = decodeTextRun(r)
		}
		contentLen := r.U32()
		rec.Content = string(r.Bytes(int(contentLen)))
		into.UpsertText(rec.ID, rec)
	}
	return finishSection(r)
}

// --- NIDX ---

func encodeNIDX(nextID uint32) []byte {
	w := wire.NewWriter(4)
	w.U32(nextID)
	return w.Bytes()
}

func decodeNIDX(payload []byte) (uint32, error) {
	r := wire.NewReader(payload)
	v := r.U32()
	return v, finishSection(r)
}

// --- STYL ---

func encodeSTYL(s *store.EntityStore) []byte {
	overrides := s.AllOverrides()
	ids := make([]uint32, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	w := wire.NewWriter(80 * (len(ids) + 1))
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		o := overrides[id]
		w.U32(id)
		w.U32(boolU32(o.HasStroke))
		writeRGBA(w, o.Stroke)
		w.U32(boolU32(o.HasFill))
		writeRGBA(w, o.Fill)
		w.U32(boolU32(o.HasTextColor))
		writeRGBA(w, o.TextColor)
		w.U32(boolU32(o.HasTextBackground))
		writeRGBA(w, o.TextBackground)
	}
	return w.Bytes()
}

func decodeSTYL(payload []byte, into *store.EntityStore) error {
	r := wire.NewReader(payload)
	n := r.U32()
	for i := uint32(0); i < n; i++ {
		id := r.U32()
		var o store.StyleOverride
		o.HasStroke = r.U32() != 0
		o.Stroke = readRGBA(r)
		o.HasFill = r.U32() != 0
		o.Fill = readRGBA(r)
		o.HasTextColor = r.U32() != 0
		o.TextColor = readRGBA(r)
		o.HasTextBackground = r.U32() != 0
		o.TextBackground = readRGBA(r)
		into.SetStyleOverride(id, o)
	}
	return finishSection(r)
}
