package history

import (
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/wire"
)

const historyVersion = 1

const (
	flagHasLayers = 1 << iota
	flagHasDrawOrder
	flagHasSelection
)

// EncodeBytes writes the versioned linear format described in spec
// §4.7 "Serialization". This is the exact blob persisted as the
// optional HIST snapshot section.
func (m *Manager) EncodeBytes() []byte {
	w := wire.NewWriter(256)
	w.U32(historyVersion)
	w.U32(uint32(len(m.entries)))
	w.U32(uint32(m.cursor))
	w.U32(0) // reserved
	for _, e := range m.entries {
		encodeEntry(w, e)
	}
	return w.Bytes()
}

// DecodeBytes is the exact inverse of EncodeBytes.
func DecodeBytes(b []byte) (*Manager, error) {
	r := wire.NewReader(b)
	version := r.U32()
	if version != historyVersion {
		return nil, wire.NewError(wire.UnsupportedVersion, "history version")
	}
	entryCount := r.U32()
	cursor := r.U32()
	r.U32() // reserved
	m := &Manager{entries: make([]HistoryEntry, 0, entryCount), cursor: int(cursor)}
	for i := uint32(0); i < entryCount; i++ {
		e, err := decodeEntry(r)
		if err != nil {
			return nil, err
		}
		m.entries = append(m.entries, e)
	}
	if r.Truncated() {
		return nil, wire.NewError(wire.BufferTruncated, "history buffer")
	}
	return m, nil
}

func encodeEntry(w *wire.Writer, e HistoryEntry) {
	var flags uint32
	if e.HasLayers {
		flags |= flagHasLayers
	}
	if e.HasDrawOrder {
		flags |= flagHasDrawOrder
	}
	if e.HasSelection {
		flags |= flagHasSelection
	}
	w.U32(flags)
	w.U32(e.NextIDBefore)
	w.U32(e.NextIDAfter)
	w.U32(uint32(e.Generation))
	w.U32(uint32(e.Generation >> 32))

	if e.HasLayers {
		encodeLayerList(w, e.LayersBefore)
		encodeLayerList(w, e.LayersAfter)
	}
	if e.HasDrawOrder {
		encodeIDList(w, e.DrawOrderBefore)
		encodeIDList(w, e.DrawOrderAfter)
	}
	if e.HasSelection {
		encodeIDList(w, e.SelectionBefore)
		encodeIDList(w, e.SelectionAfter)
	}

	w.U32(uint32(len(e.Entities)))
	for _, ch := range e.Entities {
		w.U32(ch.ID)
		w.U8(boolByte(ch.ExistedBefore))
		w.U8(boolByte(ch.ExistedAfter))
		w.U16(0) // pad
		if ch.ExistedBefore {
			encodeEntitySnapshot(w, ch.Before)
		}
		if ch.ExistedAfter {
			encodeEntitySnapshot(w, ch.After)
		}
	}
}

func decodeEntry(r *wire.Reader) (HistoryEntry, error) {
	var e HistoryEntry
	flags := r.U32()
	e.HasLayers = flags&flagHasLayers != 0
	e.HasDrawOrder = flags&flagHasDrawOrder != 0
	e.HasSelection = flags&flagHasSelection != 0
	e.NextIDBefore = r.U32()
	e.NextIDAfter = r.U32()
	lo := r.U32()
	hi := r.U32()
	e.Generation = uint64(hi)<<32 | uint64(lo)

	if e.HasLayers {
		e.LayersBefore = decodeLayerList(r)
		e.LayersAfter = decodeLayerList(r)
	}
	if e.HasDrawOrder {
		e.DrawOrderBefore = decodeIDList(r)
		e.DrawOrderAfter = decodeIDList(r)
	}
	if e.HasSelection {
		e.SelectionBefore = decodeIDList(r)
		e.SelectionAfter = decodeIDList(r)
	}

	count := r.U32()
	e.Entities = make([]EntityChange, 0, count)
	for i := uint32(0); i < count; i++ {
		var ch EntityChange
		ch.ID = r.U32()
		ch.ExistedBefore = r.U8() != 0
		ch.ExistedAfter = r.U8() != 0
		r.U16() // pad
		if ch.ExistedBefore {
			ch.Before = decodeEntitySnapshot(r)
		}
		if ch.ExistedAfter {
			ch.After = decodeEntitySnapshot(r)
		}
		e.Entities = append(e.Entities, ch)
	}
	if r.Truncated() {
		return e, wire.NewError(wire.BufferTruncated, "history entry")
	}
	return e, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func encodeIDList(w *wire.Writer, ids []uint32) {
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		w.U32(id)
	}
}

func decodeIDList(r *wire.Reader) []uint32 {
	n := r.U32()
	out := make([]uint32, 0, n)
	for i := uint32(0); i < n; i++ {
		out = append(out, r.U32())
	}
	return out
}

func encodeRGBA(w *wire.Writer, c geom.RGBA) {
	for _, v := range c {
		w.F32(v)
	}
}

func decodeRGBA(r *wire.Reader) geom.RGBA {
	var c geom.RGBA
	for i := range c {
		c[i] = r.F32()
	}
	return c
}

func encodeLayerList(w *wire.Writer, layers []store.Layer) {
	w.U32(uint32(len(layers)))
	for _, l := range layers {
		w.U32(l.ID)
		w.U32(uint32(l.Order))
		w.U8(uint8(l.Flags))
		w.U8(0)
		w.U16(0)
		nameBytes := []byte(l.Name)
		w.U32(uint32(len(nameBytes)))
		w.RawBytes(nameBytes)
		encodeRGBA(w, l.Style.Stroke)
		encodeRGBA(w, l.Style.Fill)
		encodeRGBA(w, l.Style.TextColor)
		encodeRGBA(w, l.Style.TextBackground)
	}
}

func decodeLayerList(r *wire.Reader) []store.Layer {
	n := r.U32()
	out := make([]store.Layer, 0, n)
	for i := uint32(0); i < n; i++ {
		var l store.Layer
		l.ID = r.U32()
		l.Order = int(r.U32())
		l.Flags = store.LayerFlags(r.U8())
		r.U8()
		r.U16()
		nameLen := r.U32()
		l.Name = string(r.Bytes(int(nameLen)))
		l.Style.Stroke = decodeRGBA(r)
		l.Style.Fill = decodeRGBA(r)
		l.Style.TextColor = decodeRGBA(r)
		l.Style.TextBackground = decodeRGBA(r)
		out = append(out, l)
	}
	return out
}

// encodeEntitySnapshot writes a kind tag followed by type-specific
// fields mirroring the store record layouts (spec §4.7 "Entity
// snapshots encode by kind tag followed by type-specific fields
// mirroring §3").
func encodeEntitySnapshot(w *wire.Writer, s EntitySnapshot) {
	w.U8(uint8(s.Kind))
	switch s.Kind {
	case wire.KindRect:
		r := s.Rect
		encodeCommon(w, r.ID, r.LayerID, uint8(r.Flags))
		w.F32(r.X)
		w.F32(r.Y)
		w.F32(r.W)
		w.F32(r.H)
		encodeRGBA(w, r.Fill)
		encodeRGBA(w, r.Stroke)
		w.U8(boolByte(r.StrokeEnabled))
		w.F32(r.StrokeWidthPx)
	case wire.KindLine:
		l := s.Line
		encodeCommon(w, l.ID, l.LayerID, uint8(l.Flags))
		w.F32(l.X0)
		w.F32(l.Y0)
		w.F32(l.X1)
		w.F32(l.Y1)
		encodeRGBA(w, l.Color)
		w.U8(boolByte(l.Enabled))
		w.F32(l.StrokeWidthPx)
	case wire.KindPolyline:
		pl := s.Polyline
		encodeCommon(w, pl.ID, pl.LayerID, uint8(pl.Flags))
		encodeRGBA(w, pl.Color)
		w.U8(boolByte(pl.Enabled))
		w.F32(pl.StrokeWidthPx)
		w.U32(uint32(len(s.Points)))
		for _, p := range s.Points {
			w.F32(p[0])
			w.F32(p[1])
		}
	case wire.KindCircle:
		c := s.Circle
		encodeCommon(w, c.ID, c.LayerID, uint8(c.Flags))
		w.F32(c.CX)
		w.F32(c.CY)
		w.F32(c.RX)
		w.F32(c.RY)
		w.F32(c.Rot)
		w.F32(c.SX)
		w.F32(c.SY)
		encodeRGBA(w, c.Fill)
		encodeRGBA(w, c.Stroke)
		w.U8(boolByte(c.StrokeEnabled))
		w.F32(c.StrokeWidthPx)
	case wire.KindPolygon:
		p := s.Polygon
		encodeCommon(w, p.ID, p.LayerID, uint8(p.Flags))
		w.F32(p.CX)
		w.F32(p.CY)
		w.F32(p.RX)
		w.F32(p.RY)
		w.F32(p.Rot)
		w.F32(p.SX)
		w.F32(p.SY)
		w.U32(uint32(p.Sides))
		encodeRGBA(w, p.Fill)
		encodeRGBA(w, p.Stroke)
		w.U8(boolByte(p.StrokeEnabled))
		w.F32(p.StrokeWidthPx)
	case wire.KindArrow:
		a := s.Arrow
		encodeCommon(w, a.ID, a.LayerID, uint8(a.Flags))
		w.F32(a.AX)
		w.F32(a.AY)
		w.F32(a.BX)
		w.F32(a.BY)
		w.F32(a.Head)
		encodeRGBA(w, a.Stroke)
		w.F32(a.StrokeWidthPx)
	}
}

func decodeEntitySnapshot(r *wire.Reader) EntitySnapshot {
	kind := wire.Kind(r.U8())
	switch kind {
	case wire.KindRect:
		var rec store.Rect
		rec.ID, rec.LayerID, rec.Flags = decodeCommon(r)
		rec.X = r.F32()
		rec.Y = r.F32()
		rec.W = r.F32()
		rec.H = r.F32()
		rec.Fill = decodeRGBA(r)
		rec.Stroke = decodeRGBA(r)
		rec.StrokeEnabled = r.U8() != 0
		rec.StrokeWidthPx = r.F32()
		return EntitySnapshot{Kind: kind, Rect: rec}
	case wire.KindLine:
		var rec store.Line
		rec.ID, rec.LayerID, rec.Flags = decodeCommon(r)
		rec.X0 = r.F32()
		rec.Y0 = r.F32()
		rec.X1 = r.F32()
		rec.Y1 = r.F32()
		rec.Color = decodeRGBA(r)
		rec.Enabled = r.U8() != 0
		rec.StrokeWidthPx = r.F32()
		return EntitySnapshot{Kind: kind, Line: rec}
	case wire.KindPolyline:
		var rec store.Polyline
		rec.ID, rec.LayerID, rec.Flags = decodeCommon(r)
		rec.Color = decodeRGBA(r)
		rec.Enabled = r.U8() != 0
		rec.StrokeWidthPx = r.F32()
		n := r.U32()
		pts := make([]geom.Vec2, 0, n)
		for i := uint32(0); i < n; i++ {
			pts = append(pts, geom.Vec2{r.F32(), r.F32()})
		}
		rec.Count = len(pts)
		return EntitySnapshot{Kind: kind, Polyline: rec, Points: pts}
	case wire.KindCircle:
		var rec store.Circle
		rec.ID, rec.LayerID, rec.Flags = decodeCommon(r)
		rec.CX = r.F32()
		rec.CY = r.F32()
		rec.RX = r.F32()
		rec.RY = r.F32()
		rec.Rot = r.F32()
		rec.SX = r.F32()
		rec.SY = r.F32()
		rec.Fill = decodeRGBA(r)
		rec.Stroke = decodeRGBA(r)
		rec.StrokeEnabled = r.U8() != 0
		rec.StrokeWidthPx = r.F32()
		return EntitySnapshot{Kind: kind, Circle: rec}
	case wire.KindPolygon:
		var rec store.Polygon
		rec.ID, rec.LayerID, rec.Flags = decodeCommon(r)
		rec.CX = r.F32()
		rec.CY = r.F32()
		rec.RX = r.F32()
		rec.RY = r.F32()
		rec.Rot = r.F32()
		rec.SX = r.F32()
		rec.SY = r.F32()
		rec.Sides = int(r.U32())
		rec.Fill = decodeRGBA(r)
		rec.Stroke = decodeRGBA(r)
		rec.StrokeEnabled = r.U8() != 0
		rec.StrokeWidthPx = r.F32()
		return EntitySnapshot{Kind: kind, Polygon: rec}
	case wire.KindArrow:
		var rec store.Arrow
		rec.ID, rec.LayerID, rec.Flags = decodeCommon(r)
		rec.AX = r.F32()
		rec.AY = r.F32()
		rec.BX = r.F32()
		rec.BY = r.F32()
		rec.Head = r.F32()
		rec.Stroke = decodeRGBA(r)
		rec.StrokeWidthPx = r.F32()
		return EntitySnapshot{Kind: kind, Arrow: rec}
	}
	return EntitySnapshot{}
}

func encodeCommon(w *wire.Writer, id, layerID uint32, flags uint8) {
	w.U32(id)
	w.U32(layerID)
	w.U8(flags)
	w.U8(0)
	w.U16(0)
}

func decodeCommon(r *wire.Reader) (id, layerID uint32, flags store.Flags) {
	id = r.U32()
	layerID = r.U32()
	flags = store.Flags(r.U8())
	r.U8()
	r.U16()
	return
}
