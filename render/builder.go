package render

import (
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/wire"
)

// BufferMeta is the pointer+length+generation view a host polls to
// decide whether it needs to re-upload a buffer to the GPU.
type BufferMeta struct {
	Len        int
	Generation uint64
}

// Builder owns the two vertex buffers and the per-entity ranges into
// them. It knows nothing about draw order or selection bookkeeping;
// the caller supplies the current draw order whenever a rebuild may
// be necessary, keeping this package decoupled from selection.
type Builder struct {
	Store     *store.EntityStore
	ViewScale float32

	tri    []float32
	line   []float32
	ranges map[uint32]EntityRange

	dirty              bool
	pendingFullRebuild bool
	generation         uint64
}

// New returns a Builder over s with an empty buffer state and a
// pending full rebuild (nothing has been tessellated yet).
func New(s *store.EntityStore) *Builder {
	return &Builder{
		Store:              s,
		ViewScale:          1,
		ranges:             make(map[uint32]EntityRange),
		dirty:              true,
		pendingFullRebuild: true,
	}
}

// MarkDirty flags that buffer metadata must be reconciled before the
// next query, without forcing a full rebuild.
func (b *Builder) MarkDirty() { b.dirty = true }

// MarkFullRebuild schedules a full rebuild on the next EnsureFresh,
// used whenever a structural change (draw order, visibility, view
// scale) invalidates the incremental-refresh invariant.
func (b *Builder) MarkFullRebuild() {
	b.dirty = true
	b.pendingFullRebuild = true
}

// SetViewScale updates the scale used to bound circle/polygon
// tessellation sagitta, scheduling a full rebuild if it changed.
func (b *Builder) SetViewScale(scale float32) {
	if scale != b.ViewScale {
		b.ViewScale = scale
		b.MarkFullRebuild()
	}
}

// Generation returns the buffer generation as of the last rebuild or
// incremental patch.
func (b *Builder) Generation() uint64 { return b.generation }

// Clear resets the builder to its empty, freshly-constructed state
// (used by ClearAll and snapshot load).
func (b *Builder) Clear() {
	b.tri = b.tri[:0]
	b.line = b.line[:0]
	b.ranges = make(map[uint32]EntityRange)
	b.MarkFullRebuild()
}

func (b *Builder) entityLayerAndFlags(id uint32, kind wire.Kind) (layerID uint32, flags store.Flags) {
	switch kind {
	case wire.KindRect:
		r, _ := b.Store.FindRect(id)
		return r.LayerID, r.Flags
	case wire.KindLine:
		l, _ := b.Store.FindLine(id)
		return l.LayerID, l.Flags
	case wire.KindPolyline:
		pl, _ := b.Store.FindPolyline(id)
		return pl.LayerID, pl.Flags
	case wire.KindCircle:
		c, _ := b.Store.FindCircle(id)
		return c.LayerID, c.Flags
	case wire.KindPolygon:
		p, _ := b.Store.FindPolygon(id)
		return p.LayerID, p.Flags
	case wire.KindArrow:
		a, _ := b.Store.FindArrow(id)
		return a.LayerID, a.Flags
	}
	return 0, 0
}

// isVisible reports whether id should contribute vertices: the entity
// must exist, its own Visible flag must be set, and its layer (if
// found) must also be Visible.
func (b *Builder) isVisible(id uint32) bool {
	kind, ok := b.Store.Kind(id)
	if !ok {
		return false
	}
	layerID, flags := b.entityLayerAndFlags(id, kind)
	if flags&store.Visible == 0 {
		return false
	}
	if layer, ok := b.Store.FindLayer(layerID); ok && layer.Flags&store.LayerVisible == 0 {
		return false
	}
	return true
}

// tessellate appends id's primitives (if any) to tri/line and returns
// the extended slices. It does not check visibility; callers gate
// that with isVisible.
func (b *Builder) tessellate(id uint32, tri, line []float32) ([]float32, []float32) {
	kind, ok := b.Store.Kind(id)
	if !ok {
		return tri, line
	}
	switch kind {
	case wire.KindRect:
		r, _ := b.Store.FindRect(id)
		tri = appendRectFill(tri, r.X, r.Y, r.W, r.H, r.Fill)
		if r.StrokeEnabled {
			line = appendRectOutline(line, r.X, r.Y, r.W, r.H, r.Stroke)
		}
	case wire.KindLine:
		l, _ := b.Store.FindLine(id)
		if l.Enabled {
			line = appendSegment(line, l.X0, l.Y0, l.X1, l.Y1, l.Color)
		}
	case wire.KindPolyline:
		pl, _ := b.Store.FindPolyline(id)
		if pl.Enabled && pl.Count > 1 {
			pts := b.Store.Points.All()[pl.Offset : pl.Offset+pl.Count]
			for i := 0; i < len(pts)-1; i++ {
				line = appendSegment(line, pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1], pl.Color)
			}
		}
	case wire.KindCircle:
		c, _ := b.Store.FindCircle(id)
		n := circleSegments(c.RX, c.RY, b.ViewScale)
		pts := ellipsePoints(c.CX, c.CY, c.RX, c.RY, c.Rot, c.SX, c.SY, n)
		tri = appendFan(tri, c.CX, c.CY, pts, c.Fill)
		if c.StrokeEnabled {
			line = appendOutline(line, pts, c.Stroke)
		}
	case wire.KindPolygon:
		p, _ := b.Store.FindPolygon(id)
		n := p.Sides
		if n < 3 {
			n = 3
		}
		pts := ellipsePoints(p.CX, p.CY, p.RX, p.RY, p.Rot, p.SX, p.SY, n)
		tri = appendFan(tri, p.CX, p.CY, pts, p.Fill)
		if p.StrokeEnabled {
			line = appendOutline(line, pts, p.Stroke)
		}
	case wire.KindArrow:
		a, _ := b.Store.FindArrow(id)
		line = appendSegment(line, a.AX, a.AY, a.BX, a.BY, a.Stroke)
		tri, line = appendArrowHead(tri, line, a.AX, a.AY, a.BX, a.BY, a.Head, a.Stroke)
	}
	return tri, line
}

// Rebuild recomputes both buffers from scratch, iterating drawOrder
// back-to-front (drawOrder is already stored back-to-front, so no
// reversal is needed). Every entity, visible or not, gets a range
// entry so later patching never has to special-case a missing one.
func (b *Builder) Rebuild(drawOrder []uint32) {
	b.tri = b.tri[:0]
	b.line = b.line[:0]
	b.ranges = make(map[uint32]EntityRange, len(drawOrder))
	for _, id := range drawOrder {
		triStart, lineStart := len(b.tri), len(b.line)
		if b.isVisible(id) {
			b.tri, b.line = b.tessellate(id, b.tri, b.line)
		}
		b.ranges[id] = EntityRange{
			Tri:  Range{triStart, len(b.tri)},
			Line: Range{lineStart, len(b.line)},
		}
	}
	b.pendingFullRebuild = false
	b.dirty = false
	b.generation++
}

// EnsureFresh rebuilds from drawOrder if a full rebuild is pending,
// then clears the dirty flag. Called by buffer-meta queries.
func (b *Builder) EnsureFresh(drawOrder []uint32) {
	if b.pendingFullRebuild {
		b.Rebuild(drawOrder)
		return
	}
	b.dirty = false
}

// RefreshEntityRenderRange re-tessellates id in place when its new
// vertex counts match its existing range widths in both buffers.
// Otherwise it schedules a full rebuild on the next EnsureFresh and
// leaves the stale buffers untouched until then.
func (b *Builder) RefreshEntityRenderRange(id uint32) {
	old, ok := b.ranges[id]
	if !ok {
		b.MarkFullRebuild()
		return
	}
	var newTri, newLine []float32
	if b.isVisible(id) {
		newTri, newLine = b.tessellate(id, nil, nil)
	}
	if len(newTri) != old.Tri.Width() || len(newLine) != old.Line.Width() {
		b.MarkFullRebuild()
		return
	}
	copy(b.tri[old.Tri.FirstFloat:old.Tri.LastFloat], newTri)
	copy(b.line[old.Line.FirstFloat:old.Line.LastFloat], newLine)
	b.dirty = true
	b.generation++
}

// PositionBufferMeta returns the triangle buffer's current length and
// generation, rebuilding first if a structural change is pending.
func (b *Builder) PositionBufferMeta(drawOrder []uint32) BufferMeta {
	b.EnsureFresh(drawOrder)
	return BufferMeta{Len: len(b.tri), Generation: b.generation}
}

// LineBufferMeta is PositionBufferMeta's line-buffer counterpart.
func (b *Builder) LineBufferMeta(drawOrder []uint32) BufferMeta {
	b.EnsureFresh(drawOrder)
	return BufferMeta{Len: len(b.line), Generation: b.generation}
}

// TriangleBuffer returns the current triangle buffer. Callers should
// query PositionBufferMeta first to ensure it is fresh.
func (b *Builder) TriangleBuffer() []float32 { return b.tri }

// LineBuffer is TriangleBuffer's line-buffer counterpart.
func (b *Builder) LineBuffer() []float32 { return b.line }

// RangeOf returns the render range recorded for id, if any.
func (b *Builder) RangeOf(id uint32) (EntityRange, bool) {
	r, ok := b.ranges[id]
	return r, ok
}
