package interaction

import (
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/wire"
)

// BeginMove snapshots ids and starts a Move transform at the given
// world-space pointer position (spec §4.6 "Begin").
func (s *Session) BeginMove(ids []uint32, startX, startY float32, opts SnapOptions) {
	s.beginCommon(Move, ids, startX, startY, opts)
	s.logEvent(logBegin, ids, startX, startY)
}

// BeginVertexDrag snapshots the single Polyline id and starts
// dragging the point at vertexIndex.
func (s *Session) BeginVertexDrag(id uint32, vertexIndex int, startX, startY float32, opts SnapOptions) {
	s.beginCommon(VertexDrag, []uint32{id}, startX, startY, opts)
	s.specificID = id
	s.vertexIndex = vertexIndex
	s.logEvent(logBegin, []uint32{id}, startX, startY)
}

// BeginResize snapshots ids and starts a Resize transform, recording
// which handle corner (0..3) is being dragged.
func (s *Session) BeginResize(ids []uint32, corner int, startX, startY float32, opts SnapOptions) {
	s.beginCommon(Resize, ids, startX, startY, opts)
	s.resizeCorner = corner
	s.logEvent(logBegin, ids, startX, startY)
}

func (s *Session) beginCommon(mode Mode, ids []uint32, startX, startY float32, opts SnapOptions) {
	s.state = TransformActive
	s.mode = mode
	s.startX, s.startY = startX, startY
	s.snap = opts
	s.touched = nil
	s.snapshots = s.snapshots[:0]
	for _, id := range ids {
		if snap, ok := snapshotOf(s.store, id); ok {
			s.snapshots = append(s.snapshots, snap)
		}
	}
}

// Update advances the active transform to the new pointer position,
// applying snapping, mutating entities and refreshing their spatial
// AABB (spec §4.6 "Update").
func (s *Session) Update(pointerX, pointerY float32) {
	if s.state != TransformActive {
		return
	}
	px, py := applyGridSnap(pointerX, pointerY, s.snap)
	dx, dy := px-s.startX, py-s.startY

	switch s.mode {
	case Move:
		for _, snap := range s.snapshots {
			moved := snap
			moved.X, moved.Y = snap.X+dx, snap.Y+dy
			switch snap.Kind {
			case wire.KindCircle, wire.KindPolygon:
				// Stored as (cx,cy,rx,ry): only the center translates.
				moved.W, moved.H = snap.W, snap.H
			case wire.KindRect:
				// Stored as (x,y,w,h): only the origin translates.
				moved.W, moved.H = snap.W, snap.H
			default:
				moved.W, moved.H = snap.W+dx, snap.H+dy
			}
			if len(snap.Points) > 0 {
				moved.Points = make([]geom.Vec2, len(snap.Points))
				for i, p := range snap.Points {
					moved.Points[i] = geom.Vec2{p[0] + dx, p[1] + dy}
				}
			}
			s.writeBack(moved)
		}
	case VertexDrag:
		for _, snap := range s.snapshots {
			if snap.ID != s.specificID || len(snap.Points) == 0 {
				continue
			}
			moved := snap
			moved.Points = append([]geom.Vec2(nil), snap.Points...)
			if s.vertexIndex >= 0 && s.vertexIndex < len(moved.Points) {
				orig := snap.Points[s.vertexIndex]
				moved.Points[s.vertexIndex] = geom.Vec2{orig[0] + dx, orig[1] + dy}
			}
			s.writeBack(moved)
		}
	case Resize:
		for _, snap := range s.snapshots {
			s.writeBack(resized(snap, s.resizeCorner, dx, dy))
		}
	}
	s.logEvent(logUpdate, nil, pointerX, pointerY)
}

const minResizeDim = 1e-3

// resized computes the new anchor pair for snap given the opposite
// corner is fixed and the dragged corner moves by (dx, dy), enforcing
// a minimum size (spec §4.6 "Update", Resize bullet).
func resized(snap TransformSnapshot, corner int, dx, dy float32) TransformSnapshot {
	out := snap
	switch snap.Kind {
	case wire.KindCircle, wire.KindPolygon: // resize scales radii symmetrically.
		w := snap.W + dx
		h := snap.H + dy
		if w < minResizeDim {
			w = minResizeDim
		}
		if h < minResizeDim {
			h = minResizeDim
		}
		out.W, out.H = w, h
		return out
	}
	// Rect-like: (X,Y) top-left, (W,H) = (width, height). The
	// opposite corner from the dragged handle stays fixed.
	x0, y0, x1, y1 := snap.X, snap.Y, snap.X+snap.W, snap.Y+snap.H
	switch corner {
	case 0: // top-left dragged; bottom-right fixed
		x0 += dx
		y0 += dy
	case 1: // top-right dragged; bottom-left fixed
		x1 += dx
		y0 += dy
	case 2: // bottom-right dragged; top-left fixed
		x1 += dx
		y1 += dy
	case 3: // bottom-left dragged; top-right fixed
		x0 += dx
		y1 += dy
	}
	if x1-x0 < minResizeDim {
		x1 = x0 + minResizeDim
	}
	if y1-y0 < minResizeDim {
		y1 = y0 + minResizeDim
	}
	out.X, out.Y = x0, y0
	out.W, out.H = x1-x0, y1-y0
	return out
}
