// Package interaction implements the move/vertex-drag/resize
// interaction session state machine and its replay log (spec §4.6).
package interaction

import (
	"math"

	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/spatial"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/wire"
)

// Mode is the active transform kind while a session is TransformActive.
type Mode int

const (
	Move Mode = iota
	VertexDrag
	EdgeDrag
	Resize
)

// State is the session's finite-state-machine state.
type State int

const (
	Idle State = iota
	TransformActive
	DraftActive
)

// Opcode tags a commit payload's interpretation.
type Opcode int

const (
	OpMove Opcode = iota
	OpVertexSet
	OpResize
)

// TransformSnapshot captures the pre- or post-transform geometry of
// one affected entity, generalized across kinds: (X,Y) and (W,H) are
// the kind's two anchor pairs (e.g. Rect's x,y,w,h; Line's two
// endpoints; Circle/Polygon's center+radii). Points holds a copy of
// a Polyline's vertex list when relevant.
type TransformSnapshot struct {
	ID     uint32
	Kind   wire.Kind
	X, Y   float32
	W, H   float32
	Points []geom.Vec2
}

// SnapOptions controls the snapping behavior applied during Update.
type SnapOptions struct {
	GridEnabled     bool
	GridSize        float32
	TolerancePx     float32
	EndpointEnabled bool
	MidpointEnabled bool
	CenterEnabled   bool
	NearestEnabled  bool
}

// Session is the single active interaction (spec §4.6). Only one of
// Transform or Draft may be active at a time, matching the FSM.
type Session struct {
	store *store.EntityStore
	grid  *spatial.Grid

	state State
	mode  Mode

	snapshots    []TransformSnapshot
	startX       float32
	startY       float32
	specificID   uint32
	vertexIndex  int
	resizeCorner int
	snap         SnapOptions

	touched []uint32

	log *TransformLog
}

// New returns an idle session bound to store and grid, with replay
// logging disabled.
func New(s *store.EntityStore, g *spatial.Grid) *Session {
	return &Session{store: s, grid: g, state: Idle}
}

// EnableLog turns on the transform log with the given entry and id
// capacities (spec §4.6 "Transform log").
func (s *Session) EnableLog(entryCap, idCap int) { s.log = newTransformLog(entryCap, idCap) }

// Log returns the transform log, or nil if logging is disabled.
func (s *Session) Log() *TransformLog { return s.log }

// State reports the current FSM state.
func (s *Session) State() State { return s.state }

func snapshotOf(st *store.EntityStore, id uint32) (TransformSnapshot, bool) {
	kind, ok := st.Kind(id)
	if !ok {
		return TransformSnapshot{}, false
	}
	switch kind {
	case wire.KindRect:
		r, _ := st.FindRect(id)
		return TransformSnapshot{ID: id, Kind: kind, X: r.X, Y: r.Y, W: r.W, H: r.H}, true
	case wire.KindLine:
		l, _ := st.FindLine(id)
		return TransformSnapshot{ID: id, Kind: kind, X: l.X0, Y: l.Y0, W: l.X1, H: l.Y1}, true
	case wire.KindCircle:
		c, _ := st.FindCircle(id)
		return TransformSnapshot{ID: id, Kind: kind, X: c.CX, Y: c.CY, W: c.RX, H: c.RY}, true
	case wire.KindPolygon:
		p, _ := st.FindPolygon(id)
		return TransformSnapshot{ID: id, Kind: kind, X: p.CX, Y: p.CY, W: p.RX, H: p.RY}, true
	case wire.KindArrow:
		a, _ := st.FindArrow(id)
		return TransformSnapshot{ID: id, Kind: kind, X: a.AX, Y: a.AY, W: a.BX, H: a.BY}, true
	case wire.KindPolyline:
		pl, _ := st.FindPolyline(id)
		pts := append([]geom.Vec2(nil), st.Points.Slice(pl.Offset, pl.Count)...)
		return TransformSnapshot{ID: id, Kind: kind, Points: pts}, true
	default:
		return TransformSnapshot{}, false
	}
}

// writeBack applies snap's X/Y/W/H or Points back into the store and
// refreshes the entity's spatial AABB.
func (s *Session) writeBack(snap TransformSnapshot) {
	switch snap.Kind {
	case wire.KindRect:
		r, ok := s.store.FindRect(snap.ID)
		if !ok {
			return
		}
		r.X, r.Y, r.W, r.H = snap.X, snap.Y, snap.W, snap.H
		s.refreshAABB(snap.ID, geom.AABB{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H})
	case wire.KindLine:
		l, ok := s.store.FindLine(snap.ID)
		if !ok {
			return
		}
		l.X0, l.Y0, l.X1, l.Y1 = snap.X, snap.Y, snap.W, snap.H
		s.refreshAABB(snap.ID, lineAABB(l.X0, l.Y0, l.X1, l.Y1))
	case wire.KindCircle:
		c, ok := s.store.FindCircle(snap.ID)
		if !ok {
			return
		}
		c.CX, c.CY, c.RX, c.RY = snap.X, snap.Y, snap.W, snap.H
		s.refreshAABB(snap.ID, geom.AABB{MinX: c.CX - c.RX, MinY: c.CY - c.RY, MaxX: c.CX + c.RX, MaxY: c.CY + c.RY})
	case wire.KindPolygon:
		p, ok := s.store.FindPolygon(snap.ID)
		if !ok {
			return
		}
		p.CX, p.CY, p.RX, p.RY = snap.X, snap.Y, snap.W, snap.H
		s.refreshAABB(snap.ID, geom.AABB{MinX: p.CX - p.RX, MinY: p.CY - p.RY, MaxX: p.CX + p.RX, MaxY: p.CY + p.RY})
	case wire.KindArrow:
		a, ok := s.store.FindArrow(snap.ID)
		if !ok {
			return
		}
		a.AX, a.AY, a.BX, a.BY = snap.X, snap.Y, snap.W, snap.H
		s.refreshAABB(snap.ID, lineAABB(a.AX, a.AY, a.BX, a.BY))
	case wire.KindPolyline:
		pl, ok := s.store.FindPolyline(snap.ID)
		if !ok {
			return
		}
		s.store.UpsertPolyline(snap.ID, *pl, snap.Points)
		box := geom.Empty()
		for _, p := range snap.Points {
			box = box.Extend(p[0], p[1])
		}
		s.refreshAABB(snap.ID, box)
	}
}

func lineAABB(x0, y0, x1, y1 float32) geom.AABB {
	return geom.Empty().Extend(x0, y0).Extend(x1, y1)
}

func (s *Session) refreshAABB(id uint32, box geom.AABB) {
	if s.grid != nil {
		s.grid.Update(id, box)
	}
	s.touched = append(s.touched, id)
}

// applyGridSnap rounds (x, y) to the nearest multiple of opts.GridSize.
func applyGridSnap(x, y float32, opts SnapOptions) (float32, float32) {
	if !opts.GridEnabled || opts.GridSize == 0 {
		return x, y
	}
	round := func(v float32) float32 {
		return float32(math.Round(float64(v/opts.GridSize))) * opts.GridSize
	}
	return round(x), round(y)
}
