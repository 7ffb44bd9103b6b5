package store

import "github.com/draftcore/engine/geom"

// PointArena is the single Point2 vector shared across all
// polylines (spec §3 "Polyline point arena"). Deletion does not
// compact immediately; CompactPolylinePoints rebuilds it.
type PointArena struct {
	pts []geom.Vec2
}

// Len returns the number of points currently stored (including any
// orphaned ranges left behind by deleted polylines).
func (p *PointArena) Len() int { return len(p.pts) }

// Append appends pts and returns the offset at which they begin.
func (p *PointArena) Append(pts []geom.Vec2) (offset int) {
	offset = len(p.pts)
	p.pts = append(p.pts, pts...)
	return
}

// All returns the full point arena, including any orphaned ranges.
func (p *PointArena) All() []geom.Vec2 { return p.pts }

// SetAll replaces the point arena wholesale, used when loading a
// snapshot's ENTS point array.
func (p *PointArena) SetAll(pts []geom.Vec2) { p.pts = append([]geom.Vec2(nil), pts...) }

// Slice returns the [offset, offset+count) run, or nil if the range
// is corrupted (offset+count exceeds the arena), per spec §4.1
// "any polyline whose offset+count exceeds the old arena is treated
// as corrupted and reset to empty".
func (p *PointArena) Slice(offset, count int) []geom.Vec2 {
	if offset < 0 || count < 0 || offset+count > len(p.pts) {
		return nil
	}
	return p.pts[offset : offset+count]
}

// CompactPolylinePoints rebuilds the point arena from scratch,
// copying only the ranges referenced by live polylines (in arena
// order) and rewriting each polyline's Offset in place. Any
// polyline whose range is corrupted is reset to offset 0, count 0.
func CompactPolylinePoints(points *PointArena, polylines []Polyline) {
	fresh := make([]geom.Vec2, 0, len(points.pts))
	for i := range polylines {
		pl := &polylines[i]
		if pl.Count == 0 {
			pl.Offset = 0
			continue
		}
		if pl.Offset < 0 || pl.Offset+pl.Count > len(points.pts) {
			pl.Offset, pl.Count = 0, 0
			continue
		}
		newOff := len(fresh)
		fresh = append(fresh, points.pts[pl.Offset:pl.Offset+pl.Count]...)
		pl.Offset = newOff
	}
	points.pts = fresh
}
