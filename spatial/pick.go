package spatial

import (
	"sort"

	"github.com/draftcore/engine/geom"
)

// DistanceFunc computes the per-kind pick distance from (x, y) to
// the entity identified by id (spec §4.5 pick distance table). ok
// is false if id no longer resolves to a live entity.
type DistanceFunc func(id uint32, x, y float32) (dist float32, ok bool)

// Pick returns the id of the nearest entity within tolerance of
// (x, y), or 0 if none qualify. Candidates are ranked by ascending
// distance, then descending zIndex, so the top-most entity wins a
// distance tie (spec §4.5 "Point pick").
func (g *Grid) Pick(x, y, tolerance float32, dist DistanceFunc) uint32 {
	area := geom.AABB{MinX: x - tolerance, MinY: y - tolerance, MaxX: x + tolerance, MaxY: y + tolerance}
	cand := g.candidatesIn(area)
	type hit struct {
		id uint32
		d  float32
		z  int
	}
	var hits []hit
	seen := make(map[uint32]bool, len(cand))
	for _, id := range cand {
		if seen[id] {
			continue
		}
		seen[id] = true
		d, ok := dist(id, x, y)
		if !ok || d > tolerance {
			continue
		}
		hits = append(hits, hit{id, d, g.zRank(id)})
	}
	if len(hits) == 0 {
		return 0
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].d != hits[j].d {
			return hits[i].d < hits[j].d
		}
		return hits[i].z > hits[j].z
	})
	return hits[0].id
}

// candidatesIn returns the deduplicated ids whose covering cells
// overlap area, without filtering by actual AABB overlap.
func (g *Grid) candidatesIn(area geom.AABB) []uint32 {
	seen := make(map[uint32]bool)
	var out []uint32
	for _, c := range g.coordsOf(area) {
		for _, id := range g.cells[c] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// QueryArea returns all ids whose AABB intersects rect, deduplicated.
func (g *Grid) QueryArea(rect geom.AABB) []uint32 {
	var out []uint32
	for _, id := range g.candidatesIn(rect) {
		if a, ok := g.aabbs[id]; ok && a.Intersects(rect) {
			out = append(out, id)
		}
	}
	return out
}

// MarqueeMode selects whether a marquee requires full containment
// (Window) or any overlap (Crossing).
type MarqueeMode int

const (
	Window MarqueeMode = iota
	Crossing
)

// QueryMarquee returns matching ids, deduplicated and returned in
// draw order (spec §4.5 "Marquee").
func (g *Grid) QueryMarquee(rect geom.AABB, mode MarqueeMode, drawOrder []uint32) []uint32 {
	match := make(map[uint32]bool)
	for _, id := range g.candidatesIn(rect) {
		a, ok := g.aabbs[id]
		if !ok {
			continue
		}
		switch mode {
		case Window:
			if rect.Contains(a) {
				match[id] = true
			}
		case Crossing:
			if a.Intersects(rect) {
				match[id] = true
			}
		}
	}
	var out []uint32
	for _, id := range drawOrder {
		if match[id] {
			out = append(out, id)
		}
	}
	return out
}
