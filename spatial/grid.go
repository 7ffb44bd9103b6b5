// Package spatial implements the uniform spatial hash grid and the
// point-pick / marquee query algorithms (spec §4.5).
package spatial

import (
	"math"

	"github.com/draftcore/engine/geom"
)

type cellCoord struct{ x, y int32 }

// Grid is a uniform spatial hash grid mapping cell coordinates to
// the ids whose AABB touches that cell, plus the inverse mapping
// needed for O(cells-covered) removal (spec §4.5).
type Grid struct {
	cellSize float32
	cells    map[cellCoord][]uint32
	inverse  map[uint32][]cellCoord
	aabbs    map[uint32]geom.AABB
	zIndex   map[uint32]int
}

// New returns a Grid with the given cell size (spec default 50).
func New(cellSize float32) *Grid {
	if cellSize <= 0 {
		cellSize = 50
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellCoord][]uint32),
		inverse:  make(map[uint32][]cellCoord),
		aabbs:    make(map[uint32]geom.AABB),
		zIndex:   make(map[uint32]int),
	}
}

func (g *Grid) coordsOf(a geom.AABB) []cellCoord {
	minX := int32(math.Floor(float64(a.MinX / g.cellSize)))
	minY := int32(math.Floor(float64(a.MinY / g.cellSize)))
	maxX := int32(math.Floor(float64(a.MaxX / g.cellSize)))
	maxY := int32(math.Floor(float64(a.MaxY / g.cellSize)))
	var out []cellCoord
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			out = append(out, cellCoord{x, y})
		}
	}
	return out
}

// Update inserts or moves id so that its AABB is a, removing any
// prior cell membership first.
func (g *Grid) Update(id uint32, a geom.AABB) {
	g.removeFromCells(id)
	coords := g.coordsOf(a)
	g.inverse[id] = coords
	g.aabbs[id] = a
	for _, c := range coords {
		g.cells[c] = append(g.cells[c], id)
	}
}

// Remove deletes id from the grid entirely.
func (g *Grid) Remove(id uint32) {
	g.removeFromCells(id)
	delete(g.aabbs, id)
	delete(g.inverse, id)
}

func (g *Grid) removeFromCells(id uint32) {
	for _, c := range g.inverse[id] {
		bucket := g.cells[c]
		for i, x := range bucket {
			if x == id {
				bucket[i] = bucket[len(bucket)-1]
				bucket = bucket[:len(bucket)-1]
				break
			}
		}
		if len(bucket) == 0 {
			delete(g.cells, c)
		} else {
			g.cells[c] = bucket
		}
	}
}

// Clear empties the grid entirely (used by ClearAll / snapshot load).
func (g *Grid) Clear() {
	g.cells = make(map[cellCoord][]uint32)
	g.inverse = make(map[uint32][]cellCoord)
	g.aabbs = make(map[uint32]geom.AABB)
	g.zIndex = make(map[uint32]int)
}

// SetDrawOrder rebuilds the id→zIndex ranking used to break pick
// ties, so ranking is O(1) per hit afterward. order is back-to-front,
// so a higher zIndex means closer to the viewer.
func (g *Grid) SetDrawOrder(order []uint32) {
	g.zIndex = make(map[uint32]int, len(order))
	for i, id := range order {
		g.zIndex[id] = i
	}
}

func (g *Grid) zRank(id uint32) int { return g.zIndex[id] }
