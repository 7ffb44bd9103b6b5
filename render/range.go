// Package render builds the two GPU-ready vertex buffers (triangles
// for fills, lines for strokes/outlines) the engine façade hands back
// to the host, and tracks per-entity ranges into each.
package render

// vertexStride is the float count per vertex: x, y, z, r, g, b, a.
const vertexStride = 7

// Range is a half-open [FirstFloat, LastFloat) span into one of the
// two vertex buffers. LastFloat-FirstFloat is always a multiple of
// vertexStride.
type Range struct {
	FirstFloat, LastFloat int
}

// Width reports the number of floats the range spans.
func (r Range) Width() int { return r.LastFloat - r.FirstFloat }

// EntityRange is the pair of buffer ranges an entity occupies.
type EntityRange struct {
	Tri  Range
	Line Range
}
