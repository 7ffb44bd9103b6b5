// Package geom implements 2D geometry primitives shared by the
// entity store, render builder and spatial index.
package geom

import (
	"math"
)

// Vec2 is a 2-component vector of float32.
type Vec2 [2]float32

// Add sets v to contain l + r.
func (v *Vec2) Add(l, r *Vec2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *Vec2) Sub(l, r *Vec2) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *Vec2) Scale(s float32, w *Vec2) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *Vec2) Dot(w *Vec2) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *Vec2) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Norm sets v to contain w normalized.
// If w is the zero vector, v is set to the zero vector.
func (v *Vec2) Norm(w *Vec2) {
	if l := w.Len(); l != 0 {
		v.Scale(1/l, w)
	} else {
		*v = Vec2{}
	}
}

// RGBA is a 4-component color of float32, each channel in [0,1].
type RGBA [4]float32

// AABB is an axis-aligned bounding box.
type AABB struct {
	MinX, MinY, MaxX, MaxY float32
}

// Empty returns the canonical empty AABB, which never
// intersects or contains any point.
func Empty() AABB {
	return AABB{
		MinX: float32(math.Inf(1)), MinY: float32(math.Inf(1)),
		MaxX: float32(math.Inf(-1)), MaxY: float32(math.Inf(-1)),
	}
}

// IsEmpty reports whether a is the empty AABB produced by Empty
// or has otherwise degenerated (min exceeds max on either axis).
func (a AABB) IsEmpty() bool { return a.MinX > a.MaxX || a.MinY > a.MaxY }

// Extend grows a to also cover (x, y).
func (a AABB) Extend(x, y float32) AABB {
	if x < a.MinX {
		a.MinX = x
	}
	if y < a.MinY {
		a.MinY = y
	}
	if x > a.MaxX {
		a.MaxX = x
	}
	if y > a.MaxY {
		a.MaxY = y
	}
	return a
}

// Union returns the smallest AABB covering both a and b.
func (a AABB) Union(b AABB) AABB {
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}
	return a.Extend(b.MinX, b.MinY).Extend(b.MaxX, b.MaxY)
}

// Intersects reports whether a and b overlap (touching edges count).
func (a AABB) Intersects(b AABB) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX && a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

// Contains reports whether b is fully inside a.
func (a AABB) Contains(b AABB) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return b.MinX >= a.MinX && b.MaxX <= a.MaxX && b.MinY >= a.MinY && b.MaxY <= a.MaxY
}

// ContainsPoint reports whether (x, y) lies within a, inclusive of edges.
func (a AABB) ContainsPoint(x, y float32) bool {
	return !a.IsEmpty() && x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// EdgeDistance returns the Euclidean distance from (x, y) to the
// nearest edge of a, or 0 if the point is inside or on the boundary.
func (a AABB) EdgeDistance(x, y float32) float32 {
	dx := float32(0)
	switch {
	case x < a.MinX:
		dx = a.MinX - x
	case x > a.MaxX:
		dx = x - a.MaxX
	}
	dy := float32(0)
	switch {
	case y < a.MinY:
		dy = a.MinY - y
	case y > a.MaxY:
		dy = y - a.MaxY
	}
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// SegmentDistance returns the perpendicular (or endpoint) distance
// from (px, py) to the segment (x0, y0)-(x1, y1).
func SegmentDistance(px, py, x0, y0, x1, y1 float32) float32 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dist(px, py, x0, y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := x0 + t*dx
	cy := y0 + t*dy
	return dist(px, py, cx, cy)
}

func dist(x0, y0, x1, y1 float32) float32 {
	dx, dy := x1-x0, y1-y0
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// PointInPolygon performs an even-odd ray cast test.
func PointInPolygon(px, py float32, pts []Vec2) bool {
	in := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > py) != (yj > py) &&
			px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}
