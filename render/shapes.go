package render

import (
	"math"

	"github.com/draftcore/engine/geom"
)

func appendVertex(buf []float32, x, y float32, c geom.RGBA) []float32 {
	return append(buf, x, y, 0, c[0], c[1], c[2], c[3])
}

func appendSegment(buf []float32, x0, y0, x1, y1 float32, c geom.RGBA) []float32 {
	buf = appendVertex(buf, x0, y0, c)
	buf = appendVertex(buf, x1, y1, c)
	return buf
}

// appendRectFill appends the 2-triangle (6-vertex) fill for a rect.
func appendRectFill(buf []float32, x, y, w, h float32, c geom.RGBA) []float32 {
	buf = appendVertex(buf, x, y, c)
	buf = appendVertex(buf, x+w, y, c)
	buf = appendVertex(buf, x+w, y+h, c)
	buf = appendVertex(buf, x, y, c)
	buf = appendVertex(buf, x+w, y+h, c)
	buf = appendVertex(buf, x, y+h, c)
	return buf
}

// appendRectOutline appends the 4-segment (8-vertex) outline for a rect.
func appendRectOutline(buf []float32, x, y, w, h float32, c geom.RGBA) []float32 {
	buf = appendSegment(buf, x, y, x+w, y, c)
	buf = appendSegment(buf, x+w, y, x+w, y+h, c)
	buf = appendSegment(buf, x+w, y+h, x, y+h, c)
	buf = appendSegment(buf, x, y+h, x, y, c)
	return buf
}

// circleSegments bounds screen-space sagitta to ~0.5px, clamped to a
// sane [12,128] segment range so degenerate or huge shapes don't
// produce pathological vertex counts.
func circleSegments(rx, ry, viewScale float32) int {
	r := rx
	if ry > r {
		r = ry
	}
	screenR := float64(r * viewScale)
	const maxSagittaPx = 0.5
	const minSegs, maxSegs = 12, 128
	if screenR <= maxSagittaPx {
		return maxSegs
	}
	cosArg := 1 - maxSagittaPx/screenR
	if cosArg < -1 {
		cosArg = -1
	}
	theta := 2 * math.Acos(cosArg)
	if theta <= 0 || math.IsNaN(theta) {
		return maxSegs
	}
	n := int(math.Ceil(2 * math.Pi / theta))
	if n < minSegs {
		return minSegs
	}
	if n > maxSegs {
		return maxSegs
	}
	return n
}

// ellipsePoints samples n points around a (possibly rotated,
// non-uniformly scaled) ellipse/regular polygon centered at (cx,cy).
func ellipsePoints(cx, cy, rx, ry, rot, sx, sy float32, n int) []geom.Vec2 {
	pts := make([]geom.Vec2, n)
	cr, sr := float32(math.Cos(float64(rot))), float32(math.Sin(float64(rot)))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		lx := rx * float32(math.Cos(a)) * sx
		ly := ry * float32(math.Sin(a)) * sy
		pts[i] = geom.Vec2{
			cx + lx*cr - ly*sr,
			cy + lx*sr + ly*cr,
		}
	}
	return pts
}

// appendFan appends a triangle fan filling the polygon described by
// pts, all sharing center (cx,cy).
func appendFan(buf []float32, cx, cy float32, pts []geom.Vec2, c geom.RGBA) []float32 {
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		buf = appendVertex(buf, cx, cy, c)
		buf = appendVertex(buf, pts[i][0], pts[i][1], c)
		buf = appendVertex(buf, pts[j][0], pts[j][1], c)
	}
	return buf
}

// appendOutline appends the closed-loop line segments for pts.
func appendOutline(buf []float32, pts []geom.Vec2, c geom.RGBA) []float32 {
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		buf = appendSegment(buf, pts[i][0], pts[i][1], pts[j][0], pts[j][1], c)
	}
	return buf
}

// appendArrowHead appends the 3-vertex triangular head and its 3
// outline segments for an arrow from (ax,ay) to (bx,by) with the
// given head length (tip at b).
func appendArrowHead(tri, line []float32, ax, ay, bx, by, head float32, c geom.RGBA) ([]float32, []float32) {
	dx, dy := bx-ax, by-ay
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return tri, line
	}
	ux, uy := dx/length, dy/length
	px, py := -uy, ux // left-hand perpendicular

	baseX, baseY := bx-ux*head, by-uy*head
	halfW := head * 0.5
	leftX, leftY := baseX+px*halfW, baseY+py*halfW
	rightX, rightY := baseX-px*halfW, baseY-py*halfW

	tri = appendVertex(tri, bx, by, c)
	tri = appendVertex(tri, leftX, leftY, c)
	tri = appendVertex(tri, rightX, rightY, c)

	line = appendSegment(line, bx, by, leftX, leftY, c)
	line = appendSegment(line, leftX, leftY, rightX, rightY, c)
	line = appendSegment(line, rightX, rightY, bx, by, c)
	return tri, line
}
