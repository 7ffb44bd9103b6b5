package geom

import "testing"

func TestVec2Add(t *testing.T) {
	l := Vec2{1, 2}
	r := Vec2{3, 4}
	var v Vec2
	v.Add(&l, &r)
	if v != (Vec2{4, 6}) {
		t.Fatalf("Add: have %v, want {4 6}", v)
	}
}

func TestAABBExtendUnion(t *testing.T) {
	a := Empty()
	if !a.IsEmpty() {
		t.Fatal("Empty: IsEmpty must be true")
	}
	a = a.Extend(1, 2).Extend(3, -1)
	if a.MinX != 1 || a.MinY != -1 || a.MaxX != 3 || a.MaxY != 2 {
		t.Fatalf("Extend: have %+v", a)
	}
	b := Empty().Extend(10, 10).Extend(12, 12)
	u := a.Union(b)
	if u.MinX != 1 || u.MinY != -1 || u.MaxX != 12 || u.MaxY != 12 {
		t.Fatalf("Union: have %+v", u)
	}
	if !a.Intersects(a) {
		t.Fatal("Intersects: a must intersect itself")
	}
	if a.Intersects(b) {
		t.Fatal("Intersects: a and b must not overlap")
	}
}

func TestAABBEdgeDistance(t *testing.T) {
	a := AABB{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	if d := a.EdgeDistance(5, 2); d != 0 {
		t.Fatalf("EdgeDistance (inside): have %v, want 0", d)
	}
	if d := a.EdgeDistance(15, 0); d != 5 {
		t.Fatalf("EdgeDistance (outside): have %v, want 5", d)
	}
}

func TestSegmentDistance(t *testing.T) {
	if d := SegmentDistance(0, 1, 0, 0, 10, 0); d != 1 {
		t.Fatalf("SegmentDistance: have %v, want 1", d)
	}
	if d := SegmentDistance(-5, 0, 0, 0, 10, 0); d != 5 {
		t.Fatalf("SegmentDistance (before start): have %v, want 5", d)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(5, 5, square) {
		t.Fatal("PointInPolygon: center must be inside")
	}
	if PointInPolygon(15, 5, square) {
		t.Fatal("PointInPolygon: outside point must not be inside")
	}
}
