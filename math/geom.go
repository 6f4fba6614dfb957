// math/geom.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float64
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	// Degenerate bounds
	return Extent2D{P0: [2]float64{1e30, 1e30}, P1: [2]float64{-1e30, -1e30}}
}

// Extent2DFromP2LLs returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromP2LLs(pts []Point2LL) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		e = Union(e, p)
	}
	return e
}

func (e Extent2D) IsEmpty() bool {
	return e.P0[0] > e.P1[0] || e.P0[1] > e.P1[1]
}

func (e Extent2D) Width() float64 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float64 {
	return e.P1[1] - e.P0[1]
}

// Expand expands the extent by the given distance in all directions.
func (e Extent2D) Expand(d float64) Extent2D {
	return Extent2D{
		P0: [2]float64{e.P0[0] - d, e.P0[1] - d},
		P1: [2]float64{e.P1[0] + d, e.P1[1] + d}}
}

func (e Extent2D) Inside(p [2]float64) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

func Union(e Extent2D, p [2]float64) Extent2D {
	e.P0[0] = min(e.P0[0], p[0])
	e.P0[1] = min(e.P0[1], p[1])
	e.P1[0] = max(e.P1[0], p[0])
	e.P1[1] = max(e.P1[1], p[1])
	return e
}

///////////////////////////////////////////////////////////////////////////
// Geometry

// pointInPolygon2LL checks whether the given point is inside the given
// polygon; it assumes that the last vertex does not repeat the first one,
// and so includes the edge from pts[len(pts)-1] to pts[0] in its test.
//
// An edge is only considered when p's latitude is in [y0, y1) of the
// edge, and a crossing only counts when it is strictly east of p. Thus
// points exactly on the western or southern boundary of an axis-aligned
// box are inside, while points on the eastern or northern boundary are
// outside.
func pointInPolygon2LL(p Point2LL, pts []Point2LL) bool {
	inside := false
	for i := 0; i < len(pts); i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}
