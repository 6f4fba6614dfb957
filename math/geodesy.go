// math/geodesy.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

const (
	// EarthRadiusKm is the mean radius used for great-circle distances.
	EarthRadiusKm = 6371

	// FeetPerDegreeLatitude is the (approximate) length of one degree of
	// latitude; one degree of longitude is this times cos(latitude).
	FeetPerDegreeLatitude = 364000

	// DefaultPositionEpsilon is the per-axis tolerance, in degrees, under
	// which two positions are considered to be the same place. It is about
	// a tenth of a millimeter, so it only absorbs floating-point noise
	// from the source data and never merges genuinely distinct junctions.
	DefaultPositionEpsilon = 1e-9
)

// CheckFinite returns an error wrapping ErrNonFinite if any of the given
// points has a NaN or infinite coordinate.
func CheckFinite(pts ...Point2LL) error {
	for _, p := range pts {
		if !p.IsFinite() {
			return fmt.Errorf("[%f, %f]: %w", p[1], p[0], ErrNonFinite)
		}
	}
	return nil
}

// Distance returns the great-circle distance between a and b in
// kilometers, using the haversine formula.
func Distance(a, b Point2LL) (float64, error) {
	if err := CheckFinite(a, b); err != nil {
		return 0, err
	}
	return haversineKm(a, b), nil
}

func haversineKm(a, b Point2LL) float64 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	lat1, lon1 := Radians(a[1]), Radians(a[0])
	lat2, lon2 := Radians(b[1]), Radians(b[0])
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))
	return EarthRadiusKm * c
}

// Midpoint returns the arithmetic mean of the two positions. This is
// plenty accurate over the extent of an airport, though it isn't the
// geodesic midpoint.
func Midpoint(a, b Point2LL) (Point2LL, error) {
	if err := CheckFinite(a, b); err != nil {
		return Point2LL{}, err
	}
	return Mid2LL(a, b), nil
}

// PositionsEqual reports whether a and b refer to the same place. With a
// zero epsilon the comparison is exact; otherwise each coordinate may
// differ by at most epsilon degrees. NaN coordinates are never equal.
func PositionsEqual(a, b Point2LL, epsilon float64) bool {
	if epsilon == 0 {
		return a == b
	}
	return Abs(a[0]-b[0]) <= epsilon && Abs(a[1]-b[1]) <= epsilon
}

// BufferedPolygon returns the four corners of the rectangle of the given
// width (in feet) centered on the segment from start to end. Feet are
// converted to degrees with FeetPerDegreeLatitude, with degrees of
// longitude shrinking by the cosine of the segment's mean latitude.
func BufferedPolygon(start, end Point2LL, widthFeet float64) ([]Point2LL, error) {
	if err := CheckFinite(start, end); err != nil {
		return nil, err
	}
	if !(widthFeet > 0) || !IsFinite(widthFeet) {
		return nil, fmt.Errorf("%f: %w", widthFeet, ErrInvalidWidth)
	}

	latFeet := float64(FeetPerDegreeLatitude)
	longFeet := latFeet * gomath.Cos(Radians((start[1]+end[1])/2))
	if longFeet < 1e-6 {
		return nil, fmt.Errorf("%s-%s: too close to a pole: %w", start.DDString(), end.DDString(), ErrNonFinite)
	}

	// Work in local feet so that the result is a true rectangle on the
	// ground rather than one skewed by the longitude scale.
	d := [2]float64{(end[0] - start[0]) * longFeet, (end[1] - start[1]) * latFeet}
	if Length2f(d) == 0 {
		return nil, fmt.Errorf("%s: %w", start.DDString(), ErrZeroLengthLine)
	}
	perp := Scale2f(Perp2f(Normalize2f(d)), widthFeet/2)
	offset := Point2LL{perp[0] / longFeet, perp[1] / latFeet}

	return []Point2LL{
		Add2LL(start, offset),
		Sub2LL(start, offset),
		Sub2LL(end, offset),
		Add2LL(end, offset),
	}, nil
}

// PointInPolygon reports whether p is inside the polygon given by its
// vertices, using ray casting. The last vertex should not repeat the
// first. Points on the boundary are classified by a half-open rule: for
// an axis-aligned rectangle the western and southern edges are inside
// and the eastern and northern edges are outside.
func PointInPolygon(p Point2LL, poly []Point2LL) (bool, error) {
	if len(poly) < 3 {
		return false, ErrDegeneratePolygon
	}
	if err := CheckFinite(p); err != nil {
		return false, err
	}
	if err := CheckFinite(poly...); err != nil {
		return false, err
	}
	return pointInPolygon2LL(p, poly), nil
}

// AngleBetweenLines returns the angle in degrees, in [0,180], between the
// directions of the two lines, each given as a pair of endpoints. Lines
// pointing the same way give 0 and opposite directions give 180.
func AngleBetweenLines(a, b [2]Point2LL) (float64, error) {
	if err := CheckFinite(a[0], a[1], b[0], b[1]); err != nil {
		return 0, err
	}
	va, vb := Sub2f(a[1], a[0]), Sub2f(b[1], b[0])
	if Length2f(va) == 0 {
		return 0, fmt.Errorf("%s: %w", a[0].DDString(), ErrZeroLengthLine)
	}
	if Length2f(vb) == 0 {
		return 0, fmt.Errorf("%s: %w", b[0].DDString(), ErrZeroLengthLine)
	}
	return AngleBetween(va, vb), nil
}
