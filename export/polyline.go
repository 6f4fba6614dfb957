// export/polyline.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"github.com/twpayne/go-polyline"

	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/taxi"
)

// Polyline returns the route's points in the encoded polyline format
// used by web map APIs. Unlike everywhere else, coordinates are ordered
// latitude first.
func Polyline(r *taxi.Route) string {
	return string(EncodePoints(r.Points))
}

func EncodePoints(pts []math.Point2LL) []byte {
	coords := make([][]float64, len(pts))
	for i, p := range pts {
		coords[i] = []float64{p.Latitude(), p.Longitude()}
	}
	return polyline.EncodeCoords(coords)
}

// DecodePoints is the inverse of EncodePoints, up to the format's
// precision of 1e-5 degrees.
func DecodePoints(b []byte) ([]math.Point2LL, error) {
	coords, _, err := polyline.DecodeCoords(b)
	if err != nil {
		return nil, err
	}
	pts := make([]math.Point2LL, len(coords))
	for i, c := range coords {
		pts[i] = math.LL(c[0], c[1])
	}
	return pts, nil
}
