// airport/intersect.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import (
	"fmt"

	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/util"
)

// Intersection records a taxiway segment that leads onto a runway: one of
// its endpoints is on the runway surface and the other is off it.
type Intersection struct {
	Runway  Runway
	Segment Segment
	// AtStart is true if it is the segment's start that is on the runway.
	AtStart  bool
	Position math.Point2LL
}

// FindIntersections returns all of the segment/runway pairs where
// exactly one of the segment's endpoints is inside the runway's
// footprint, ordered by segment and then by runway. Segments lying
// entirely on a runway are not reported.
func FindIntersections(runways []Runway, segments []Segment) ([]Intersection, error) {
	polys := make([][]math.Point2LL, len(runways))
	for i, rwy := range runways {
		var err error
		if polys[i], err = rwy.Polygon(); err != nil {
			return nil, fmt.Errorf("runway %s: %w", rwy.Name(), err)
		}
	}

	var isects []Intersection
	for _, seg := range segments {
		for i, rwy := range runways {
			start, err := math.PointInPolygon(seg.Start, polys[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", seg.Label(), err)
			}
			end, err := math.PointInPolygon(seg.End, polys[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", seg.Label(), err)
			}

			if start != end {
				isects = append(isects, Intersection{
					Runway:   rwy,
					Segment:  seg,
					AtStart:  start,
					Position: util.Select(start, seg.Start, seg.End),
				})
			}
		}
	}
	return isects, nil
}
