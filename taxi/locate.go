// taxi/locate.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"fmt"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/math"
)

// ClosestSegment returns the named segment whose start position is
// closest to p. When several are equally close, the first one in
// segments is returned.
func ClosestSegment(p math.Point2LL, segments []airport.Segment) (airport.Segment, error) {
	if err := math.CheckFinite(p); err != nil {
		return airport.Segment{}, err
	}

	var closest airport.Segment
	found := false
	best := 0.
	for _, seg := range segments {
		if seg.Name == "" {
			continue
		}
		d, err := math.Distance(p, seg.Start)
		if err != nil {
			return airport.Segment{}, fmt.Errorf("%s: %w", seg.Label(), err)
		}
		if !found || d < best {
			closest, best, found = seg, d, true
		}
	}

	if !found {
		return airport.Segment{}, ErrNoSegments
	}
	return closest, nil
}

// Anchor returns the graph node to start a route from when at position
// p: the node at the start of the closest named segment.
func (g *Graph) Anchor(p math.Point2LL, segments []airport.Segment) (NodeKey, error) {
	seg, err := ClosestSegment(p, segments)
	if err != nil {
		return "", err
	}
	k, ok := g.NodeAt(seg.Start)
	if !ok {
		return "", fmt.Errorf("%s: start of %s: %w", seg.Start.DDString(), seg.Label(), ErrUnknownNode)
	}
	return k, nil
}
