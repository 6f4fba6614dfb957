// taxi/angles.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"fmt"

	"github.com/taxiroute/taxiroute/math"
)

// computeAngles fills in NeighborAngles for every node with at least two
// neighbors reached over taxiways. Angles are measured in the lat/long
// plane, which is close enough over the extent of a junction to tell a
// gentle curve from a hairpin.
func (g *Graph) computeAngles() error {
	for _, k := range g.order {
		n := g.nodes[k]

		var twy []NodeKey
		for nk, via := range n.Via {
			if via != "" {
				twy = append(twy, nk)
			}
		}
		if len(twy) < 2 {
			continue
		}

		n.NeighborAngles = make(map[NodeKey]map[NodeKey]float64)
		for _, a := range twy {
			n.NeighborAngles[a] = make(map[NodeKey]float64)
			for _, b := range twy {
				if a == b {
					continue
				}
				in := [2]math.Point2LL{g.nodes[a].Pos, n.Pos}
				out := [2]math.Point2LL{n.Pos, g.nodes[b].Pos}
				angle, err := math.AngleBetweenLines(in, out)
				if err != nil {
					return fmt.Errorf("%s: %w: %w", k, ErrGeometry, err)
				}
				n.NeighborAngles[a][b] = angle
			}
		}
	}
	return nil
}
