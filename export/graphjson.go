// export/graphjson.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"encoding/json"
	"io"

	"github.com/iancoleman/orderedmap"

	"github.com/taxiroute/taxiroute/taxi"
	"github.com/taxiroute/taxiroute/util"
)

// GraphJSON returns the graph as a JSON object whose "nodes" member
// lists the nodes in the order they were created, each with its
// neighbors sorted by key, so that the output of two builds of the same
// airport can be diffed.
func GraphJSON(ident string, g *taxi.Graph) *orderedmap.OrderedMap {
	nodes := orderedmap.New()
	for _, n := range g.Nodes() {
		nm := orderedmap.New()
		nm.Set("lat", n.Pos.Latitude())
		nm.Set("lon", n.Pos.Longitude())
		nm.Set("name", n.Name())
		if rs, ok := n.Source.(taxi.RunwaySource); ok {
			nm.Set("runway", rs.End.Name)
		}

		nbrs := orderedmap.New()
		for _, k := range util.SortedMapKeys(n.Neighbors) {
			e := orderedmap.New()
			e.Set("km", n.Neighbors[k])
			e.Set("taxiway", n.Via[k])
			nbrs.Set(string(k), e)
		}
		nm.Set("neighbors", nbrs)

		if len(n.NeighborAngles) > 0 {
			angles := orderedmap.New()
			for _, a := range util.SortedMapKeys(n.NeighborAngles) {
				to := orderedmap.New()
				for _, b := range util.SortedMapKeys(n.NeighborAngles[a]) {
					to.Set(string(b), n.NeighborAngles[a][b])
				}
				angles.Set(string(a), to)
			}
			nm.Set("angles", angles)
		}

		nodes.Set(string(n.Key), nm)
	}

	runways := orderedmap.New()
	for _, rwy := range g.Runways() {
		k, _ := g.RunwayNode(rwy)
		runways.Set(rwy, string(k))
	}

	o := orderedmap.New()
	o.Set("airport", ident)
	o.Set("epsilon", g.Epsilon())
	o.Set("edges", g.NumEdges())
	o.Set("runways", runways)
	o.Set("nodes", nodes)
	return o
}

func WriteGraphJSON(w io.Writer, ident string, g *taxi.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GraphJSON(ident, g))
}
