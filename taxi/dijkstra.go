// taxi/dijkstra.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"fmt"
	gomath "math"
	"slices"
)

// Path is the result of a shortest-path query.
type Path struct {
	// Nodes is the sequence of nodes from the start to the end, inclusive.
	// It is nil if the end is unreachable or is the start.
	Nodes []NodeKey
	// Distance is the total length in km; it is +Inf if the end is
	// unreachable.
	Distance float64
}

func (p Path) Found() bool {
	return p.Nodes != nil
}

// ShortestPath finds the shortest path from start to end using
// Dijkstra's algorithm. The unvisited node with the smallest tentative
// distance is found with a linear scan in node creation order, so ties
// are always broken the same way for a given graph.
func ShortestPath(g *Graph, start, end NodeKey) (Path, error) {
	if _, ok := g.nodes[start]; !ok {
		return Path{}, fmt.Errorf("start %s: %w", start, ErrUnknownNode)
	}
	if _, ok := g.nodes[end]; !ok {
		return Path{}, fmt.Errorf("end %s: %w", end, ErrUnknownNode)
	}

	dist := make(map[NodeKey]float64, len(g.order))
	prev := make(map[NodeKey]NodeKey)
	visited := make(map[NodeKey]bool, len(g.order))
	for _, k := range g.order {
		dist[k] = gomath.Inf(1)
	}
	dist[start] = 0

	for {
		var u NodeKey
		best := gomath.Inf(1)
		for _, k := range g.order {
			if !visited[k] && dist[k] < best {
				u, best = k, dist[k]
			}
		}
		if u == "" {
			// Everything reachable has been visited.
			break
		}

		visited[u] = true
		if u == end {
			break
		}

		for nk, w := range g.nodes[u].Neighbors {
			if visited[nk] {
				continue
			}
			if d := dist[u] + w; d < dist[nk] {
				dist[nk] = d
				prev[nk] = u
			}
		}
	}

	path := Path{Distance: dist[end]}
	if gomath.IsInf(path.Distance, 1) || start == end {
		return path, nil
	}

	for k := end; ; k = prev[k] {
		path.Nodes = append(path.Nodes, k)
		if k == start {
			break
		}
	}
	slices.Reverse(path.Nodes)
	return path, nil
}
