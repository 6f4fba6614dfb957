// airport/taxiway.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import (
	"slices"
	"strconv"

	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/util"
)

// ConnectDistanceKm is the default distance under which the end of one
// segment and the start of another with the same name are taken to be
// joined when building chains.
const ConnectDistanceKm = 0.001

// Chain is a run of same-named segments where each one starts where the
// previous one ended. Chains are used to place taxiway labels; routing
// works on the individual segments.
type Chain struct {
	Name     string
	Index    int // 1-based, within Name
	Segments []Segment
	// Start and End are the midpoints of the first and last segments.
	Start, End math.Point2LL
}

// Label returns the chain's display name, e.g. "A_2".
func (c Chain) Label() string {
	return c.Name + "_" + strconv.Itoa(c.Index)
}

// ChainTaxiways groups the named segments into chains. Each chain is
// followed from a segment with no same-named predecessor for as long as
// there is exactly one way to continue; a branch ends the chain and each
// branch starts a new one. Segments in loops with no entry point are
// chained starting from their lowest index. Chains are returned sorted
// by name, and every named segment is in exactly one chain.
func ChainTaxiways(segments []Segment, toleranceKm float64) []Chain {
	byName := make(map[string][]Segment)
	for _, seg := range segments {
		if seg.Name != "" {
			byName[seg.Name] = append(byName[seg.Name], seg)
		}
	}

	var chains []Chain
	for _, name := range util.SortedMapKeys(byName) {
		segs := byName[name]
		slices.SortStableFunc(segs, func(a, b Segment) int { return a.Index - b.Index })

		connected := func(a, b Segment) bool {
			d, err := math.Distance(a.End, b.Start)
			return err == nil && d < toleranceKm
		}

		children := make([][]int, len(segs))
		parents := make([]int, len(segs))
		for i := range segs {
			for j := range segs {
				if i != j && connected(segs[i], segs[j]) {
					children[i] = append(children[i], j)
					parents[j]++
				}
			}
		}

		visited := make([]bool, len(segs))
		follow := func(i int) []Segment {
			chain := []Segment{segs[i]}
			visited[i] = true
			for len(children[i]) == 1 && !visited[children[i][0]] && parents[children[i][0]] == 1 {
				i = children[i][0]
				visited[i] = true
				chain = append(chain, segs[i])
			}
			return chain
		}

		var named [][]Segment
		// Chain heads first: no predecessor, or a predecessor that
		// branches or merges.
		for i := range segs {
			if !visited[i] && parents[i] != 1 {
				named = append(named, follow(i))
			}
		}
		for i := range segs {
			if visited[i] {
				continue
			}
			// Either the continuation of a branch or part of a loop.
			named = append(named, follow(i))
		}

		for idx, cs := range named {
			chains = append(chains, Chain{
				Name:     name,
				Index:    idx + 1,
				Segments: cs,
				Start:    cs[0].Midpoint,
				End:      cs[len(cs)-1].Midpoint,
			})
		}
	}
	return chains
}
