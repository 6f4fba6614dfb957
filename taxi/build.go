// taxi/build.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/math"
)

type BuildOptions struct {
	// Epsilon is the per-axis tolerance in degrees under which two
	// positions are the same node. Zero requires exact equality.
	Epsilon float64 `json:"epsilon"`
	// Angles enables computing the turn angles at each junction.
	Angles bool `json:"angles"`
}

func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Epsilon: math.DefaultPositionEpsilon,
		Angles:  true,
	}
}

// Build constructs the routing graph for the given taxiway segments and
// runway ends. Segments that share an endpoint position are joined at a
// single node, and each segment becomes an undirected edge weighted by
// its length. Each runway end becomes a node of its own, connected to
// the start of the nearest named segment, unless it is at the same
// position as an existing node, in which case it maps to that node.
//
// Unnamed segments are ignored. Segments whose endpoints resolve to the
// same node are skipped with a warning.
func Build(segments []airport.Segment, ends []airport.RunwayEnd, opts BuildOptions, lg *log.Logger) (*Graph, error) {
	if !(opts.Epsilon >= 0) {
		return nil, fmt.Errorf("epsilon %f: %w", opts.Epsilon, ErrGeometry)
	}

	g := newGraph(opts.Epsilon)

	var named []airport.Segment
	for _, seg := range segments {
		if seg.Name != "" {
			named = append(named, seg)
		}
	}
	if n := len(segments) - len(named); n > 0 {
		lg.Debugf("skipping %d unnamed segments", n)
	}

	for _, seg := range named {
		if err := math.CheckFinite(seg.Start, seg.End); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", seg.Label(), ErrGeometry, err)
		}

		a := g.resolve(seg.Start, func() NodeSource { return TaxiwaySource{} })
		b := g.resolve(seg.End, func() NodeSource { return TaxiwaySource{} })
		g.addSegment(a, seg)
		if b != a {
			g.addSegment(b, seg)
		}

		if a == b {
			lg.Warn("zero-length segment", slog.String("segment", seg.Label()),
				slog.String("node", string(a)))
			continue
		}

		w, err := math.Distance(seg.Start, seg.End)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", seg.Label(), ErrGeometry, err)
		}
		if !(w > 0) {
			return nil, fmt.Errorf("%s: %s and %s are %f km apart: %w", seg.Label(), a, b, w, ErrDataIntegrity)
		}
		g.addEdge(a, b, w, seg.Name)
	}

	for _, end := range ends {
		if err := g.addRunwayEnd(end, named, lg); err != nil {
			return nil, err
		}
	}

	if opts.Angles {
		if err := g.computeAngles(); err != nil {
			return nil, err
		}
	}

	lg.Debugf("built graph with %d nodes, %d edges and %d runway ends", g.Len(), g.NumEdges(), len(g.runways))
	if lg != nil && lg.Enabled(context.Background(), slog.LevelDebug) {
		if err := g.Check(); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// NodeAt returns the key of the node at position p, if there is one.
func (g *Graph) NodeAt(p math.Point2LL) (NodeKey, bool) {
	if !p.IsFinite() {
		return "", false
	}
	if k, ok := g.positions[p]; ok {
		return k, true
	}
	if g.epsilon > 0 {
		for _, k := range g.order {
			if math.PositionsEqual(g.nodes[k].Pos, p, g.epsilon) {
				return k, true
			}
		}
	}
	return "", false
}

// resolve returns the key of the node at p, creating one with the
// source returned by src if there isn't one already.
func (g *Graph) resolve(p math.Point2LL, src func() NodeSource) NodeKey {
	if k, ok := g.NodeAt(p); ok {
		g.positions[p] = k
		return k
	}

	k := MakeNodeKey(p)
	g.nodes[k] = &Node{
		Key:       k,
		Pos:       p,
		Source:    src(),
		Neighbors: make(map[NodeKey]float64),
		Via:       make(map[NodeKey]string),
	}
	g.order = append(g.order, k)
	g.positions[p] = k
	return k
}

func (g *Graph) addSegment(k NodeKey, seg airport.Segment) {
	n := g.nodes[k]
	if ts, ok := n.Source.(TaxiwaySource); ok {
		ts.Segments = append(ts.Segments, seg)
		n.Source = ts
	}
}

// addEdge adds an undirected edge between a and b; if there already is
// one, the shorter of the two is kept.
func (g *Graph) addEdge(a, b NodeKey, w float64, via string) {
	na, nb := g.nodes[a], g.nodes[b]
	if cur, ok := na.Neighbors[b]; ok && cur <= w {
		return
	}
	na.Neighbors[b], nb.Neighbors[a] = w, w
	na.Via[b], nb.Via[a] = via, via
}

func (g *Graph) addRunwayEnd(end airport.RunwayEnd, named []airport.Segment, lg *log.Logger) error {
	name := airport.TidyRunway(end.Name)
	if name == "" {
		return fmt.Errorf("runway end %d has no name: %w", end.ID, ErrDataIntegrity)
	}
	if _, ok := g.runways[name]; ok {
		return fmt.Errorf("%s: %w: %w", end.Name, airport.ErrDuplicateRunwayEnd, ErrDataIntegrity)
	}
	if err := math.CheckFinite(end.Position); err != nil {
		return fmt.Errorf("runway %s: %w: %w", end.Name, ErrGeometry, err)
	}

	if k, ok := g.NodeAt(end.Position); ok {
		lg.Debugf("runway %s coincides with node %s", end.Name, k)
		g.runways[name] = k
		return nil
	}

	k := g.resolve(end.Position, func() NodeSource { return RunwaySource{End: end} })
	g.runways[name] = k

	seg, err := ClosestSegment(end.Position, named)
	if err != nil {
		lg.Warnf("runway %s: not connected: %v", end.Name, err)
		return nil
	}
	sk, ok := g.NodeAt(seg.Start)
	if !ok {
		return fmt.Errorf("runway %s: no node at start of %s: %w", end.Name, seg.Label(), ErrUnknownNode)
	}

	w, err := math.Distance(end.Position, seg.Start)
	if err != nil {
		return fmt.Errorf("runway %s: %w: %w", end.Name, ErrGeometry, err)
	}
	if !(w > 0) {
		return fmt.Errorf("runway %s: %s and %s are %f km apart: %w", end.Name, k, sk, w, ErrDataIntegrity)
	}
	lg.Debugf("connecting runway %s to %s (%.3f km)", end.Name, seg.Label(), w)
	g.addEdge(k, sk, w, "")

	return nil
}
