// taxi/graph.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/util"
)

// SharpTurnAngle is the angle in degrees above which a transition
// through a node is flagged as a sharp turn. It is advisory only; routes
// may still include sharp turns.
const SharpTurnAngle = 90

// NodeKey identifies a node by the position that created it, formatted
// as "{lat},{long}".
type NodeKey string

func MakeNodeKey(p math.Point2LL) NodeKey {
	return NodeKey(strconv.FormatFloat(p.Latitude(), 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Longitude(), 'f', -1, 64))
}

// NodeSource records where a node came from: either it is the junction
// of one or more taxiway segments or it is a runway end. Consumers
// should use a type switch.
type NodeSource interface {
	isNodeSource()
}

type TaxiwaySource struct {
	// Segments has all of the segments with an endpoint at the node.
	Segments []airport.Segment
}

type RunwaySource struct {
	End airport.RunwayEnd
}

func (TaxiwaySource) isNodeSource() {}
func (RunwaySource) isNodeSource()  {}

type Node struct {
	Key    NodeKey
	Pos    math.Point2LL
	Source NodeSource

	// Neighbors maps adjacent nodes to the distance to them in km.
	Neighbors map[NodeKey]float64
	// Via gives the name of the taxiway connecting the node to each
	// neighbor; it is empty for runway-end connectors.
	Via map[NodeKey]string
	// NeighborAngles[a][b] is the angle in degrees between the line from
	// neighbor a to this node and the line from this node to neighbor b:
	// 0 means continuing straight and 180 is a reversal. It is only
	// filled in when the graph is built with angles enabled.
	NeighborAngles map[NodeKey]map[NodeKey]float64
}

// IsSharpTurn reports whether arriving from neighbor a and leaving
// toward neighbor b turns by more than SharpTurnAngle. Transitions
// without a recorded angle are not sharp.
func (n *Node) IsSharpTurn(a, b NodeKey) bool {
	angle, ok := n.NeighborAngles[a][b]
	return ok && angle > SharpTurnAngle
}

// Name returns a human-readable description of the node, e.g.
// "RWY 04L" or "A/B".
func (n *Node) Name() string {
	switch src := n.Source.(type) {
	case RunwaySource:
		return "RWY " + src.End.Name
	case TaxiwaySource:
		names := make(map[string]any)
		for _, seg := range src.Segments {
			names[seg.Name] = nil
		}
		s := ""
		for i, name := range util.SortedMapKeys(names) {
			if i > 0 {
				s += "/"
			}
			s += name
		}
		return s
	default:
		return string(n.Key)
	}
}

// Graph is an undirected graph of taxiway junctions and runway ends.
// Graphs are immutable once built and may be shared.
type Graph struct {
	nodes map[NodeKey]*Node
	order []NodeKey
	// Exact positions of the nodes, for lookups before falling back to
	// the epsilon scan.
	positions map[math.Point2LL]NodeKey
	runways   map[string]NodeKey
	epsilon   float64
}

func newGraph(epsilon float64) *Graph {
	return &Graph{
		nodes:     make(map[NodeKey]*Node),
		positions: make(map[math.Point2LL]NodeKey),
		runways:   make(map[string]NodeKey),
		epsilon:   epsilon,
	}
}

func (g *Graph) Len() int {
	return len(g.order)
}

// Keys returns the graph's node keys in the order the nodes were created.
func (g *Graph) Keys() []NodeKey {
	return slices.Clone(g.order)
}

func (g *Graph) Node(k NodeKey) (*Node, bool) {
	n, ok := g.nodes[k]
	return n, ok
}

// Nodes returns the graph's nodes in the order they were created.
func (g *Graph) Nodes() []*Node {
	return util.MapSlice(g.order, func(k NodeKey) *Node { return g.nodes[k] })
}

// NumEdges returns the number of undirected edges in the graph.
func (g *Graph) NumEdges() int {
	n := 0
	for _, node := range g.nodes {
		n += len(node.Neighbors)
	}
	return n / 2
}

// Epsilon returns the position tolerance the graph was built with.
func (g *Graph) Epsilon() float64 {
	return g.epsilon
}

// RunwayNode returns the node that the named runway end maps to.
func (g *Graph) RunwayNode(name string) (NodeKey, error) {
	if k, ok := g.runways[airport.TidyRunway(name)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%s: %w", name, airport.ErrUnknownRunway)
}

// Runways returns the names of the runway ends in the graph, sorted.
func (g *Graph) Runways() []string {
	return util.SortedMapKeys(g.runways)
}

// Check verifies that every edge is present in both directions with the
// same strictly positive weight and that no node is its own neighbor.
func (g *Graph) Check() error {
	for _, k := range g.order {
		n := g.nodes[k]
		for nk, w := range n.Neighbors {
			if nk == k {
				return fmt.Errorf("%s: self loop: %w", k, ErrDataIntegrity)
			}
			if !(w > 0) {
				return fmt.Errorf("%s-%s: weight %f: %w", k, nk, w, ErrDataIntegrity)
			}
			other, ok := g.nodes[nk]
			if !ok {
				return fmt.Errorf("%s-%s: %w", k, nk, ErrUnknownNode)
			}
			if rw, ok := other.Neighbors[k]; !ok || rw != w {
				return fmt.Errorf("%s-%s: missing or mismatched reverse edge: %w", k, nk, ErrDataIntegrity)
			}
		}
	}
	for name, k := range g.runways {
		if _, ok := g.nodes[k]; !ok {
			return fmt.Errorf("runway %s: %s: %w", name, k, ErrUnknownNode)
		}
	}
	return nil
}
