// taxi/route.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/util"
)

type PlannerOptions struct {
	Build BuildOptions
	// CacheSize is the maximum number of graphs kept; CacheTTL is how long
	// each one is kept for.
	CacheSize int
	CacheTTL  time.Duration
}

func DefaultPlannerOptions() PlannerOptions {
	return PlannerOptions{
		Build:     DefaultBuildOptions(),
		CacheSize: 8,
		CacheTTL:  time.Hour,
	}
}

// Planner computes routes to runways, building each airport's graph the
// first time it's needed and reusing it afterward. The graphs are shared
// between routes and are never modified. A Planner should not have its
// build options changed concurrently with other calls.
type Planner struct {
	opts  BuildOptions
	cache *expirable.LRU[string, *Graph]
	lg    *log.Logger
}

func NewPlanner(opts PlannerOptions, lg *log.Logger) *Planner {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultPlannerOptions().CacheSize
	}
	return &Planner{
		opts:  opts.Build,
		cache: expirable.NewLRU[string, *Graph](opts.CacheSize, nil, opts.CacheTTL),
		lg:    lg,
	}
}

func (p *Planner) BuildOptions() BuildOptions {
	return p.opts
}

// SetBuildOptions changes the options used for subsequently built
// graphs. Graphs built with other options stay in the cache but are no
// longer returned.
func (p *Planner) SetBuildOptions(opts BuildOptions) {
	p.opts = opts
}

// cacheKey identifies a graph by the airport, the build options and a
// hash of everything the graph is built from, so that reloading an
// airport with different segments or runways gives a new graph.
func (p *Planner) cacheKey(ap *airport.Airport) string {
	h := fnv.New64a()
	for _, seg := range ap.Segments {
		fmt.Fprintf(h, "%d|%s|%v|%v|%v|%v;", seg.ID, seg.Name, seg.Start[0], seg.Start[1], seg.End[0], seg.End[1])
	}
	for _, end := range ap.RunwayEnds() {
		fmt.Fprintf(h, "%s|%v|%v;", end.Name, end.Position[0], end.Position[1])
	}

	return ap.Ident + "|" + strconv.FormatFloat(p.opts.Epsilon, 'g', -1, 64) + "|" +
		strconv.FormatBool(p.opts.Angles) + "|" + strconv.FormatUint(h.Sum64(), 16)
}

// Graph returns the routing graph for the airport.
func (p *Planner) Graph(ap *airport.Airport) (*Graph, error) {
	key := p.cacheKey(ap)
	if g, ok := p.cache.Get(key); ok {
		p.lg.Debugf("%s: using cached graph", ap.Ident)
		return g, nil
	}

	start := time.Now()
	g, err := Build(ap.Segments, ap.RunwayEnds(), p.opts, p.lg.With(slog.String("airport", ap.Ident)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ap.Ident, err)
	}
	p.lg.Info("built taxi graph", slog.String("airport", ap.Ident), slog.Int("nodes", g.Len()),
		slog.Int("edges", g.NumEdges()), slog.Duration("elapsed", time.Since(start)))

	p.cache.Add(key, g)
	return g, nil
}

// Invalidate discards any cached graphs for the airport.
func (p *Planner) Invalidate(ident string) {
	for _, key := range p.cache.Keys() {
		if id, _, _ := strings.Cut(key, "|"); id == ident {
			p.cache.Remove(key)
		}
	}
}

// Leg is a single edge along a route.
type Leg struct {
	From, To NodeKey
	// Taxiway is the name of the taxiway the leg follows; it is empty for
	// the connector onto a runway end.
	Taxiway  string
	Distance float64 // km
}

type Route struct {
	Airport string
	Runway  string
	From    math.Point2LL

	Start, End NodeKey
	Path       Path

	Legs   []Leg
	Points []math.Point2LL
	// Taxiways is the sequence of taxiways followed, with repeats
	// collapsed, e.g. [A B C].
	Taxiways []string
	// SharpTurns are the nodes along the route where it turns by more
	// than SharpTurnAngle.
	SharpTurns []NodeKey
}

// Found reports whether a route was found; if it is false, no route
// connects the position to the runway, which is not an error.
func (r *Route) Found() bool {
	return r.Path.Found()
}

// Route computes the route from position from to the given runway end.
func (p *Planner) Route(ap *airport.Airport, from math.Point2LL, runway string) (*Route, error) {
	end, err := ap.LookupRunwayEnd(runway)
	if err != nil {
		return nil, err
	}

	g, err := p.Graph(ap)
	if err != nil {
		return nil, err
	}

	r := &Route{Airport: ap.Ident, Runway: end.Name, From: from}
	if r.Start, err = g.Anchor(from, ap.Segments); err != nil {
		return nil, fmt.Errorf("%s: %w", ap.Ident, err)
	}
	if r.End, err = g.RunwayNode(end.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", ap.Ident, err)
	}

	if r.Path, err = ShortestPath(g, r.Start, r.End); err != nil {
		return nil, err
	}
	if !r.Path.Found() {
		p.lg.Info("no route", slog.String("airport", ap.Ident), slog.String("runway", end.Name),
			slog.String("start", string(r.Start)))
		return r, nil
	}

	r.fill(g)
	p.lg.Info("route", slog.String("airport", ap.Ident), slog.String("runway", end.Name),
		slog.Any("taxiways", r.Taxiways), slog.Float64("km", r.Path.Distance))

	return r, nil
}

func (r *Route) fill(g *Graph) {
	var names []string
	for i, k := range r.Path.Nodes {
		n := g.nodes[k]
		r.Points = append(r.Points, n.Pos)

		if i+1 < len(r.Path.Nodes) {
			next := r.Path.Nodes[i+1]
			r.Legs = append(r.Legs, Leg{
				From:     k,
				To:       next,
				Taxiway:  n.Via[next],
				Distance: n.Neighbors[next],
			})
			if n.Via[next] != "" {
				names = append(names, n.Via[next])
			}
		}
		if i > 0 && i+1 < len(r.Path.Nodes) && n.IsSharpTurn(r.Path.Nodes[i-1], r.Path.Nodes[i+1]) {
			r.SharpTurns = append(r.SharpTurns, k)
		}
	}
	r.Taxiways = util.CollapseRuns(names)
}
