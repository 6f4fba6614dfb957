// taxi/route_test.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"errors"
	"slices"
	"testing"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/math"
)

var (
	a0 = math.LL(40, -73)
	a1 = math.LL(40, -72.999)
	a2 = math.LL(40, -72.998)
	b1 = math.LL(40.001, -72.998)
	b2 = math.LL(40.002, -72.997)
	// A separate taxiway that nothing connects to.
	x0 = math.LL(40.01, -73.01)
	x1 = math.LL(40.01, -73.009)
)

func makeRouteAirport() *airport.Airport {
	return &airport.Airport{
		Ident:    "KTST",
		Location: a0,
		Runways: []airport.Runway{
			{
				ID:        1,
				Primary:   airport.RunwayEnd{ID: 1, Name: "18", Position: math.LL(39.999, -73.0003)},
				Secondary: airport.RunwayEnd{ID: 2, Name: "36", Position: math.LL(40.0021, -72.997)},
				Width:     100,
			},
			{
				ID:        2,
				Primary:   airport.RunwayEnd{ID: 3, Name: "09", Position: math.LL(40.0101, -73.0101)},
				Secondary: airport.RunwayEnd{ID: 4, Name: "27", Position: math.LL(40.0101, -73.0089)},
				Width:     100,
			},
		},
		Segments: airport.AssignIndices([]airport.Segment{
			seg("A", a0, a1),
			seg("A", a1, a2),
			seg("B", a2, b1),
			seg("B", b1, b2),
			seg("X", x0, x1),
		}),
	}
}

func TestPlannerRoute(t *testing.T) {
	ap := makeRouteAirport()
	p := NewPlanner(DefaultPlannerOptions(), nil)

	r, err := p.Route(ap, math.LL(39.9999, -73.0001), "36")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Found() {
		t.Fatalf("no route found")
	}

	expected := []NodeKey{MakeNodeKey(a0), MakeNodeKey(a1), MakeNodeKey(a2), MakeNodeKey(b1),
		MakeNodeKey(math.LL(40.0021, -72.997))}
	if !slices.Equal(r.Path.Nodes, expected) {
		t.Errorf("got path %v, expected %v", r.Path.Nodes, expected)
	}
	if !slices.Equal(r.Taxiways, []string{"A", "B"}) {
		t.Errorf("got taxiways %v", r.Taxiways)
	}
	if len(r.Legs) != 4 || len(r.Points) != 5 {
		t.Fatalf("got %d legs and %d points", len(r.Legs), len(r.Points))
	}
	if r.Legs[3].Taxiway != "" || r.Legs[0].Taxiway != "A" || r.Legs[2].Taxiway != "B" {
		t.Errorf("unexpected legs %+v", r.Legs)
	}

	sum := 0.
	for _, leg := range r.Legs {
		sum += leg.Distance
	}
	if math.Abs(sum-r.Path.Distance) > 1e-12 {
		t.Errorf("legs sum to %f, path is %f", sum, r.Path.Distance)
	}
	if r.Runway != "36" || r.Start != MakeNodeKey(a0) {
		t.Errorf("unexpected route %+v", r)
	}
	if len(r.SharpTurns) != 0 {
		t.Errorf("unexpected sharp turns %v", r.SharpTurns)
	}

	// The runway 18 end is connected to a0 directly.
	r, err = p.Route(ap, math.LL(39.9999, -73.0001), "rw18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Path.Nodes) != 2 || len(r.Taxiways) != 0 {
		t.Errorf("got route %+v", r)
	}
}

func TestPlannerNoRoute(t *testing.T) {
	ap := makeRouteAirport()
	p := NewPlanner(DefaultPlannerOptions(), nil)

	// Runway 27 is connected only to taxiway X.
	r, err := p.Route(ap, math.LL(39.9999, -73.0001), "27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Found() || r.Legs != nil {
		t.Errorf("expected no route, got %+v", r)
	}
}

func TestPlannerErrors(t *testing.T) {
	ap := makeRouteAirport()
	p := NewPlanner(DefaultPlannerOptions(), nil)

	if _, err := p.Route(ap, a0, "22"); !errors.Is(err, airport.ErrUnknownRunway) {
		t.Errorf("expected ErrUnknownRunway, got %v", err)
	}

	ap.Segments = nil
	if _, err := p.Route(ap, a0, "36"); !errors.Is(err, ErrNoSegments) {
		t.Errorf("expected ErrNoSegments, got %v", err)
	}
}

func TestPlannerCache(t *testing.T) {
	ap := makeRouteAirport()
	p := NewPlanner(DefaultPlannerOptions(), nil)

	g0, err := p.Graph(ap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g1, _ := p.Graph(ap); g1 != g0 {
		t.Errorf("graph was rebuilt")
	}

	opts := p.BuildOptions()
	opts.Angles = false
	p.SetBuildOptions(opts)
	g2, _ := p.Graph(ap)
	if g2 == g0 {
		t.Errorf("graph not rebuilt after options change")
	}

	p.Invalidate(ap.Ident)
	if g3, _ := p.Graph(ap); g3 == g2 {
		t.Errorf("graph not rebuilt after Invalidate")
	}
}

func TestPlannerReloadedAirport(t *testing.T) {
	ap := makeRouteAirport()
	p := NewPlanner(DefaultPlannerOptions(), nil)

	r, err := p.Route(ap, math.LL(39.9999, -73.0001), "27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Found() {
		t.Fatalf("route to 27 found before taxiway Y was added")
	}
	g0, _ := p.Graph(ap)

	// The same airport reloaded with a taxiway joining B to X.
	ap2 := makeRouteAirport()
	ap2.Segments = airport.AssignIndices(append(ap2.Segments, seg("Y", b2, x0)))

	g1, err := p.Graph(ap2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g1 == g0 {
		t.Fatalf("graph for the reloaded airport was not rebuilt")
	}
	r, err = p.Route(ap2, math.LL(39.9999, -73.0001), "27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Found() {
		t.Errorf("no route to 27 after taxiway Y was added")
	}
	if !slices.Contains(r.Taxiways, "Y") {
		t.Errorf("route %v doesn't use taxiway Y", r.Taxiways)
	}

	// Unchanged content still uses the cached graph.
	if g2, _ := p.Graph(makeRouteAirport()); g2 != g0 {
		t.Errorf("graph rebuilt for an identical airport")
	}
}
