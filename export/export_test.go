// export/export_test.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/taxi"
)

var (
	a0 = math.LL(40, -73)
	a1 = math.LL(40, -72.999)
	a2 = math.LL(40, -72.998)
	b1 = math.LL(40.001, -72.998)
	b2 = math.LL(40.002, -72.997)
)

func makeAirport() *airport.Airport {
	return &airport.Airport{
		Ident:    "KTST",
		Location: a0,
		Runways: []airport.Runway{{
			ID:        1,
			Primary:   airport.RunwayEnd{ID: 1, Name: "18", Position: math.LL(39.999, -73.0003)},
			Secondary: airport.RunwayEnd{ID: 2, Name: "36", Position: math.LL(40.0021, -72.997)},
			Width:     100,
		}},
		Segments: airport.AssignIndices([]airport.Segment{
			airport.MakeSegment(1, "A", a0, a1, 50),
			airport.MakeSegment(2, "A", a1, a2, 50),
			airport.MakeSegment(3, "B", a2, b1, 50),
			airport.MakeSegment(4, "B", b1, b2, 50),
		}),
	}
}

func makeRoute(t *testing.T) (*taxi.Graph, *taxi.Route) {
	t.Helper()

	ap := makeAirport()
	p := taxi.NewPlanner(taxi.DefaultPlannerOptions(), nil)
	r, err := p.Route(ap, math.LL(39.9999, -73.0001), "36")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Found() {
		t.Fatalf("no route found")
	}
	g, err := p.Graph(ap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g, r
}

func roundTrip(t *testing.T, fc *geojson.FeatureCollection) *geojson.FeatureCollection {
	t.Helper()

	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, fc); err != nil {
		t.Fatalf("WriteGeoJSON: %v", err)
	}
	rfc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalFeatureCollection: %v", err)
	}
	return rfc
}

func countLayer(fc *geojson.FeatureCollection, layer string) int {
	n := 0
	for _, f := range fc.Features {
		if f.Properties.MustString("layer", "") == layer {
			n++
		}
	}
	return n
}

func TestRouteGeoJSON(t *testing.T) {
	_, r := makeRoute(t)

	fc := roundTrip(t, RouteGeoJSON(r))
	if len(fc.Features) != 1+len(r.Legs) {
		t.Fatalf("got %d features, expected %d", len(fc.Features), 1+len(r.Legs))
	}
	if countLayer(fc, LayerRoute) != 1 || countLayer(fc, LayerLeg) != len(r.Legs) {
		t.Errorf("unexpected layers in %+v", fc.Features)
	}

	ls, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("route geometry is %T, expected LineString", fc.Features[0].Geometry)
	}
	if len(ls) != len(r.Points) {
		t.Fatalf("route has %d points, expected %d", len(ls), len(r.Points))
	}
	for i, p := range r.Points {
		if ls[i] != orb.Point(p) {
			t.Errorf("point %d: got %v, expected %v", i, ls[i], p)
		}
	}
	if fc.Features[0].Properties.MustString("runway", "") != "36" {
		t.Errorf("unexpected route properties %v", fc.Features[0].Properties)
	}
	if fc.BBox == nil {
		t.Errorf("expected a bounding box")
	}

	if empty := RouteGeoJSON(&taxi.Route{Airport: "KTST", Runway: "36"}); len(empty.Features) != 0 {
		t.Errorf("expected no features for a route that wasn't found, got %d", len(empty.Features))
	}
}

func TestAirportGeoJSON(t *testing.T) {
	ap := makeAirport()

	afc, err := AirportGeoJSON(ap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc := roundTrip(t, afc)

	if n := countLayer(fc, LayerRunway); n != 1 {
		t.Errorf("got %d runways, expected 1", n)
	}
	if n := countLayer(fc, LayerRunwayEnd); n != 2 {
		t.Errorf("got %d runway ends, expected 2", n)
	}
	if n := countLayer(fc, LayerTaxiway); n != 2 {
		t.Errorf("got %d taxiway chains, expected 2", n)
	}

	for _, f := range fc.Features {
		switch f.Properties.MustString("layer", "") {
		case LayerRunway:
			poly, ok := f.Geometry.(orb.Polygon)
			if !ok || len(poly) != 1 {
				t.Fatalf("runway geometry %T", f.Geometry)
			}
			if len(poly[0]) != 5 || poly[0][0] != poly[0][4] {
				t.Errorf("runway ring not closed: %v", poly[0])
			}
		case LayerTaxiway:
			ls := f.Geometry.(orb.LineString)
			if len(ls) != 3 {
				t.Errorf("taxiway %s: got %d points, expected 3", f.Properties.MustString("name", ""), len(ls))
			}
		}
	}
}

func TestGraphGeoJSON(t *testing.T) {
	g, _ := makeRoute(t)

	fc := roundTrip(t, GraphGeoJSON(g))
	if n := countLayer(fc, LayerNode); n != g.Len() {
		t.Errorf("got %d nodes, expected %d", n, g.Len())
	}
	if n := countLayer(fc, LayerEdge); n != g.NumEdges() {
		t.Errorf("got %d edges, expected %d", n, g.NumEdges())
	}

	runways := 0
	for _, f := range fc.Features {
		if f.Properties.MustString("kind", "") == "runway" {
			runways++
		}
	}
	if runways != 2 {
		t.Errorf("got %d runway nodes, expected 2", runways)
	}
}

func TestIntersectionsGeoJSON(t *testing.T) {
	ap := makeAirport()
	isects, err := airport.FindIntersections(ap.Runways, ap.Segments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc := roundTrip(t, IntersectionsGeoJSON(isects))
	if len(fc.Features) != len(isects) {
		t.Fatalf("got %d features, expected %d", len(fc.Features), len(isects))
	}
	for i, f := range fc.Features {
		if f.Geometry.(orb.Point) != orb.Point(isects[i].Position) {
			t.Errorf("feature %d: got %v, expected %v", i, f.Geometry, isects[i].Position)
		}
	}
}

func TestMerge(t *testing.T) {
	g, r := makeRoute(t)

	rfc, gfc := RouteGeoJSON(r), GraphGeoJSON(g)
	m := Merge(rfc, gfc)
	if len(m.Features) != len(rfc.Features)+len(gfc.Features) {
		t.Errorf("got %d features, expected %d", len(m.Features), len(rfc.Features)+len(gfc.Features))
	}
	if len(Merge().Features) != 0 {
		t.Errorf("expected empty merge")
	}
}

func TestPolyline(t *testing.T) {
	// The example from the format's documentation.
	pts := []math.Point2LL{math.LL(38.5, -120.2), math.LL(40.7, -120.95), math.LL(43.252, -126.453)}
	if s := string(EncodePoints(pts)); s != "_p~iF~ps|U_ulLnnqC_mqNvxq`@" {
		t.Errorf("got %q", s)
	}

	_, r := makeRoute(t)
	dec, err := DecodePoints([]byte(Polyline(r)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dec) != len(r.Points) {
		t.Fatalf("got %d points, expected %d", len(dec), len(r.Points))
	}
	for i := range dec {
		if !math.PositionsEqual(dec[i], r.Points[i], 1e-5) {
			t.Errorf("point %d: got %v, expected %v", i, dec[i], r.Points[i])
		}
	}
}

func TestKML(t *testing.T) {
	_, r := makeRoute(t)

	var buf bytes.Buffer
	if err := WriteKML(&buf, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := buf.String()
	for _, sub := range []string{"<kml", "<LineString>", "<coordinates>", "KTST RWY 36", "RWY 36</name>", "Via A B"} {
		if !strings.Contains(s, sub) {
			t.Errorf("output missing %q", sub)
		}
	}

	if err := WriteKML(&buf, &taxi.Route{Airport: "KTST", Runway: "36"}); err == nil {
		t.Errorf("expected an error for a route that wasn't found")
	}
}

func TestGraphJSON(t *testing.T) {
	g, _ := makeRoute(t)

	var buf bytes.Buffer
	if err := WriteGraphJSON(&buf, "KTST", g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Airport string                     `json:"airport"`
		Edges   int                        `json:"edges"`
		Runways map[string]string          `json:"runways"`
		Nodes   map[string]json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Airport != "KTST" || decoded.Edges != g.NumEdges() || len(decoded.Nodes) != g.Len() {
		t.Errorf("unexpected graph JSON %+v", decoded)
	}
	if k, _ := g.RunwayNode("36"); decoded.Runways["36"] != string(k) {
		t.Errorf("runway 36: got %q, expected %q", decoded.Runways["36"], k)
	}

	// Nodes appear in creation order; they're the only objects at this
	// indent.
	s, last := buf.String(), -1
	for _, k := range g.Keys() {
		idx := strings.Index(s, "\n    \""+string(k)+"\": {")
		if idx <= last {
			t.Errorf("node %s out of order", k)
		}
		last = idx
	}
}
