// export/geojson.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/taxi"
	"github.com/taxiroute/taxiroute/util"
)

// Feature "layer" property values, so that consumers can style and
// filter the features of merged collections.
const (
	LayerRunway       = "runway"
	LayerRunwayEnd    = "runway_end"
	LayerTaxiway      = "taxiway"
	LayerNode         = "node"
	LayerEdge         = "edge"
	LayerRoute        = "route"
	LayerLeg          = "leg"
	LayerIntersection = "intersection"
)

func point(p math.Point2LL) orb.Point {
	return orb.Point(p)
}

func lineString(pts []math.Point2LL) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = point(p)
	}
	return ls
}

// polygon returns the polygon with a closed ring, as GeoJSON requires.
func polygon(pts []math.Point2LL) orb.Polygon {
	ring := orb.Ring(lineString(pts))
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

func newFeature(geom orb.Geometry, layer string) *geojson.Feature {
	f := geojson.NewFeature(geom)
	f.Properties["layer"] = layer
	return f
}

func withBBox(fc *geojson.FeatureCollection) *geojson.FeatureCollection {
	if len(fc.Features) == 0 {
		return fc
	}
	b := fc.Features[0].Geometry.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	fc.BBox = geojson.NewBBox(b)
	return fc
}

// AirportGeoJSON returns the airport's runway footprints, runway ends and
// taxiway chains.
func AirportGeoJSON(ap *airport.Airport) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for _, rwy := range ap.Runways {
		fp, err := rwy.Polygon()
		if err != nil {
			return nil, err
		}
		f := newFeature(polygon(fp), LayerRunway)
		f.Properties["name"] = rwy.Name()
		f.Properties["width_ft"] = rwy.Width
		f.Properties["length_ft"] = rwy.Length
		fc.Append(f)
	}

	for _, end := range ap.RunwayEnds() {
		f := newFeature(point(end.Position), LayerRunwayEnd)
		f.Properties["name"] = end.Name
		f.Properties["heading"] = end.Heading
		fc.Append(f)
	}

	for _, chain := range airport.ChainTaxiways(ap.Segments, airport.ConnectDistanceKm) {
		var pts []math.Point2LL
		for i, seg := range chain.Segments {
			if i == 0 || seg.Start != pts[len(pts)-1] {
				pts = append(pts, seg.Start)
			}
			pts = append(pts, seg.End)
		}
		f := newFeature(lineString(pts), LayerTaxiway)
		f.Properties["name"] = chain.Name
		f.Properties["label"] = chain.Label()
		f.Properties["segments"] = len(chain.Segments)
		fc.Append(f)
	}

	return withBBox(fc), nil
}

// GraphGeoJSON returns the graph's nodes as points and its edges as
// two-point line strings. Nodes where some transition is a sharp turn
// have a "sharp_turns" property listing them.
func GraphGeoJSON(g *taxi.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	nodes := g.Nodes()
	for _, n := range nodes {
		f := newFeature(point(n.Pos), LayerNode)
		f.ID = string(n.Key)
		f.Properties["name"] = n.Name()
		f.Properties["degree"] = len(n.Neighbors)
		switch src := n.Source.(type) {
		case taxi.RunwaySource:
			f.Properties["kind"] = "runway"
			f.Properties["runway"] = src.End.Name
		case taxi.TaxiwaySource:
			f.Properties["kind"] = "taxiway"
		}

		var sharp [][2]string
		nbrs := util.SortedMapKeys(n.Neighbors)
		for _, a := range nbrs {
			for _, b := range nbrs {
				if n.IsSharpTurn(a, b) {
					sharp = append(sharp, [2]string{string(a), string(b)})
				}
			}
		}
		if sharp != nil {
			f.Properties["sharp_turns"] = sharp
		}
		fc.Append(f)
	}

	// Emit each undirected edge once, from the endpoint created first.
	seen := make(map[taxi.NodeKey]bool)
	for _, n := range nodes {
		seen[n.Key] = true
		for _, k := range util.SortedMapKeys(n.Neighbors) {
			if seen[k] {
				continue
			}
			w := n.Neighbors[k]
			other, _ := g.Node(k)
			f := newFeature(orb.LineString{point(n.Pos), point(other.Pos)}, LayerEdge)
			f.Properties["from"] = string(n.Key)
			f.Properties["to"] = string(k)
			f.Properties["taxiway"] = n.Via[k]
			f.Properties["km"] = w
			fc.Append(f)
		}
	}

	return withBBox(fc)
}

// RouteGeoJSON returns the route as a single line string followed by one
// feature per leg. A route that wasn't found gives an empty collection.
func RouteGeoJSON(r *taxi.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if !r.Found() {
		return fc
	}

	f := newFeature(lineString(r.Points), LayerRoute)
	f.Properties["airport"] = r.Airport
	f.Properties["runway"] = r.Runway
	f.Properties["taxiways"] = r.Taxiways
	f.Properties["km"] = r.Path.Distance
	fc.Append(f)

	for i, leg := range r.Legs {
		lf := newFeature(orb.LineString{point(r.Points[i]), point(r.Points[i+1])}, LayerLeg)
		lf.Properties["index"] = i
		lf.Properties["taxiway"] = leg.Taxiway
		lf.Properties["km"] = leg.Distance
		fc.Append(lf)
	}

	return withBBox(fc)
}

// IntersectionsGeoJSON returns a point for each place where a taxiway
// segment leads onto a runway.
func IntersectionsGeoJSON(isects []airport.Intersection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, is := range isects {
		f := newFeature(point(is.Position), LayerIntersection)
		f.Properties["runway"] = is.Runway.Name()
		f.Properties["segment"] = is.Segment.Label()
		f.Properties["at_start"] = is.AtStart
		fc.Append(f)
	}
	return withBBox(fc)
}

// Merge returns a collection with the features of all of the given ones.
func Merge(fcs ...*geojson.FeatureCollection) *geojson.FeatureCollection {
	merged := geojson.NewFeatureCollection()
	for _, fc := range fcs {
		merged.Features = append(merged.Features, fc.Features...)
	}
	return withBBox(merged)
}

func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
