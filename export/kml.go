// export/kml.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"fmt"
	"io"
	"strings"

	kml "github.com/twpayne/go-kml/v2"

	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/taxi"
)

func kmlCoordinates(pts ...math.Point2LL) kml.Element {
	c := make([]kml.Coordinate, len(pts))
	for i, p := range pts {
		c[i] = kml.Coordinate{Lon: p[0], Lat: p[1]}
	}
	return kml.Coordinates(c...)
}

// WriteKML writes the route as a KML document holding a line string for
// the route and points marking its start and its runway end.
func WriteKML(w io.Writer, r *taxi.Route) error {
	if !r.Found() {
		return fmt.Errorf("%s: no route to runway %s", r.Airport, r.Runway)
	}

	name := fmt.Sprintf("%s RWY %s", r.Airport, r.Runway)
	desc := fmt.Sprintf("Via %s, %.3f km", strings.Join(r.Taxiways, " "), r.Path.Distance)

	doc := kml.KML(
		kml.Document(
			kml.Name(name),
			kml.Placemark(
				kml.Name(name),
				kml.Description(desc),
				kml.LineString(
					kml.Tessellate(true),
					kmlCoordinates(r.Points...),
				),
			),
			kml.Placemark(
				kml.Name("Start"),
				kml.Point(kmlCoordinates(r.From)),
			),
			kml.Placemark(
				kml.Name("RWY "+r.Runway),
				kml.Point(kmlCoordinates(r.Points[len(r.Points)-1])),
			),
		),
	)
	return doc.WriteIndent(w, "", "  ")
}
