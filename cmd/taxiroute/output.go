// cmd/taxiroute/output.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/export"
	"github.com/taxiroute/taxiroute/taxi"
	"github.com/taxiroute/taxiroute/util"
)

var ErrNoRoute = errors.New("No route found")

// Results is everything computed for a single invocation.
type Results struct {
	Airport *airport.Airport
	Graph   *taxi.Graph
	Routes  []*taxi.Route
	// Intersections is nil unless they were requested.
	Intersections []airport.Intersection
}

func writeResults(w io.Writer, format string, res Results) error {
	switch format {
	case "text":
		return writeText(w, res)

	case "geojson":
		afc, err := export.AirportGeoJSON(res.Airport)
		if err != nil {
			return err
		}
		fcs := []*geojson.FeatureCollection{afc}
		for _, r := range res.Routes {
			fcs = append(fcs, export.RouteGeoJSON(r))
		}
		if res.Intersections != nil {
			fcs = append(fcs, export.IntersectionsGeoJSON(res.Intersections))
		}
		return export.WriteGeoJSON(w, export.Merge(fcs...))

	case "kml":
		found := util.FilterSlice(res.Routes, func(r *taxi.Route) bool { return r.Found() })
		if len(found) != 1 {
			return fmt.Errorf("KML output requires exactly one route; have %d", len(found))
		}
		return export.WriteKML(w, found[0])

	case "polyline":
		for _, r := range res.Routes {
			if r.Found() {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Runway, export.Polyline(r)); err != nil {
					return err
				}
			}
		}
		return nil

	case "graph":
		return export.WriteGraphJSON(w, res.Airport.Ident, res.Graph)

	default:
		return fmt.Errorf("%s: unknown output format", format)
	}
}

// writeResultsFile writes the results to the named file, compressing them
// if the name ends in .zst. The file is only complete once it has been
// closed, so errors from Close are returned too.
func writeResultsFile(path, format string, res Results) error {
	f, err := util.CreateFile(path)
	if err != nil {
		return err
	}
	if err := writeResults(f, format, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeText(w io.Writer, res Results) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s", res.Airport.Ident)
	if res.Airport.Name != "" {
		fmt.Fprintf(&b, " (%s)", res.Airport.Name)
	}
	if res.Graph != nil {
		fmt.Fprintf(&b, ": %d nodes, %d edges", res.Graph.Len(), res.Graph.NumEdges())
	}
	b.WriteString("\n")

	for _, r := range res.Routes {
		if !r.Found() {
			fmt.Fprintf(&b, "RWY %s: no route\n", r.Runway)
			continue
		}
		fmt.Fprintf(&b, "RWY %s: %s, %.3f km\n", r.Runway, strings.Join(r.Taxiways, " "), r.Path.Distance)
		for _, leg := range r.Legs {
			via := util.Select(leg.Taxiway == "", "-", leg.Taxiway)
			fmt.Fprintf(&b, "    %-6s %s -> %s  %.3f km\n", via, leg.From, leg.To, leg.Distance)
		}
		if len(r.SharpTurns) > 0 {
			fmt.Fprintf(&b, "    sharp turns at %s\n", strings.Join(util.MapSlice(r.SharpTurns,
				func(k taxi.NodeKey) string { return string(k) }), ", "))
		}
	}

	if res.Intersections != nil {
		fmt.Fprintf(&b, "%d taxiway/runway intersections\n", len(res.Intersections))
		for _, is := range res.Intersections {
			end := util.Select(is.AtStart, "start", "end")
			fmt.Fprintf(&b, "    %-8s %-6s %-5s %s\n", is.Runway.Name(), is.Segment.Label(), end, is.Position.DDString())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
