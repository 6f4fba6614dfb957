// cmd/taxiroute/main.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// taxiroute loads an airport's taxiway layout and finds the shortest
// taxi routes from a position to one or more runway ends.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goforj/godump"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/navdata"
	"github.com/taxiroute/taxiroute/taxi"
	"github.com/taxiroute/taxiroute/util"
)

var (
	dbPath        = flag.String("db", "", "navdatareader SQLite database to load airports from")
	dataPath      = flag.String("data", "", "JSON airport extract to load instead of the database (may be .zst compressed)")
	airportIdent  = flag.String("airport", "", "ICAO identifier of the airport")
	fromPos       = flag.String("from", "", "starting position, e.g. \"40.6413, -73.7781\" or \"N40.38.28.7, W073.46.41.2\"")
	runwayList    = flag.String("runway", "", "runway ends to route to, separated by commas (e.g., 04L,22R)")
	format        = flag.String("format", "text", "output format: text, geojson, kml, polyline, graph")
	outFile       = flag.String("o", "", "file to write output to (default: standard output)")
	extractFile   = flag.String("extract", "", "write the airport's data to the given JSON file (.zst to compress)")
	intersections = flag.Bool("intersections", false, "report where taxiways lead onto runways")
	epsilon       = flag.Float64("epsilon", math.DefaultPositionEpsilon, "tolerance in degrees under which positions are the same junction; 0 for exact matching")
	angles        = flag.Bool("angles", true, "compute turn angles at junctions")
	logLevel      = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir        = flag.String("logdir", "", "log file directory")
	configFile    = flag.String("config", "", "configuration file (default: TaxiRoute/config.json in the user config directory)")
	dump          = flag.Bool("dump", false, "print the computed routes' full contents")
)

func main() {
	flag.Parse()

	fn := util.Select(*configFile != "", *configFile, configFilePath(nil))
	config, configErr := LoadOrMakeDefaultConfig(fn)
	config.Override(flag.CommandLine)

	lg := log.New(config.LogLevel, *logDir)
	defer lg.CatchAndReportCrash()

	if configErr != nil {
		lg.Warnf("%v", configErr)
		fmt.Fprintf(os.Stderr, "%v; using defaults\n", configErr)
	}
	if err := config.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid configuration:\n%v\n", fn, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, config, lg); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, ErrNoRoute) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, config *Config, lg *log.Logger) error {
	if *airportIdent == "" && *dataPath == "" {
		flag.Usage()
		return errors.New("-airport or -data must be specified")
	}

	ap, err := loadAirport(ctx, config, lg)
	if err != nil {
		return err
	}

	if *extractFile != "" {
		if err := navdata.WriteFile(*extractFile, ap); err != nil {
			return err
		}
		lg.Infof("%s: wrote %s", ap.Ident, *extractFile)
	}

	planner := taxi.NewPlanner(config.PlannerOptions(), lg)
	res := Results{Airport: ap}
	if res.Graph, err = planner.Graph(ap); err != nil {
		return err
	}

	if *intersections {
		if res.Intersections, err = airport.FindIntersections(ap.Runways, ap.Segments); err != nil {
			return err
		}
		if res.Intersections == nil {
			res.Intersections = []airport.Intersection{}
		}
	}

	var unrouted []string
	if *runwayList != "" {
		if *fromPos == "" {
			return errors.New("-from must be given with -runway")
		}
		from, err := math.ParseLatLong([]byte(*fromPos))
		if err != nil {
			return fmt.Errorf("-from: %w", err)
		}

		for _, rwy := range strings.Split(*runwayList, ",") {
			r, err := planner.Route(ap, from, strings.TrimSpace(rwy))
			if err != nil {
				return err
			}
			res.Routes = append(res.Routes, r)
			if !r.Found() {
				unrouted = append(unrouted, r.Runway)
			}
		}
	}

	if *dump {
		godump.Dump(res.Routes)
	}

	if *outFile != "" {
		err = writeResultsFile(*outFile, config.Format, res)
	} else {
		err = writeResults(os.Stdout, config.Format, res)
	}
	if err != nil {
		return err
	}

	if len(unrouted) > 0 {
		return fmt.Errorf("%s: runway %s: %w", ap.Ident, strings.Join(unrouted, ", "), ErrNoRoute)
	}
	return nil
}

func loadAirport(ctx context.Context, config *Config, lg *log.Logger) (*airport.Airport, error) {
	if *dataPath != "" {
		ap, err := navdata.LoadFile(*dataPath, lg)
		if err != nil {
			return nil, err
		}
		if *airportIdent != "" && !strings.EqualFold(*airportIdent, ap.Ident) {
			return nil, fmt.Errorf("%s: file has airport %s: %w", *dataPath, ap.Ident, airport.ErrUnknownAirport)
		}
		return ap, nil
	}

	if config.Database == "" {
		return nil, errors.New("no airport database; specify one with -db or in the config file")
	}
	if err := util.CacheCullObjects(config.MaxCacheMB * 1024 * 1024); err != nil {
		lg.Warnf("unable to cull cache: %v", err)
	}
	return navdata.NewLibrary(config.Database, lg).Get(ctx, *airportIdent)
}
