// navdata/sqlite.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/math"
)

// OpenSQLite opens a navdatareader SQLite database read-only.
func OpenSQLite(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+(&url.URL{Path: path}).EscapedPath()+"?mode=ro")
	if err != nil {
		return nil, err
	}
	return db, nil
}

// LoadSQLite loads the airport with the given ident from a navdatareader
// SQLite database. The airport's runways and taxi paths are read
// concurrently. Unnamed taxi paths are dropped and the rest are indexed
// by name; runway footprints are computed and the result is validated.
func LoadSQLite(ctx context.Context, path string, ident string, lg *log.Logger) (*airport.Airport, error) {
	start := time.Now()

	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ap, id, err := queryAirport(ctx, db, ident)
	if err != nil {
		return nil, err
	}

	var segments []airport.Segment
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		ap.Runways, err = queryRunways(ctx, db, id)
		return err
	})
	eg.Go(func() error {
		var err error
		segments, err = queryTaxiPaths(ctx, db, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", ident, err)
	}

	ap.Segments = airport.AssignIndices(segments)
	if n := len(segments) - len(ap.Segments); n > 0 {
		lg.Debugf("%s: dropped %d unnamed taxi paths", ident, n)
	}

	if err := ap.ComputeFootprints(); err != nil {
		return nil, err
	}
	if err := ap.Validate(lg); err != nil {
		return nil, err
	}

	lg.Info("loaded airport", slog.String("ident", ap.Ident), slog.Int("runways", len(ap.Runways)),
		slog.Int("segments", len(ap.Segments)), slog.Duration("elapsed", time.Since(start)))

	return ap, nil
}

func queryAirport(ctx context.Context, db *sql.DB, ident string) (*airport.Airport, int64, error) {
	var id int64
	var name, city, state sql.NullString
	var lon, lat float64
	err := db.QueryRowContext(ctx,
		`SELECT airport_id, ident, name, city, state, lonx, laty FROM airport WHERE ident = ?`, ident).
		Scan(&id, &ident, &name, &city, &state, &lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("%s: %w", ident, airport.ErrUnknownAirport)
	} else if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ident, err)
	}

	return &airport.Airport{
		Ident:    ident,
		Name:     name.String,
		City:     city.String,
		State:    state.String,
		Location: math.LL(lat, lon),
	}, id, nil
}

type runwayEndRow struct {
	id       sql.NullInt64
	name     sql.NullString
	heading  sql.NullFloat64
	lon, lat sql.NullFloat64
}

func (r runwayEndRow) end() airport.RunwayEnd {
	return airport.RunwayEnd{
		ID:       r.id.Int64,
		Name:     r.name.String,
		Position: math.LL(r.lat.Float64, r.lon.Float64),
		Heading:  r.heading.Float64,
	}
}

func queryRunways(ctx context.Context, db *sql.DB, airportID int64) ([]airport.Runway, error) {
	rows, err := db.QueryContext(ctx, `
SELECT r.runway_id, r.primary_end_id, r.secondary_end_id, r.length, r.width,
       p.runway_end_id, p.name, p.heading, p.lonx, p.laty,
       s.runway_end_id, s.name, s.heading, s.lonx, s.laty
FROM runway r
LEFT JOIN runway_end p ON p.runway_end_id = r.primary_end_id
LEFT JOIN runway_end s ON s.runway_end_id = r.secondary_end_id
WHERE r.airport_id = ?
ORDER BY r.runway_id`, airportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runways []airport.Runway
	for rows.Next() {
		var rwy airport.Runway
		var primaryID, secondaryID int64
		var p, s runwayEndRow
		if err := rows.Scan(&rwy.ID, &primaryID, &secondaryID, &rwy.Length, &rwy.Width,
			&p.id, &p.name, &p.heading, &p.lon, &p.lat,
			&s.id, &s.name, &s.heading, &s.lon, &s.lat); err != nil {
			return nil, err
		}

		if !p.id.Valid || !p.lon.Valid || !p.lat.Valid {
			return nil, fmt.Errorf("runway %d: primary end %d: %w", rwy.ID, primaryID, airport.ErrUnknownRunway)
		}
		if !s.id.Valid || !s.lon.Valid || !s.lat.Valid {
			return nil, fmt.Errorf("runway %d: secondary end %d: %w", rwy.ID, secondaryID, airport.ErrUnknownRunway)
		}
		rwy.Primary, rwy.Secondary = p.end(), s.end()
		runways = append(runways, rwy)
	}
	return runways, rows.Err()
}

func queryTaxiPaths(ctx context.Context, db *sql.DB, airportID int64) ([]airport.Segment, error) {
	rows, err := db.QueryContext(ctx, `
SELECT taxi_path_id, name, width, start_lonx, start_laty, end_lonx, end_laty
FROM taxi_path
WHERE airport_id = ?
ORDER BY taxi_path_id`, airportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []airport.Segment
	for rows.Next() {
		var id int64
		var name sql.NullString
		var width sql.NullFloat64
		var slon, slat, elon, elat float64
		if err := rows.Scan(&id, &name, &width, &slon, &slat, &elon, &elat); err != nil {
			return nil, err
		}
		segments = append(segments,
			airport.MakeSegment(id, name.String, math.LL(slat, slon), math.LL(elat, elon), width.Float64))
	}
	return segments, rows.Err()
}
