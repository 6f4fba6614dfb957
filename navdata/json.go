// navdata/json.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/util"
)

// ExtractVersion is the version of the JSON extract format written by
// WriteFile.
const ExtractVersion = 1

var ErrExtractVersion = errors.New("Unsupported extract version")

// Extract is the top-level object of a JSON airport extract, which holds
// everything needed to route at a single airport without the navdata
// database.
type Extract struct {
	Version int              `json:"version"`
	Airport *airport.Airport `json:"airport"`
}

// Decode reads a JSON extract from r.
func Decode(r io.Reader, lg *log.Logger) (*airport.Airport, error) {
	var ex Extract
	if err := util.UnmarshalJSON(r, &ex); err != nil {
		return nil, err
	}
	if ex.Version != ExtractVersion {
		return nil, fmt.Errorf("%d: %w", ex.Version, ErrExtractVersion)
	}
	if ex.Airport == nil {
		return nil, fmt.Errorf("no airport in extract: %w", airport.ErrUnknownAirport)
	}

	ap := ex.Airport
	if err := ap.ComputeFootprints(); err != nil {
		return nil, err
	}
	if err := ap.Validate(lg); err != nil {
		return nil, err
	}
	return ap, nil
}

// LoadFile reads a JSON extract from the given file, which may be zstd
// compressed.
func LoadFile(path string, lg *log.Logger) (*airport.Airport, error) {
	r, err := util.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ap, err := Decode(r, lg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lg.Infof("%s: loaded %s with %d segments", path, ap.Ident, len(ap.Segments))
	return ap, nil
}

// Encode writes the airport to w as a JSON extract.
func Encode(w io.Writer, ap *airport.Airport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Extract{Version: ExtractVersion, Airport: ap})
}

// WriteFile writes the airport to the given file as a JSON extract; it is
// zstd compressed if the filename ends in .zst.
func WriteFile(path string, ap *airport.Airport) error {
	w, err := util.CreateFile(path)
	if err != nil {
		return err
	}
	if err := Encode(w, ap); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
