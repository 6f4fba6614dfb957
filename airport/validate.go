// airport/validate.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import (
	"fmt"

	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/util"
)

// Validate checks the airport's records for problems that would make
// routing over them meaningless. All of the problems found are reported
// in the returned error, which wraps ErrInvalidAirport; minor issues are
// only logged.
func (ap *Airport) Validate(lg *log.Logger) error {
	var e util.ErrorLogger
	e.Push(ap.Ident)
	defer e.CheckDepth(0)

	if !ap.Location.IsFinite() {
		e.ErrorString("non-finite airport location %v", ap.Location)
	}

	seen := make(map[string]int64)
	for _, rwy := range ap.Runways {
		e.Push("Runway " + rwy.Name())

		for _, end := range []RunwayEnd{rwy.Primary, rwy.Secondary} {
			if end.Name == "" {
				e.ErrorString("runway end %d has no name", end.ID)
			} else if id, ok := seen[TidyRunway(end.Name)]; ok {
				e.Error(fmt.Errorf("%s: ends %d and %d: %w", end.Name, id, end.ID, ErrDuplicateRunwayEnd))
			} else {
				seen[TidyRunway(end.Name)] = end.ID
			}
			if err := math.CheckFinite(end.Position); err != nil {
				e.Error(err)
			}
		}

		if !(rwy.Width > 0) {
			e.ErrorString("width %f must be positive", rwy.Width)
		}
		if rwy.Primary.Position == rwy.Secondary.Position {
			e.ErrorString("both ends are at %s", rwy.Primary.Position.DDString())
		}

		e.Pop()
	}

	unnamed := 0
	for _, seg := range ap.Segments {
		if err := math.CheckFinite(seg.Start, seg.End); err != nil {
			e.Push("Segment " + seg.Label())
			e.Error(err)
			e.Pop()
		}
		if seg.Name == "" {
			unnamed++
		} else if !(seg.Width > 0) {
			lg.Debugf("%s: segment %s has width %f", ap.Ident, seg.Label(), seg.Width)
		}
	}
	if unnamed > 0 {
		lg.Infof("%s: %d unnamed taxi segments will be ignored", ap.Ident, unnamed)
	}

	e.Pop()

	if e.HaveErrors() {
		e.PrintErrors(lg)
		return fmt.Errorf("%w: %w", ErrInvalidAirport, e.Err())
	}
	return nil
}
