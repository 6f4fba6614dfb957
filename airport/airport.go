// airport/airport.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taxiroute/taxiroute/math"
)

// Segment is a single straight piece of taxiway between two positions.
// Segments are not connected to each other in the source data; any
// connectivity comes from shared endpoint positions.
type Segment struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"` // e.g. "A"; may be empty
	Index int           `json:"index"`
	Start math.Point2LL `json:"start"`
	End   math.Point2LL `json:"end"`
	Width float64       `json:"width"` // feet

	Midpoint math.Point2LL `json:"midpoint"`
}

// MakeSegment returns a Segment with its midpoint filled in. The index is
// left at zero; see AssignIndices.
func MakeSegment(id int64, name string, start, end math.Point2LL, width float64) Segment {
	return Segment{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Start:    start,
		End:      end,
		Width:    width,
		Midpoint: math.Mid2LL(start, end),
	}
}

// Label returns the segment's display name, e.g. "A.3".
func (s Segment) Label() string {
	return s.Name + "." + strconv.Itoa(s.Index)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s %s-%s", s.Label(), s.Start.DDString(), s.End.DDString())
}

type RunwayEnd struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"` // e.g. "04L"
	Position math.Point2LL `json:"position"`
	Heading  float64       `json:"heading"`
}

type Runway struct {
	ID        int64     `json:"id"`
	Primary   RunwayEnd `json:"primary"`
	Secondary RunwayEnd `json:"secondary"`
	Width     float64   `json:"width"`  // feet
	Length    float64   `json:"length"` // feet

	// Footprint is the quadrilateral covered by the runway surface; it is
	// only used to detect taxiway segments that cross onto the runway.
	Footprint []math.Point2LL `json:"footprint,omitempty"`
}

// Name returns the runway's name in the usual form, e.g. "04L/22R".
func (r Runway) Name() string {
	return r.Primary.Name + "/" + r.Secondary.Name
}

// Polygon returns the runway's footprint, computing it from the
// centerline and width if it hasn't been already.
func (r Runway) Polygon() ([]math.Point2LL, error) {
	if r.Footprint != nil {
		return r.Footprint, nil
	}
	return math.BufferedPolygon(r.Primary.Position, r.Secondary.Position, r.Width)
}

type Airport struct {
	Ident    string        `json:"ident"`
	Name     string        `json:"name"`
	City     string        `json:"city,omitempty"`
	State    string        `json:"state,omitempty"`
	Location math.Point2LL `json:"location"`

	Runways  []Runway  `json:"runways"`
	Segments []Segment `json:"segments"`
}

// RunwayEnds returns both ends of all of the airport's runways, in runway
// order.
func (ap *Airport) RunwayEnds() []RunwayEnd {
	ends := make([]RunwayEnd, 0, 2*len(ap.Runways))
	for _, rwy := range ap.Runways {
		ends = append(ends, rwy.Primary, rwy.Secondary)
	}
	return ends
}

// TidyRunway normalizes a runway name as it might be entered by a user:
// surrounding whitespace and any "RW" prefix are removed and it is upper
// cased.
func TidyRunway(r string) string {
	r = strings.ToUpper(strings.TrimSpace(r))
	r = strings.TrimPrefix(r, "RWY")
	r = strings.TrimPrefix(r, "RW")
	return strings.TrimSpace(r)
}

// LookupRunwayEnd returns the runway end with the given name, e.g. "22R".
func (ap *Airport) LookupRunwayEnd(name string) (RunwayEnd, error) {
	name = TidyRunway(name)
	for _, end := range ap.RunwayEnds() {
		if TidyRunway(end.Name) == name {
			return end, nil
		}
	}
	return RunwayEnd{}, fmt.Errorf("%s: %s: %w", ap.Ident, name, ErrUnknownRunway)
}

// ComputeFootprints fills in the Footprint of each runway that doesn't
// already have one.
func (ap *Airport) ComputeFootprints() error {
	for i, rwy := range ap.Runways {
		if rwy.Footprint != nil {
			continue
		}
		fp, err := math.BufferedPolygon(rwy.Primary.Position, rwy.Secondary.Position, rwy.Width)
		if err != nil {
			return fmt.Errorf("%s: runway %s: %w", ap.Ident, rwy.Name(), err)
		}
		ap.Runways[i].Footprint = fp
	}
	return nil
}

// Extent returns the bounding box of everything at the airport.
func (ap *Airport) Extent() math.Extent2D {
	e := math.EmptyExtent2D()
	for _, seg := range ap.Segments {
		e = math.Union(math.Union(e, seg.Start), seg.End)
	}
	for _, end := range ap.RunwayEnds() {
		e = math.Union(e, end.Position)
	}
	if e.IsEmpty() {
		e = math.Union(e, ap.Location)
	}
	return e
}
