// taxi/locate_test.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/math"
)

func TestClosestSegment(t *testing.T) {
	segs := airport.AssignIndices([]airport.Segment{
		seg("A", math.LL(40, -73), math.LL(40, -72.99)),
		seg("B", math.LL(40.01, -73), math.LL(40.01, -72.99)),
		// Same start as B; B comes first and wins the tie.
		seg("C", math.LL(40.01, -73), math.LL(40.02, -73)),
	})
	// An unnamed segment right at the query position is ignored.
	segs = append([]airport.Segment{seg("", math.LL(40.011, -73), math.LL(40.012, -73))}, segs...)

	for _, tc := range []struct {
		p    math.Point2LL
		name string
	}{
		{p: math.LL(40.001, -73.001), name: "A"},
		{p: math.LL(40.011, -73), name: "B"},
		// The end of A is irrelevant; only starts are considered.
		{p: math.LL(40, -72.99), name: "A"},
	} {
		s, err := ClosestSegment(tc.p, segs)
		if err != nil {
			t.Errorf("%v: unexpected error %v", tc.p, err)
		} else if s.Name != tc.name {
			t.Errorf("%v: got %s, expected %s", tc.p, s.Label(), tc.name)
		}
	}

	if _, err := ClosestSegment(math.LL(40, -73), nil); !errors.Is(err, ErrNoSegments) {
		t.Errorf("expected ErrNoSegments, got %v", err)
	}
	if _, err := ClosestSegment(math.LL(40, -73), segs[:1]); !errors.Is(err, ErrNoSegments) {
		t.Errorf("only unnamed segments: expected ErrNoSegments, got %v", err)
	}
	if _, err := ClosestSegment(math.LL(gomath.NaN(), -73), segs); !errors.Is(err, math.ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
}

func TestAnchor(t *testing.T) {
	segs := airport.AssignIndices([]airport.Segment{
		seg("A", math.LL(40, -73), math.LL(40, -72.99)),
		seg("B", math.LL(40, -72.99), math.LL(40.01, -72.99)),
	})
	g, err := Build(segs, nil, DefaultBuildOptions(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k, err := g.Anchor(math.LL(40.003, -72.991), segs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != MakeNodeKey(math.LL(40, -72.99)) {
		t.Errorf("anchored at %s", k)
	}

	// Segments that weren't used to build the graph have no nodes.
	other := []airport.Segment{seg("Q", math.LL(10, 10), math.LL(10, 11))}
	if _, err := g.Anchor(math.LL(10, 10), other); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}

	if _, ok := g.NodeAt(math.LL(gomath.NaN(), 0)); ok {
		t.Errorf("NodeAt found a node for a NaN position")
	}
}
