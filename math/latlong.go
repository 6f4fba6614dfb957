// math/latlong.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	"regexp"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////
// Point2LL

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float64

// LL returns the Point2LL for the given latitude and longitude; it saves
// callers from having to remember the component order.
func LL(lat, long float64) Point2LL {
	return Point2LL{long, lat}
}

func (p Point2LL) Longitude() float64 {
	return p[0]
}

func (p Point2LL) Latitude() float64 {
	return p[1]
}

// IsFinite returns true if neither coordinate is NaN or infinite.
func (p Point2LL) IsFinite() bool {
	return IsFinite(p[0]) && IsFinite(p[1])
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

func (p Point2LL) String() string {
	return p.DDString()
}

var (
	// pair of floats (no exponents)
	reWaypointFloat = regexp.MustCompile(`^(\-?[0-9]+\.?[0-9]*), *(\-?[0-9]+\.?[0-9]*)$`)
	// https://en.wikipedia.org/wiki/ISO_6709#String_expression_(Annex_H)
	// e.g. +403527.580-0734452.955
	reISO6709H = regexp.MustCompile(`^([-+][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])([-+][0-9][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])`)
)

// Parse positions of the form "N40.37.58.400, W073.46.17.000" without
// going through a regexp.
func tryParseDotted(b []byte) (Point2LL, bool) {
	if len(b) == 0 || (b[0] != 'N' && b[0] != 'S') {
		return Point2LL{}, false
	}
	negateLatitude := b[0] == 'S'

	// Skip over the N/S and parse the four dotted numbers following it
	b = b[1:]
	latitude, n, ok := tryParseDottedNumbers(b)
	if !ok {
		return Point2LL{}, false
	}
	if negateLatitude {
		latitude = -latitude
	}
	b = b[n:]

	if len(b) == 0 || b[0] != ',' {
		return Point2LL{}, false
	}
	b = b[1:]

	if len(b) > 0 && b[0] == ' ' {
		b = b[1:]
	}

	if len(b) == 0 || (b[0] != 'E' && b[0] != 'W') {
		return Point2LL{}, false
	}
	negateLongitude := b[0] == 'W'

	b = b[1:]
	longitude, _, ok := tryParseDottedNumbers(b)
	if !ok {
		return Point2LL{}, false
	}
	if negateLongitude {
		longitude = -longitude
	}

	return Point2LL{longitude, latitude}, true
}

// Parse a latlong of the form aaa.bbb.ccc.ddd and return the
// corresponding value, the number of bytes of b consumed, and a bool
// indicating success or failure.
func tryParseDottedNumbers(b []byte) (float64, int, bool) {
	n := 0
	var ll float64

	scan := func(b []byte) int {
		for i, v := range b {
			if v == '.' || v == ',' {
				return i
			}
		}
		return len(b)
	}

	for i := 0; i < 4; i++ {
		end := scan(b)
		if end == 0 {
			return 0, 0, false
		}

		value := 0
		for _, ch := range b[:end] {
			if ch < '0' || ch > '9' {
				return 0, 0, false
			}
			value *= 10
			value += int(ch - '0')
		}
		if i == 3 {
			// Treat the last set of digits as a decimal, so that
			// Nxx.yy.zz.1 is handled like Nxx.yy.zz.100.
			for j := end; j < 3; j++ {
				value *= 10
			}
		}

		scales := [4]float64{1, 60, 3600, 3600000}
		ll += float64(value) / scales[i]
		n += end
		b = b[end:]

		if i < 3 {
			if len(b) == 0 {
				return 0, 0, false
			}
			b = b[1:]
			n++
		}
	}

	return ll, n, true
}

// ParseLatLong parses a position given as "lat, long" decimal degrees,
// dotted DMS ("N40.37.58.400, W073.46.17.000") or ISO 6709 Annex H
// ("+403758.400-0734617.000").
func ParseLatLong(llstr []byte) (Point2LL, error) {
	p, err := parseLatLong(llstr)
	if err != nil {
		return Point2LL{}, err
	}
	if Abs(p[1]) > 90 || Abs(p[0]) > 180 {
		return Point2LL{}, fmt.Errorf("%s: latlong out of range", llstr)
	}
	return p, nil
}

func parseLatLong(llstr []byte) (Point2LL, error) {
	if p, ok := tryParseDotted(llstr); ok {
		return p, nil
	} else if strs := reWaypointFloat.FindStringSubmatch(string(llstr)); len(strs) == 3 {
		var p Point2LL
		if l, err := strconv.ParseFloat(strs[1], 64); err != nil {
			return Point2LL{}, err
		} else {
			p[1] = l
		}
		if l, err := strconv.ParseFloat(strs[2], 64); err != nil {
			return Point2LL{}, err
		} else {
			p[0] = l
		}
		return p, nil
	} else if strs := reISO6709H.FindStringSubmatch(string(llstr)); len(strs) == 9 {
		parse := func(deg, min, sec, frac string) (float64, error) {
			d, err := strconv.Atoi(deg)
			if err != nil {
				return 0, err
			}
			m, err := strconv.Atoi(min)
			if err != nil {
				return 0, err
			}
			s, err := strconv.Atoi(sec)
			if err != nil {
				return 0, err
			}
			f, err := strconv.Atoi(frac)
			if err != nil {
				return 0, err
			}
			// Use the sign character rather than the sign of d so that
			// "-00" degrees still gives a negative result.
			sgn := float64(1)
			if deg[0] == '-' {
				sgn = -1
			}
			d = Abs(d)
			return sgn * (float64(d) + float64(m)/60 + float64(s)/3600 + float64(f)/3600000), nil
		}

		var p Point2LL
		var err error
		p[1], err = parse(strs[1], strs[2], strs[3], strs[4])
		if err != nil {
			return Point2LL{}, err
		}
		p[0], err = parse(strs[5], strs[6], strs[7], strs[8])
		if err != nil {
			return Point2LL{}, err
		}
		return p, nil
	} else {
		return Point2LL{}, fmt.Errorf("%s: invalid latlong string", llstr)
	}
}

func Add2LL(a Point2LL, b Point2LL) Point2LL {
	return Point2LL(Add2f(a, b))
}

func Mid2LL(a Point2LL, b Point2LL) Point2LL {
	return Point2LL(Mid2f(a, b))
}

func Sub2LL(a Point2LL, b Point2LL) Point2LL {
	return Point2LL(Sub2f(a, b))
}
