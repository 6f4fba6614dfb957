// math/vecmat.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// point 2f

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2f(a [2]float64, b [2]float64) [2]float64 {
	return [2]float64{a[0] + b[0], a[1] + b[1]}
}

// midpoint of a and b
func Mid2f(a [2]float64, b [2]float64) [2]float64 {
	return Scale2f(Add2f(a, b), 0.5)
}

// a-b
func Sub2f(a [2]float64, b [2]float64) [2]float64 {
	return [2]float64{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2f(a [2]float64, s float64) [2]float64 {
	return [2]float64{s * a[0], s * a[1]}
}

func Dot(a, b [2]float64) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Length of v
func Length2f(v [2]float64) float64 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Normalizes the given vector.
func Normalize2f(a [2]float64) [2]float64 {
	l := Length2f(a)
	if l == 0 {
		return [2]float64{0, 0}
	}
	return Scale2f(a, 1/l)
}

// Perp2f returns v rotated 90 degrees counter-clockwise.
func Perp2f(v [2]float64) [2]float64 {
	return [2]float64{-v[1], v[0]}
}

// AngleBetween returns the angle between two vectors in degrees; the
// result is in [0,180].
func AngleBetween(v1, v2 [2]float64) float64 {
	// atan2 of the cross and dot products stays exact near 0 and 180,
	// where acos of the normalized dot product does not.
	cross := v1[0]*v2[1] - v1[1]*v2[0]
	return Degrees(Atan2(Abs(cross), Dot(v1, v2)))
}
