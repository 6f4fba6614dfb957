// math/errors.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "errors"

var (
	ErrDegeneratePolygon = errors.New("Polygon has fewer than three vertices")
	ErrInvalidWidth      = errors.New("Width must be positive")
	ErrNonFinite         = errors.New("Non-finite coordinate")
	ErrZeroLengthLine    = errors.New("Line has zero length")
)
