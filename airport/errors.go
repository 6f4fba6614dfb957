// airport/errors.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import "errors"

var (
	ErrDuplicateRunwayEnd = errors.New("Duplicate runway end")
	ErrInvalidAirport     = errors.New("Invalid airport data")
	ErrUnknownAirport     = errors.New("Unknown airport")
	ErrUnknownRunway      = errors.New("Unknown runway")
)
