// taxi/errors.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import "errors"

var (
	ErrDataIntegrity = errors.New("Inconsistent taxiway data")
	ErrGeometry      = errors.New("Invalid geometry")
	ErrNoSegments    = errors.New("No named taxiway segments")
	ErrUnknownNode   = errors.New("Unknown node")
)
