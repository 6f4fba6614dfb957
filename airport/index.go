// airport/index.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

// AssignIndices drops unnamed segments and numbers the remaining ones
// within each taxiway name, in order of appearance starting from zero,
// so that the first three segments of taxiway A are A.0, A.1 and A.2.
// The input slice is not modified.
func AssignIndices(segments []Segment) []Segment {
	next := make(map[string]int)
	var indexed []Segment
	for _, seg := range segments {
		if seg.Name == "" {
			continue
		}
		seg.Index = next[seg.Name]
		next[seg.Name]++
		indexed = append(indexed, seg)
	}
	return indexed
}
