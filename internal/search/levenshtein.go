// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package search

// similarity returns a normalized edit-distance similarity in [0,1]:
//
//	1 - levenshtein(a, b) / max(len(a), len(b))
//
// Equal strings score 1, and either string being empty scores 0.
// Distances are computed over runes so multi-byte characters count as
// single edits.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// Keep ra the shorter string so the table rows stay small.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	dist := levenshtein(ra, rb)
	return 1 - float64(dist)/float64(len(rb))
}

// levenshtein computes the edit distance between two rune slices with
// unit-cost insert, delete, and substitute operations, using the full
// (len(a)+1) x (len(b)+1) dynamic program collapsed to two rows.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
