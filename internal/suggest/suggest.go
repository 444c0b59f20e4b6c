// Package suggest finds the closest known name for a misspelled one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate with the smallest edit distance to name.
// Comparison is case insensitive. Candidates further than a third of the
// name length (minimum 2 edits) are not considered close.
func Closest(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	limit := max(2, len(name)/3)
	best := ""
	bestDist := limit + 1
	lower := strings.ToLower(name)

	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best = c
			bestDist = d
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}
