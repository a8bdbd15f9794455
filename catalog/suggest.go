package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the candidate closest to name, or "" when none is close.
// Candidates containing name as a fuzzy subsequence win first; otherwise
// the smallest case-insensitive edit distance is taken if it is at most
// half the length of name (and at least 2).
func Suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", -1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist <= max(2, len(name)/2) {
		return best
	}
	return ""
}

func unknown(sentinel error, name, where string, candidates []string) error {
	if s := Suggest(name, candidates); s != "" {
		return fmt.Errorf("%w: %q in %s (did you mean %q?)", sentinel, name, where, s)
	}
	return fmt.Errorf("%w: %q in %s", sentinel, name, where)
}
