package interpreter

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

// suggest finds the assigned name closest to a missing one. Subsequence
// matches are preferred; otherwise a small edit distance is accepted.
func suggest(missing ast.Variable, known []ast.Variable) string {
	if len(known) == 0 || missing == "" {
		return ""
	}
	candidates := make([]string, 0, len(known))
	for _, k := range known {
		candidates = append(candidates, string(k))
	}
	ranks := fuzzy.RankFindFold(string(missing), candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", -1
	limit := len(missing)/3 + 1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(string(missing), c)
		if d <= limit && (bestDistance < 0 || d < bestDistance) {
			best, bestDistance = c, d
		}
	}
	return best
}
