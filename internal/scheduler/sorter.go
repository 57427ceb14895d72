package scheduler

import "sort"

// CanonicalSort orders candidates by score (higher first), breaking ties by
// activity ID ascending so identical inputs always produce the same plan.
func CanonicalSort(candidates []ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Activity.ID < b.Activity.ID
	})
}
