package algo

import (
	"cmp"
	"slices"

	"github.com/huangsam/recordlens/schema"
)

// RankEvaluations sorts batch entries by final score in descending order,
// assigns ranks and returns the top 'limit' entries. Equal scores keep their
// input order. A non-positive limit returns every entry.
func RankEvaluations(entries []schema.BatchEntry, limit int) []schema.BatchEntry {
	slices.SortStableFunc(entries, func(a, b schema.BatchEntry) int {
		return cmp.Compare(b.Result.Overall.Score, a.Result.Overall.Score)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
