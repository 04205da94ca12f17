package algo

import (
	"testing"

	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/assert"
)

func entry(ref string, score float64) schema.BatchEntry {
	return schema.BatchEntry{RecordRef: ref, Result: schema.EvaluationResult{Overall: schema.Overall{Score: score}}}
}

func TestRankEvaluations(t *testing.T) {
	entries := []schema.BatchEntry{entry("a", 50), entry("b", 80), entry("c", 50), entry("d", 90)}

	ranked := RankEvaluations(entries, 0)
	refs := make([]string, len(ranked))
	for i, e := range ranked {
		refs[i] = e.RecordRef
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, refs)

	assert.Len(t, RankEvaluations(entries, 2), 2)
	assert.Len(t, RankEvaluations(entries, 10), 4)
	assert.Empty(t, RankEvaluations(nil, 3))
}
