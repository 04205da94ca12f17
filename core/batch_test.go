package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchInputs builds records whose final score falls as the index grows.
func batchInputs(t testing.TB, n int) []BatchInput {
	t.Helper()
	sample := loadSample(t)
	inputs := make([]BatchInput, n)
	for i := range n {
		rec := sample
		rec.Grades = make([]schema.GradeEntry, len(sample.Grades))
		for j, g := range sample.Grades {
			g.Grade = min(9, g.Grade+i)
			rec.Grades[j] = g
		}
		inputs[i] = BatchInput{Ref: fmt.Sprintf("student-%02d", i), Record: rec}
	}
	return inputs
}

func TestEvaluateBatchPreservesOrder(t *testing.T) {
	inputs := batchInputs(t, 8)

	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			entries, err := EvaluateBatch(context.Background(), inputs, schema.DefaultRubric(), workers)
			require.NoError(t, err)
			require.Len(t, entries, len(inputs))
			for i, e := range entries {
				assert.Equal(t, inputs[i].Ref, e.RecordRef)
				assert.Zero(t, e.Rank, "ranks are assigned by ranking")
				single, err := Evaluate(inputs[i].Record, schema.DefaultRubric())
				require.NoError(t, err)
				assert.Equal(t, single, e.Result)
			}
		})
	}
}

func TestEvaluateBatchEmpty(t *testing.T) {
	entries, err := EvaluateBatch(context.Background(), nil, schema.DefaultRubric(), 4)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEvaluateBatchFailure(t *testing.T) {
	inputs := batchInputs(t, 4)
	inputs[2].Record.TargetMajor = "천문학"
	rubric := schema.DefaultRubric()
	rubric.FallbackMajor = ""

	_, err := EvaluateBatch(context.Background(), inputs, rubric, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownMajor)
	assert.Contains(t, err.Error(), "student-02")
}

func TestEvaluateBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EvaluateBatch(ctx, batchInputs(t, 3), schema.DefaultRubric(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankBatch(t *testing.T) {
	inputs := batchInputs(t, 5)
	// Reverse so the best record comes last in input order.
	for i, j := 0, len(inputs)-1; i < j; i, j = i+1, j-1 {
		inputs[i], inputs[j] = inputs[j], inputs[i]
	}

	ranked, err := RankBatch(context.Background(), inputs, schema.DefaultRubric(), 2, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "student-00", ranked[0].RecordRef)
	for i, e := range ranked {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Result.Overall.Score, e.Result.Overall.Score)
		}
	}
}

func BenchmarkEvaluateBatch(b *testing.B) {
	inputs := batchInputs(b, 64)
	rubric := schema.DefaultRubric()
	ctx := context.Background()
	for b.Loop() {
		_, _ = EvaluateBatch(ctx, inputs, rubric, 8)
	}
}
