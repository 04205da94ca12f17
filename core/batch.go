package core

import (
	"context"
	"fmt"

	"github.com/huangsam/recordlens/core/algo"
	"github.com/huangsam/recordlens/schema"
	"golang.org/x/sync/errgroup"
)

// BatchInput pairs a record with the label it is reported under.
type BatchInput struct {
	Ref    string
	Record schema.StudentRecord
}

// EvaluateBatch evaluates records concurrently with at most 'workers' in flight.
// Entries come back in input order; rank them with algo.RankEvaluations.
// The first failure cancels the remaining work.
func EvaluateBatch(ctx context.Context, inputs []BatchInput, rubric *schema.RubricConfig, workers int) ([]schema.BatchEntry, error) {
	if workers <= 0 {
		workers = 1
	}
	entries := make([]schema.BatchEntry, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := Evaluate(in.Record, rubric)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", in.Ref, err)
			}
			entries[i] = schema.BatchEntry{RecordRef: in.Ref, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// RankBatch evaluates records concurrently and returns the top 'limit' by final score.
func RankBatch(ctx context.Context, inputs []BatchInput, rubric *schema.RubricConfig, workers, limit int) ([]schema.BatchEntry, error) {
	entries, err := EvaluateBatch(ctx, inputs, rubric, workers)
	if err != nil {
		return nil, err
	}
	return algo.RankEvaluations(entries, limit), nil
}
