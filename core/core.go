// Package core has core logic for evaluation, benchmarking and ranking.
package core

import (
	"fmt"

	"github.com/huangsam/recordlens/core/algo"
	"github.com/huangsam/recordlens/schema"
)

// Evaluate scores a record against a rubric. It is pure: the same record and
// rubric always produce the same result, and neither input is modified.
func Evaluate(rec schema.StudentRecord, rubric *schema.RubricConfig) (schema.EvaluationResult, error) {
	if rubric == nil {
		return schema.EvaluationResult{}, fmt.Errorf("%w: rubric is nil", schema.ErrInvalidRubricValue)
	}
	return NewEvaluationBuilder(rec, rubric).
		ResolveSignals().  // Resolves major keywords and the qualitative profile
		ScoreCategories(). // Scores six criteria and three category composites
		ScoreOverall().    // Computes final score, grade and percentile
		WriteReport().     // Adds report, plan and summary
		Build()
}

// CompareWithReferences benchmarks a record against every reference profile in set order.
func CompareWithReferences(rec schema.StudentRecord, rubric *schema.RubricConfig, refs *schema.ReferenceProfileSet) (schema.BenchmarkResult, error) {
	if rubric == nil {
		return schema.BenchmarkResult{}, fmt.Errorf("%w: rubric is nil", schema.ErrInvalidRubricValue)
	}
	if refs == nil || len(refs.Profiles) == 0 {
		return schema.BenchmarkResult{}, schema.ErrNoReferences
	}
	keywords, err := rubric.KeywordsFor(rec.TargetMajor)
	if err != nil {
		return schema.BenchmarkResult{}, err
	}
	return algo.Benchmark(rec, rubric, keywords, refs), nil
}
