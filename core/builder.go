package core

import (
	"github.com/huangsam/recordlens/core/algo"
	"github.com/huangsam/recordlens/schema"
)

// EvaluationBuilder assembles an evaluation result from a record and a rubric.
// Steps run in order and turn into no-ops after the first failure.
type EvaluationBuilder struct {
	record  schema.StudentRecord
	rubric  *schema.RubricConfig
	signals algo.SignalContext
	result  schema.EvaluationResult
	err     error
}

// NewEvaluationBuilder is the starting point for building an evaluation.
func NewEvaluationBuilder(rec schema.StudentRecord, rubric *schema.RubricConfig) *EvaluationBuilder {
	return &EvaluationBuilder{record: rec, rubric: rubric}
}

// ResolveSignals looks up the major keywords and computes the qualitative profile.
func (b *EvaluationBuilder) ResolveSignals() *EvaluationBuilder {
	if b.err != nil {
		return b
	}
	sc, err := algo.NewSignalContext(b.record, b.rubric)
	if err != nil {
		b.err = err
		return b
	}
	b.signals = sc
	b.result.Profile = sc.Profile
	return b
}

// ScoreCategories evaluates all six criteria and their category composites.
func (b *EvaluationBuilder) ScoreCategories() *EvaluationBuilder {
	if b.err != nil {
		return b
	}
	b.result.Categories = algo.EvaluateCategories(b.signals)
	return b
}

// ScoreOverall derives the final score, grade and percentile.
func (b *EvaluationBuilder) ScoreOverall() *EvaluationBuilder {
	if b.err != nil {
		return b
	}
	b.result.Overall = algo.ComputeOverall(b.result.Categories, b.rubric)
	return b
}

// WriteReport produces the narrative report, the improvement plan and the summary line.
func (b *EvaluationBuilder) WriteReport() *EvaluationBuilder {
	if b.err != nil {
		return b
	}
	b.result.Report = algo.BuildReport(b.record, b.result.Categories, b.result.Profile, b.rubric)
	b.result.Plan = algo.BuildPlan(b.result.Categories, b.rubric, b.result.Report.Student.TargetMajor)
	b.result.Summary = algo.Summary(b.result.Overall, b.result.Categories)
	return b
}

// Build finalizes the construction and returns the completed result.
func (b *EvaluationBuilder) Build() (schema.EvaluationResult, error) {
	if b.err != nil {
		return schema.EvaluationResult{}, b.err
	}
	return b.result, nil
}
