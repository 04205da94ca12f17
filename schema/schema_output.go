package schema

import "time"

// EvaluationDocument is the JSON envelope for a single evaluation.
type EvaluationDocument struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Record      string           `json:"record"`
	Evaluation  EvaluationResult `json:"evaluation"`
}

// BenchmarkDocument is the JSON envelope for a reference comparison.
type BenchmarkDocument struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Record      string          `json:"record"`
	Benchmark   BenchmarkResult `json:"benchmark"`
}

// BatchDocument is the JSON envelope for a ranked batch.
type BatchDocument struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Total       int          `json:"total"`
	Results     []BatchEntry `json:"results"`
}

// RubricDocument is the JSON rendering of the active rubric.
type RubricDocument struct {
	GeneratedAt time.Time `json:"generated_at"`
	Majors      []string  `json:"majors"`
	RubricConfig
}

// NewRubricDocument snapshots a rubric for rendering.
func NewRubricDocument(r *RubricConfig, at time.Time) RubricDocument {
	return RubricDocument{GeneratedAt: at, Majors: r.Majors(), RubricConfig: *r}
}
