package schema

// CategoryReadiness is the readiness of one category against a reference profile.
type CategoryReadiness struct {
	Category          Category `json:"category"`
	Score             float64  `json:"score"`              // 0-100
	MinimumMet        bool     `json:"minimum_met"`        // Worth 60 points
	DifferentiatorMet bool     `json:"differentiator_met"` // Worth 30 points
	KeywordDensity    float64  `json:"keyword_density"`    // Worth 0-10 points
}

// ReferenceComparison holds the result against one reference profile.
type ReferenceComparison struct {
	ProfileID       string              `json:"profile_id"`
	College         string              `json:"college"`
	Major           string              `json:"major"`
	Categories      []CategoryReadiness `json:"categories"`
	Overall         float64             `json:"overall"`
	Label           string              `json:"label"`
	Similarity      float64             `json:"similarity"` // Jaccard index scaled to 0-100
	MatchedKeywords []string            `json:"matched_keywords"`
	MissingKeywords []string            `json:"missing_keywords"`
	Gaps            []string            `json:"gaps"`
}

// BenchmarkResult compares one record against every reference profile, in profile order.
type BenchmarkResult struct {
	TargetMajor    string                `json:"target_major"`
	RecordKeywords []string              `json:"record_keywords"`
	Comparisons    []ReferenceComparison `json:"comparisons"`
	MostSimilar    string                `json:"most_similar"` // Profile id, first wins on ties
	MostReady      string                `json:"most_ready"`   // Profile id, first wins on ties
}
