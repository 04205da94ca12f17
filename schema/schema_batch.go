package schema

// BatchEntry is one evaluated record of a batch run.
type BatchEntry struct {
	RecordRef string           `json:"record_ref"`
	Rank      int              `json:"rank"` // 1 is the highest final score
	Result    EvaluationResult `json:"result"`
}
