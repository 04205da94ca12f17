package schema

import "time"

// EvaluationScores is the persisted outcome of one evaluation. Record contents are never stored.
type EvaluationScores struct {
	EvaluatedAt    time.Time
	RecordRef      string // caller-supplied label, usually the record file name
	TargetMajor    string
	AcademicScore  float64
	CareerScore    float64
	CommunityScore float64
	FinalScore     float64
	Grade          string
	Percentile     int
}

// NewEvaluationScores flattens an evaluation result for persistence.
func NewEvaluationScores(ref string, at time.Time, r EvaluationResult) EvaluationScores {
	scores := r.CompositeScores()
	return EvaluationScores{
		EvaluatedAt:    at,
		RecordRef:      ref,
		TargetMajor:    r.Report.Student.TargetMajor,
		AcademicScore:  scores[AcademicCategory],
		CareerScore:    scores[CareerCategory],
		CommunityScore: scores[CommunityCategory],
		FinalScore:     r.Overall.Score,
		Grade:          r.Overall.Grade,
		Percentile:     r.Overall.Percentile,
	}
}

// EvaluationRunRecord represents a row from the recordlens_evaluation_runs table.
type EvaluationRunRecord struct {
	RunID         int64
	CorrelationID string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRecords  int32
	ConfigParams  *string
}

// EvaluationScoresRecord represents a row from the recordlens_evaluation_scores table.
type EvaluationScoresRecord struct {
	RunID          int64
	RecordRef      string
	EvaluatedAt    time.Time
	TargetMajor    string
	ScoreAcademic  float64
	ScoreCareer    float64
	ScoreCommunity float64
	ScoreFinal     float64
	Grade          string
	Percentile     int32
}
