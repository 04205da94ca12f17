// Package parquet exports evaluation history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/recordlens/schema"
	"github.com/parquet-go/parquet-go"
)

// EvaluationRun is one row of the recordlens_evaluation_runs table.
type EvaluationRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	CorrelationID string     `parquet:"correlation_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`        // nil while a run is open
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"` // nil while a run is open
	TotalRecords  int32      `parquet:"total_records,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"` // JSON
}

// EvaluationScores is one row of the recordlens_evaluation_scores table.
type EvaluationScores struct {
	RunID          int64     `parquet:"run_id,snappy"`
	RecordRef      string    `parquet:"record_ref,snappy"`
	EvaluatedAt    time.Time `parquet:"evaluated_at,snappy"`
	TargetMajor    string    `parquet:"target_major,snappy"`
	ScoreAcademic  float64   `parquet:"score_academic,snappy"`
	ScoreCareer    float64   `parquet:"score_career,snappy"`
	ScoreCommunity float64   `parquet:"score_community,snappy"`
	ScoreFinal     float64   `parquet:"score_final,snappy"`
	Grade          string    `parquet:"grade,snappy"`
	Percentile     int32     `parquet:"percentile,snappy"`
}

// writeRows writes rows to a new Parquet file whose schema is inferred from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteEvaluationRunsParquet writes evaluation runs to a Parquet file.
func WriteEvaluationRunsParquet(data []EvaluationRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteEvaluationScoresParquet writes evaluation scores to a Parquet file.
func WriteEvaluationScoresParquet(data []EvaluationScores, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertRunRecords converts stored runs for Parquet export.
func ConvertRunRecords(records []schema.EvaluationRunRecord) []EvaluationRun {
	result := make([]EvaluationRun, len(records))
	for i, r := range records {
		result[i] = EvaluationRun{
			RunID:         r.RunID,
			CorrelationID: r.CorrelationID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalRecords:  r.TotalRecords,
			ConfigParams:  r.ConfigParams,
		}
	}
	return result
}

// ConvertScoresRecords converts stored scores for Parquet export.
func ConvertScoresRecords(records []schema.EvaluationScoresRecord) []EvaluationScores {
	result := make([]EvaluationScores, len(records))
	for i, r := range records {
		result[i] = EvaluationScores{
			RunID:          r.RunID,
			RecordRef:      r.RecordRef,
			EvaluatedAt:    r.EvaluatedAt,
			TargetMajor:    r.TargetMajor,
			ScoreAcademic:  r.ScoreAcademic,
			ScoreCareer:    r.ScoreCareer,
			ScoreCommunity: r.ScoreCommunity,
			ScoreFinal:     r.ScoreFinal,
			Grade:          r.Grade,
			Percentile:     r.Percentile,
		}
	}
	return result
}
