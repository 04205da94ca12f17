package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/recordlens/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows[T any](t *testing.T, path string, n int) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(n), reader.NumRows())

	rows := make([]T, n)
	read, err := reader.Read(rows)
	if err != nil {
		require.ErrorIs(t, err, io.EOF)
	}
	require.Equal(t, n, read)
	return rows
}

func TestColumnNames(t *testing.T) {
	tests := []struct {
		name    string
		schema  *parquet.Schema
		columns []string
	}{
		{"runs", parquet.SchemaOf(new(EvaluationRun)), []string{"run_id", "correlation_id", "start_time", "end_time", "run_duration_ms", "total_records", "config_params"}},
		{"scores", parquet.SchemaOf(new(EvaluationScores)), []string{"run_id", "record_ref", "evaluated_at", "target_major", "score_academic", "score_career", "score_community", "score_final", "grade", "percentile"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, col := range tt.columns {
				_, ok := tt.schema.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteEvaluationRunsParquet(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"command":"batch"}`

	runs := ConvertRunRecords([]schema.EvaluationRunRecord{
		{RunID: 1, CorrelationID: "a", StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalRecords: 3, ConfigParams: &params},
		{RunID: 2, CorrelationID: "b", StartTime: end},
	})
	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteEvaluationRunsParquet(runs, path))

	got := readRows[EvaluationRun](t, path, 2)
	assert.Equal(t, "a", got[0].CorrelationID)
	require.NotNil(t, got[0].EndTime)
	assert.True(t, end.Equal(*got[0].EndTime))
	assert.Equal(t, int32(3), got[0].TotalRecords)
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteEvaluationScoresParquet(t *testing.T) {
	at := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	scores := ConvertScoresRecords([]schema.EvaluationScoresRecord{
		{RunID: 1, RecordRef: "sample_record", EvaluatedAt: at, TargetMajor: "의학", ScoreAcademic: 82, ScoreCareer: 33.77, ScoreFinal: 44.62, Grade: "D", Percentile: 20},
	})
	path := filepath.Join(t.TempDir(), "scores.parquet")
	require.NoError(t, WriteEvaluationScoresParquet(scores, path))

	got := readRows[EvaluationScores](t, path, 1)
	assert.Equal(t, "의학", got[0].TargetMajor)
	assert.InDelta(t, 44.62, got[0].ScoreFinal, 1e-9)
	assert.Equal(t, "D", got[0].Grade)
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteEvaluationScoresParquet(nil, filepath.Join(t.TempDir(), "missing", "scores.parquet"))
	assert.Error(t, err)
}
