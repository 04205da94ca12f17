//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluateJSON checks the evaluation of the sample record end to end.
func TestEvaluateJSON(t *testing.T) {
	res, err := runRecordlens(t, nil, "evaluate", sampleRecord, "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Record     string `json:"record"`
		Evaluation struct {
			Overall struct {
				Score      float64 `json:"score"`
				Grade      string  `json:"grade"`
				Percentile int     `json:"percentile"`
			} `json:"overall"`
			Summary string `json:"summary"`
		} `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &doc))
	assert.Equal(t, "sample_record", doc.Record)
	assert.InDelta(t, 44.6183, doc.Evaluation.Overall.Score, 1e-3)
	assert.Equal(t, "D", doc.Evaluation.Overall.Grade)
	assert.Equal(t, 20, doc.Evaluation.Overall.Percentile)
	assert.Equal(t, "D 수준의 학업 우수 학생, 공동체역량 영역 집중 보완 필요", doc.Evaluation.Summary)
}

// TestEvaluateRejectsInvalidRecord checks that out-of-range values fail at the boundary.
func TestEvaluateRejectsInvalidRecord(t *testing.T) {
	res, err := runRecordlens(t, nil, "evaluate", invalidRecord)
	require.Error(t, err)
	assert.Contains(t, res.Stderr, "grade")
	assert.Contains(t, res.Stderr, "duration")
}

// TestBenchmarkJSON checks the reference comparison of the sample record.
func TestBenchmarkJSON(t *testing.T) {
	res, err := runRecordlens(t, nil, "benchmark", sampleRecord, "--references", references, "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Benchmark struct {
			MostSimilar string `json:"most_similar"`
			MostReady   string `json:"most_ready"`
		} `json:"benchmark"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &doc))
	assert.Equal(t, "snu-med", doc.Benchmark.MostSimilar)
	assert.Equal(t, "kaist-eng", doc.Benchmark.MostReady)
}

// TestBenchmarkWithoutReferences checks that benchmark needs profiles.
func TestBenchmarkWithoutReferences(t *testing.T) {
	_, err := runRecordlens(t, nil, "benchmark", sampleRecord)
	assert.Error(t, err)
}

// TestBatchCSV checks ranking order and the limit.
func TestBatchCSV(t *testing.T) {
	res, err := runRecordlens(t, nil, "batch", sampleRecord, strongRecord, "--output", "csv", "--workers", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1,strong_record,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,sample_record,"))

	res, err = runRecordlens(t, nil, "batch", sampleRecord, strongRecord, "--output", "csv", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(res.Stdout), "\n"), 2)
}

// TestRubricFromConfigFile checks that config file overrides reach the rubric.
func TestRubricFromConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	config := `rubric:
  category_weights:
    academic: 0.5
    career: 0.3
    community: 0.2
`
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	res, err := runRecordlens(t, nil, "rubric", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "학업역량 (0.50)")

	require.NoError(t, os.WriteFile(configPath, []byte(strings.Replace(config, "0.5", "0.9", 1)), 0o644))
	_, err = runRecordlens(t, nil, "rubric", "--config", configPath)
	assert.Error(t, err)
}

// TestHistoryWithSQLite runs evaluations with sqlite tracking and exports them.
func TestHistoryWithSQLite(t *testing.T) {
	home := t.TempDir()
	env := map[string]string{
		"HOME":                       home,
		"RECORDLENS_HISTORY_BACKEND": "sqlite",
	}

	res, err := runRecordlens(t, env, "history", "migrate")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "Successfully migrated from version 0 to version 2")

	_, err = runRecordlens(t, env, "evaluate", sampleRecord)
	require.NoError(t, err)
	_, err = runRecordlens(t, env, "batch", sampleRecord, strongRecord)
	require.NoError(t, err)

	res, err = runRecordlens(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "History Backend: sqlite")
	assert.Contains(t, res.Stdout, "Total Evaluations: 3")

	prefix := filepath.Join(t.TempDir(), "history")
	_, err = runRecordlens(t, env, "history", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.FileExists(t, prefix+".evaluation_runs.parquet")
	assert.FileExists(t, prefix+".evaluation_scores.parquet")

	_, err = runRecordlens(t, env, "history", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(home, ".recordlens_history.db"))
}

// TestVersion checks the version banner.
func TestVersion(t *testing.T) {
	res, err := runRecordlens(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout+res.Stderr, "recordlens CLI")
}
