package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/recordlens/internal/history"
	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func writeRecord(t *testing.T, dir, name, major string, grade int) string {
	t.Helper()
	body := map[string]any{
		"target_major": major,
		"grades": []map[string]any{
			{"subject": "수학", "grade": grade},
			{"subject": "국어", "grade": grade},
		},
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func trackingMocks() (*history.MockHistoryManager, *history.MockHistoryStore) {
	store := &history.MockHistoryStore{}
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)
	return mgr, store
}

func TestExecuteEvaluate(t *testing.T) {
	cfg := testConfig(t, sampleRecordFile)
	mgr, store := trackingMocks()
	store.On("BeginRun", fixedTime, mock.AnythingOfType("string"), mock.Anything).Return(int64(7), nil)
	store.On("RecordScores", int64(7), mock.MatchedBy(func(s schema.EvaluationScores) bool {
		return s.RecordRef == "sample_record" && s.Grade == "D" && s.TargetMajor == "의학"
	})).Return(nil)
	store.On("EndRun", int64(7), fixedTime, 1).Return(nil)

	require.NoError(t, ExecuteEvaluate(context.Background(), cfg, mgr))

	doc := readJSON(t, cfg.OutputFile)
	assert.Equal(t, "sample_record", doc["record"])
	evaluation := doc["evaluation"].(map[string]any)
	assert.Equal(t, "D 수준의 학업 우수 학생, 공동체역량 영역 집중 보완 필요", evaluation["summary"])
	store.AssertExpectations(t)
}

func TestExecuteEvaluateWithoutHistory(t *testing.T) {
	cfg := testConfig(t, sampleRecordFile)
	require.NoError(t, ExecuteEvaluate(context.Background(), cfg, nil))
	assert.FileExists(t, cfg.OutputFile)
}

func TestExecuteEvaluateTrackingFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t, sampleRecordFile)
	mgr, store := trackingMocks()
	store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("database is locked"))

	require.NoError(t, ExecuteEvaluate(context.Background(), cfg, mgr))
	store.AssertNotCalled(t, "RecordScores", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteEvaluateFailureOpensNoRun(t *testing.T) {
	rubric := schema.DefaultRubric()
	rubric.FallbackMajor = ""
	cfg := testConfig(t, writeRecord(t, t.TempDir(), "astro", "천문학", 2))
	cfg.Rubric = rubric
	mgr, store := trackingMocks()

	err := ExecuteEvaluate(context.Background(), cfg, mgr)
	require.ErrorIs(t, err, schema.ErrUnknownMajor)
	store.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
	assert.NoFileExists(t, cfg.OutputFile)
}

func TestExecuteEvaluateRejectsInput(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"target_major": "의학", "grades": [{"subject": "수학", "grade": 12}]}`), 0o600))

	tests := []struct {
		name  string
		paths []string
	}{
		{"no records", nil},
		{"two records", []string{sampleRecordFile, sampleRecordFile}},
		{"missing file", []string{filepath.Join(dir, "nope.json")}},
		{"out of range grade", []string{bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, _ := trackingMocks()
			err := ExecuteEvaluate(context.Background(), testConfig(t, tt.paths...), mgr)
			assert.Error(t, err)
			mgr.AssertNotCalled(t, "GetHistoryStore")
		})
	}
}

func TestExecuteBenchmark(t *testing.T) {
	t.Run("all profiles", func(t *testing.T) {
		cfg := testConfig(t, sampleRecordFile)
		cfg.References = loadReferences(t)
		require.NoError(t, ExecuteBenchmark(context.Background(), cfg, nil))

		bench := readJSON(t, cfg.OutputFile)["benchmark"].(map[string]any)
		assert.Len(t, bench["comparisons"], 2)
		assert.Equal(t, "kaist-eng", bench["most_ready"])
	})

	t.Run("filtered by major", func(t *testing.T) {
		cfg := testConfig(t, sampleRecordFile)
		cfg.References = loadReferences(t)
		cfg.Major = "의예"
		require.NoError(t, ExecuteBenchmark(context.Background(), cfg, nil))

		bench := readJSON(t, cfg.OutputFile)["benchmark"].(map[string]any)
		assert.Len(t, bench["comparisons"], 1)
		assert.Equal(t, "snu-med", bench["most_ready"])
	})

	t.Run("filter matches nothing", func(t *testing.T) {
		cfg := testConfig(t, sampleRecordFile)
		cfg.References = loadReferences(t)
		cfg.College = "옥스퍼드"
		assert.ErrorIs(t, ExecuteBenchmark(context.Background(), cfg, nil), schema.ErrNoReferences)
	})

	t.Run("no references configured", func(t *testing.T) {
		cfg := testConfig(t, sampleRecordFile)
		assert.ErrorIs(t, ExecuteBenchmark(context.Background(), cfg, nil), schema.ErrNoReferences)
	})
}

func TestExecuteBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeRecord(t, dir, "weak", "공학", 7),
		sampleRecordFile,
		writeRecord(t, dir, "strong", "공학", 1),
	}
	cfg := testConfig(t, paths...)
	cfg.ResultLimit = 2

	mgr, store := trackingMocks()
	store.On("BeginRun", fixedTime, mock.AnythingOfType("string"), mock.Anything).Return(int64(3), nil)
	store.On("RecordScores", int64(3), mock.Anything).Return(nil).Times(3)
	store.On("EndRun", int64(3), fixedTime, 3).Return(nil)

	require.NoError(t, ExecuteBatch(context.Background(), cfg, mgr))

	results := readJSON(t, cfg.OutputFile)["results"].([]any)
	require.Len(t, results, 2)
	first := results[0].(map[string]any)
	second := results[1].(map[string]any)
	assert.EqualValues(t, 1, first["rank"])
	assert.EqualValues(t, 2, second["rank"])
	assert.NotEqual(t, "weak", first["record_ref"])
	assert.NotEqual(t, "weak", second["record_ref"])
	store.AssertExpectations(t)
}

func TestExecuteRubric(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, ExecuteRubric(context.Background(), cfg, nil))

	doc := readJSON(t, cfg.OutputFile)
	weights := doc["category_weights"].(map[string]any)
	assert.InDelta(t, 0.4, weights["academic"], 1e-9)
	assert.Contains(t, doc["majors"], "의학")
}
