package history

import (
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, correlationID string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, correlationID, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalRecords int) error {
	args := m.Called(runID, endTime, totalRecords)
	return args.Error(0)
}

// RecordScores implements the HistoryStore interface.
func (m *MockHistoryStore) RecordScores(runID int64, scores schema.EvaluationScores) error {
	args := m.Called(runID, scores)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.EvaluationRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.EvaluationRunRecord)
	return runs, args.Error(1)
}

// GetAllScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScores() ([]schema.EvaluationScoresRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.EvaluationScoresRecord)
	return scores, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
