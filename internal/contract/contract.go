// Package contract provides interfaces and shared utilities for recordlens internals.
package contract

import (
	"time"

	"github.com/huangsam/recordlens/schema"
)

// HistoryManager defines the interface for reaching the evaluation history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking evaluation runs and their scores.
// Only outcomes are stored; record contents never reach the store.
type HistoryStore interface {
	// BeginRun creates a new evaluation run and returns its unique ID
	BeginRun(startTime time.Time, correlationID string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRecords int) error

	// RecordScores stores the flattened outcome of one evaluation
	RecordScores(runID int64, scores schema.EvaluationScores) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every evaluation run, oldest first
	GetAllRuns() ([]schema.EvaluationRunRecord, error)

	// GetAllScores retrieves every persisted evaluation outcome
	GetAllScores() ([]schema.EvaluationScoresRecord, error)

	// Close closes the underlying connection
	Close() error
}
