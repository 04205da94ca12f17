package core

import (
	"context"

	"github.com/huangsam/recordlens/internal/contract"
)

// Context keys for run tracking
type contextKey string

const (
	runIDKey          contextKey = "runID"
	historyManagerKey contextKey = "historyManager"
)

// withRunID stores the active history run ID in the context
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the active history run ID from context
func getRunID(ctx context.Context) (int64, bool) {
	runID, ok := ctx.Value(runIDKey).(int64)
	return runID, ok && runID > 0
}

// contextWithHistoryManager stores the history manager in the context
func contextWithHistoryManager(ctx context.Context, mgr contract.HistoryManager) context.Context {
	return context.WithValue(ctx, historyManagerKey, mgr)
}

// historyStoreFromContext returns the history store, or nil when tracking is off
func historyStoreFromContext(ctx context.Context) contract.HistoryStore {
	mgr, ok := ctx.Value(historyManagerKey).(contract.HistoryManager)
	if !ok || mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}
