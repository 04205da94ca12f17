package core

import (
	"context"
	"sync"
	"testing"

	"github.com/huangsam/recordlens/internal/history"
	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	store := &history.MockHistoryStore{}
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	ctx := contextWithHistoryManager(withRunID(context.Background(), 12345), mgr)

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Go(func() {
			runID, ok := getRunID(ctx)
			assert.True(t, ok, "Goroutine %d: getRunID should return true", i)
			assert.Equal(t, int64(12345), runID, "Goroutine %d: runID should be 12345", i)
			assert.Same(t, store, historyStoreFromContext(ctx), "Goroutine %d: store should come from the manager", i)
		})
	}
	wg.Wait()
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	baseCtx := context.Background()

	ctx1 := withRunID(baseCtx, 1)
	ctx2 := withRunID(baseCtx, 2)
	ctx3 := withRunID(baseCtx, 0)

	id1, ok1 := getRunID(ctx1)
	assert.True(t, ok1)
	assert.Equal(t, int64(1), id1)

	id2, ok2 := getRunID(ctx2)
	assert.True(t, ok2)
	assert.Equal(t, int64(2), id2)

	_, ok3 := getRunID(ctx3)
	assert.False(t, ok3, "a zero run ID means no active run")

	_, ok := getRunID(baseCtx)
	assert.False(t, ok)
	assert.Nil(t, historyStoreFromContext(baseCtx))
	assert.Nil(t, historyStoreFromContext(contextWithHistoryManager(baseCtx, nil)))
}
