package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"go.uber.org/zap"
)

// beginRun opens a history run when a store is configured. Tracking failures
// never stop an evaluation; they are logged and the run continues untracked.
func beginRun(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, command string, records int) context.Context {
	if mgr == nil {
		return ctx
	}
	ctx = contextWithHistoryManager(ctx, mgr)
	store := historyStoreFromContext(ctx)
	if store == nil {
		return ctx
	}

	correlationID := uuid.NewString()
	configParams := map[string]any{
		"command":      command,
		"records":      records,
		"workers":      cfg.Workers,
		"result_limit": cfg.ResultLimit,
		"plan":         cfg.Rubric.PlanThreshold,
		"fallback":     cfg.Rubric.FallbackMajor,
	}
	runID, err := store.BeginRun(cfg.Now(), correlationID, configParams)
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return ctx
	}
	contract.Log().Debug("history run started",
		zap.Int64("run_id", runID),
		zap.String("correlation_id", correlationID),
		zap.String("command", command))
	return withRunID(ctx, runID)
}

// recordEvaluation stores the outcome of one evaluation in the active run.
func recordEvaluation(ctx context.Context, cfg *contract.Config, ref string, result schema.EvaluationResult) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	store := historyStoreFromContext(ctx)
	if store == nil {
		return
	}
	scores := schema.NewEvaluationScores(ref, cfg.Now(), result)
	if err := store.RecordScores(runID, scores); err != nil {
		logTrackingError("RecordScores", ref, err)
	}
}

// endRun closes the active run with the number of evaluated records.
func endRun(ctx context.Context, cfg *contract.Config, totalRecords int) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	store := historyStoreFromContext(ctx)
	if store == nil {
		return
	}
	if err := store.EndRun(runID, cfg.Now(), totalRecords); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}

// TrackEvaluations records already computed evaluations as one history run.
func TrackEvaluations(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, command string, entries []schema.BatchEntry) {
	ctx = beginRun(ctx, cfg, mgr, command, len(entries))
	for _, e := range entries {
		recordEvaluation(ctx, cfg, e.RecordRef, e.Result)
	}
	endRun(ctx, cfg, len(entries))
}

// logTrackingError logs history errors without disrupting evaluation.
func logTrackingError(operation, ref string, err error) {
	contract.LogWarn(fmt.Sprintf("History tracking failed for %s on %s", operation, ref), err)
}
