package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/recordlens/core/algo"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/internal/outwriter"
	"github.com/huangsam/recordlens/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for executing the CLI commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// errNoRecords is returned when a command that needs record files gets none.
var errNoRecords = errors.New("no record files given")

// ExecuteEvaluate evaluates a single record file and prints the full report.
// It serves as the main entry point for the 'evaluate' command.
func ExecuteEvaluate(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := cfg.Now()
	if len(cfg.RecordPaths) != 1 {
		return fmt.Errorf("evaluate takes exactly one record file (received %d)", len(cfg.RecordPaths))
	}
	inputs, err := LoadInputs(cfg.RecordPaths)
	if err != nil {
		return err
	}
	in := inputs[0]

	result, err := Evaluate(in.Record, cfg.Rubric)
	if err != nil {
		return err
	}
	TrackEvaluations(ctx, cfg, mgr, "evaluate", []schema.BatchEntry{{RecordRef: in.Ref, Rank: 1, Result: result}})

	contract.Log().Debug("record evaluated",
		zap.String("record", in.Ref),
		zap.Float64("score", result.Overall.Score),
		zap.String("grade", result.Overall.Grade))
	return outwriter.NewOutWriter().WriteEvaluation(in.Ref, result, cfg, cfg.Now().Sub(start))
}

// ExecuteBenchmark compares a single record with the configured reference profiles.
// Profiles can be narrowed with the college and major filters.
func ExecuteBenchmark(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := cfg.Now()
	if len(cfg.RecordPaths) != 1 {
		return fmt.Errorf("benchmark takes exactly one record file (received %d)", len(cfg.RecordPaths))
	}
	if cfg.References == nil {
		return fmt.Errorf("%w: pass --references or set reference_profiles in the config file", schema.ErrNoReferences)
	}
	refs, err := cfg.References.Filter(cfg.College, cfg.Major)
	if err != nil {
		return fmt.Errorf("no profile matches college %q and major %q: %w", cfg.College, cfg.Major, err)
	}
	inputs, err := LoadInputs(cfg.RecordPaths)
	if err != nil {
		return err
	}
	in := inputs[0]

	result, err := CompareWithReferences(in.Record, cfg.Rubric, refs)
	if err != nil {
		return err
	}
	contract.Log().Debug("record benchmarked",
		zap.String("record", in.Ref),
		zap.Int("profiles", len(result.Comparisons)),
		zap.String("most_ready", result.MostReady))
	return outwriter.NewOutWriter().WriteBenchmark(in.Ref, result, cfg, cfg.Now().Sub(start))
}

// ExecuteBatch evaluates many record files in parallel and prints them ranked.
// Every evaluation is recorded in history, not only the ones shown.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := cfg.Now()
	inputs, err := LoadInputs(cfg.RecordPaths)
	if err != nil {
		return err
	}

	entries, err := EvaluateBatch(ctx, inputs, cfg.Rubric, cfg.Workers)
	if err != nil {
		return err
	}
	TrackEvaluations(ctx, cfg, mgr, "batch", entries)

	ranked := algo.RankEvaluations(entries, cfg.ResultLimit)
	contract.Log().Debug("batch evaluated",
		zap.Int("records", len(entries)),
		zap.Int("shown", len(ranked)),
		zap.Int("workers", cfg.Workers))
	return outwriter.NewOutWriter().WriteBatch(ranked, cfg, cfg.Now().Sub(start))
}

// ExecuteRubric prints the active rubric. It does not read any record.
func ExecuteRubric(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	return outwriter.NewOutWriter().WriteRubric(cfg.Rubric, cfg)
}

// LoadInputs reads and validates record files in argument order.
// Each record is referenced by its file name without extension.
func LoadInputs(paths []string) ([]BatchInput, error) {
	if len(paths) == 0 {
		return nil, errNoRecords
	}
	rv, err := contract.NewRecordValidator()
	if err != nil {
		return nil, err
	}
	inputs := make([]BatchInput, 0, len(paths))
	for _, p := range paths {
		rec, err := rv.LoadRecord(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, BatchInput{Ref: contract.RecordRef(p), Record: rec})
	}
	return inputs, nil
}
