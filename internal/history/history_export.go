package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/internal/parquet"
	"github.com/huangsam/recordlens/schema"
)

// ErrNoHistory is returned when there is nothing to export.
var ErrNoHistory = errors.New("no evaluation history found to export")

// ExportHistory writes every run and score row of the store to two Parquet files
// named after outputFile, and reports progress to w.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}
	_, _ = fmt.Fprintf(w, "Exporting %d runs from %s backend...\n", status.TotalRuns, status.Backend)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve evaluation runs: %w", err)
	}
	scores, err := store.GetAllScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve evaluation scores: %w", err)
	}

	runsFile := outputFile + ".evaluation_runs.parquet"
	if err := parquet.WriteEvaluationRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write evaluation runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d evaluation runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".evaluation_scores.parquet"
	if err := parquet.WriteEvaluationScoresParquet(parquet.ConvertScoresRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write evaluation scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d evaluation scores to: %s\n", len(scores), scoresFile)
	return nil
}

// PrintHistoryStatus writes history status information to w.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Total Evaluations: %d\n", status.TotalEvaluations)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range []string{RunsTable, ScoresTable} {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
