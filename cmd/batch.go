package cmd

import (
	"github.com/huangsam/recordlens/core"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/spf13/cobra"
)

// batchCmd evaluates many records in parallel and ranks them.
var batchCmd = &cobra.Command{
	Use:   "batch [record.json...]",
	Short: "Evaluate many student records in parallel and rank them.",
	Long: `Evaluate several records concurrently and rank them by final score.

Records are evaluated with --workers goroutines. Ties in the final score
keep the order the records were given in. Every batch is stored as a
single history run when history tracking is enabled.

Examples:
  # Rank every record in a directory
  recordlens batch records/*.json

  # Keep the top 10 and export as CSV
  recordlens batch records/*.json --limit 10 --output csv --output-file ranking.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run batch evaluation", err)
		}
	},
}
