package cmd

import (
	"github.com/huangsam/recordlens/core"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/spf13/cobra"
)

// evaluateCmd scores one student record.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [record.json]",
	Short: "Score a student record and print the full evaluation report.",
	Long: `Evaluate a student record against the active rubric.

The record is validated before scoring. Grades must lie in 1..9 and
activity durations must not be negative; invalid records are rejected
with a list of offending fields.

The report contains:
- Per-criterion scores with comments
- Category composites and the weighted final score
- Letter grade and percentile band
- Strengths, weaknesses and major fit
- An improvement plan for categories below the plan threshold

Examples:
  # Evaluate a record with the default rubric
  recordlens evaluate student.json

  # Show criterion comments
  recordlens evaluate student.json --detail

  # Export the evaluation as JSON
  recordlens evaluate student.json --output json --output-file report.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEvaluate(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot evaluate record", err)
		}
	},
}
