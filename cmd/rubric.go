package cmd

import (
	"github.com/huangsam/recordlens/core"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/spf13/cobra"
)

// rubricCmd prints the rubric after config file overrides.
var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Print the active rubric weights and tables.",
	Long: `Print the rubric used for scoring, after overrides from the config file.

Shows category weights, criterion weights, sub-signal formulas, the grade
table, the plan threshold and the known majors.

Examples:
  # Inspect the default rubric
  recordlens rubric

  # Check overrides from a custom config file
  recordlens rubric --config custom.yaml --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRubric(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot print rubric", err)
		}
	},
}
