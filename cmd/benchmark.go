package cmd

import (
	"github.com/huangsam/recordlens/core"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/spf13/cobra"
)

// benchmarkCmd compares one record with reference admission profiles.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark [record.json]",
	Short: "Compare a student record with reference admission profiles.",
	Long: `Compare a student record with reference profiles of admitted students.

For every profile the comparison reports:
- Keyword similarity between the record and the profile
- Per-category readiness against minimum and differentiating requirements
- An overall readiness score and label
- Unmet requirements and missing keywords

Profiles come from --references or from reference_profiles in the config file.

Examples:
  # Compare with every configured profile
  recordlens benchmark student.json --references profiles.yaml

  # Only profiles of one college
  recordlens benchmark student.json --references profiles.yaml --college 서울대

  # Include per-category readiness
  recordlens benchmark student.json --references profiles.yaml --detail`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBenchmark(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run benchmark", err)
		}
	},
}
