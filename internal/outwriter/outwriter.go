// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"golang.org/x/term"
)

// OutWriter renders evaluation results in the configured output format.
type OutWriter struct{}

// NewOutWriter creates a new OutWriter.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteEvaluation prints a single record evaluation.
func (ow *OutWriter) WriteEvaluation(ref string, result schema.EvaluationResult, cfg *contract.Config, duration time.Duration) error {
	return PrintEvaluation(ref, result, cfg, duration)
}

// WriteBenchmark prints a reference comparison for a single record.
func (ow *OutWriter) WriteBenchmark(ref string, result schema.BenchmarkResult, cfg *contract.Config, duration time.Duration) error {
	return PrintBenchmark(ref, result, cfg, duration)
}

// WriteBatch prints ranked batch results.
func (ow *OutWriter) WriteBatch(entries []schema.BatchEntry, cfg *contract.Config, duration time.Duration) error {
	return PrintBatch(entries, cfg, duration)
}

// WriteRubric prints the active rubric.
func (ow *OutWriter) WriteRubric(rubric *schema.RubricConfig, cfg *contract.Config) error {
	return PrintRubric(rubric, cfg)
}

// GetMaxTableTextWidth calculates the widest free-text cell that still fits the
// terminal, honoring the configured width override.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Score + Label with borders/padding
	baseWidth := 30
	if cfg.Detail {
		baseWidth += 30
	}

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
