package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
)

// PrintRubric outputs the active rubric, dispatching on the configured output format.
func PrintRubric(rubric *schema.RubricConfig, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		doc := schema.NewRubricDocument(rubric, cfg.Now())
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRubricCSV(w, rubric)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRubricText(w, rubric)
		}, "Wrote text")
	}
}

// formatSignalWeights renders the sub-signal weights of a criterion as a formula.
func formatSignalWeights(rubric *schema.RubricConfig, crit schema.Criterion) string {
	weights := rubric.SignalWeights[crit]
	parts := make([]string, 0, len(weights))
	for _, key := range schema.CriterionSignals[crit] {
		if w, ok := weights[key]; ok && w > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", w, key))
		}
	}
	return strings.Join(parts, "+")
}

// writeRubricCSV writes one row per criterion with its category and weights.
func writeRubricCSV(w io.Writer, rubric *schema.RubricConfig) error {
	header := []string{"category", "category_weight", "criterion", "criterion_weight", "formula"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, cat := range schema.AllCategories {
			for _, crit := range schema.CategoryCriteria[cat] {
				row := []string{
					string(cat),
					fmt.Sprintf("%.2f", rubric.CategoryWeights[cat]),
					string(crit),
					fmt.Sprintf("%.2f", rubric.CriterionWeights[crit]),
					formatSignalWeights(rubric, crit),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

// writeRubricText displays the rubric in human-readable text format.
func writeRubricText(w io.Writer, rubric *schema.RubricConfig) error {
	lines := []string{
		"📐 Evaluation Rubric",
		"====================",
		"",
		"Final score = weighted sum of category composites",
		"",
	}
	for _, cat := range schema.AllCategories {
		lines = append(lines, fmt.Sprintf("%s (%.2f)", cat.Label(), rubric.CategoryWeights[cat]))
		for _, crit := range schema.CategoryCriteria[cat] {
			lines = append(lines,
				fmt.Sprintf("   %s (%.2f)", crit.Label(), rubric.CriterionWeights[crit]),
				fmt.Sprintf("      Formula: %s", formatSignalWeights(rubric, crit)),
			)
		}
		lines = append(lines, "")
	}

	grades := make([]string, 0, len(rubric.GradeTable.Steps)+1)
	for _, s := range rubric.GradeTable.Steps {
		grades = append(grades, fmt.Sprintf("%s>=%.0f", s.Label, s.Min))
	}
	grades = append(grades, rubric.GradeTable.Floor)
	lines = append(lines,
		"Grades: "+strings.Join(grades, ", "),
		fmt.Sprintf("Plan threshold: %.0f", rubric.PlanThreshold),
		"Majors: "+joinList(rubric.Majors(), ", "),
	)
	if rubric.FallbackMajor != "" {
		lines = append(lines, "Fallback major: "+rubric.FallbackMajor)
	}
	return writeLines(w, lines...)
}
