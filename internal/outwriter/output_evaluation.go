package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Row kinds in the evaluation CSV.
const (
	csvRowCriterion = "criterion"
	csvRowCategory  = "category"
	csvRowOverall   = "overall"
)

// PrintEvaluation outputs a single evaluation, dispatching on the configured output format.
func PrintEvaluation(ref string, result schema.EvaluationResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		doc := schema.EvaluationDocument{GeneratedAt: cfg.Now(), Record: ref, Evaluation: result}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationCSV(w, ref, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationText(w, ref, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeEvaluationCSV writes one row per criterion, one per category composite and a final overall row.
func writeEvaluationCSV(w io.Writer, ref string, result schema.EvaluationResult, fmtFloat func(float64) string) error {
	header := []string{"record", "kind", "category", "criterion", "label", "score", "grade"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, cat := range result.Categories {
			for _, crit := range cat.Criteria {
				row := []string{ref, csvRowCriterion, string(cat.Category), string(crit.Criterion), crit.Label, fmtFloat(crit.Score), contract.GetPlainLabel(crit.Score)}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			row := []string{ref, csvRowCategory, string(cat.Category), "", cat.Label, fmtFloat(cat.Composite), contract.GetPlainLabel(cat.Composite)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		row := []string{ref, csvRowOverall, "", "", result.Summary, fmtFloat(result.Overall.Score), result.Overall.Grade}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}

// writeEvaluationText renders the criteria table followed by the narrative report.
func writeEvaluationText(w io.Writer, ref string, result schema.EvaluationResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	student := result.Report.Student
	if _, err := fmt.Fprintf(w, "📋 %s (%s, %s, 희망 전공: %s)\n", ref, student.Name, student.SchoolYear, student.TargetMajor); err != nil {
		return err
	}

	if err := writeCriteriaTable(w, result.Categories, cfg, fmtFloat); err != nil {
		return err
	}

	overall := result.Overall
	if _, err := fmt.Fprintf(w, "최종 점수 %s / 등급 %s / 상위 %d%%\n", fmtFloat(overall.Score), overall.Grade, overall.Percentile); err != nil {
		return err
	}
	if result.Summary != "" {
		if _, err := fmt.Fprintf(w, "💡 %s\n", result.Summary); err != nil {
			return err
		}
	}

	if err := writeReportText(w, result.Report, cfg); err != nil {
		return err
	}
	if err := writePlanText(w, result.Plan, fmtFloat); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Evaluation completed in %v\n", duration)
	return err
}

// writeCriteriaTable renders a row per criterion and a composite row per category.
func writeCriteriaTable(w io.Writer, categories []schema.CategoryResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Category", "Criterion", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Comment")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, cat := range categories {
		for _, crit := range cat.Criteria {
			row := []string{cat.Label, crit.Label, fmtFloat(crit.Score), scoreLabel(cfg, crit.Score)}
			if cfg.Detail {
				row = append(row, truncateText(crit.Comment, textWidth))
			}
			data = append(data, row)
		}
		row := []string{cat.Label, "종합", fmtFloat(cat.Composite), scoreLabel(cfg, cat.Composite)}
		if cfg.Detail {
			row = append(row, "")
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeReportText prints the strengths, weaknesses and major fit sections.
func writeReportText(w io.Writer, report schema.Report, cfg *contract.Config) error {
	lines := []string{""}
	if report.Strengths.TopCategory != "" {
		lines = append(lines,
			fmt.Sprintf("✅ 강점: %s", report.Strengths.TopCategory.Label()),
			"   "+joinList(report.Strengths.Items, ", "),
		)
		if cfg.Detail {
			lines = append(lines, "   근거: "+joinList(report.Strengths.Evidence, ", "))
		}
	}
	if report.Weaknesses.BottomCategory != "" {
		lines = append(lines,
			fmt.Sprintf("⚠️  보완: %s", report.Weaknesses.BottomCategory.Label()),
			"   "+joinList(report.Weaknesses.Items, ", "),
		)
		if cfg.Detail {
			lines = append(lines, "   근거: "+joinList(report.Weaknesses.Evidence, ", "))
		}
	}
	fit := report.MajorFit
	lines = append(lines,
		fmt.Sprintf("🎯 전공 적합성: %.1f", fit.Score),
		"   확인된 키워드: "+joinList(fit.Evidence, ", "),
		"   부족한 키워드: "+joinList(fit.Gaps, ", "),
	)
	for _, rec := range report.Recommendations {
		lines = append(lines, fmt.Sprintf("👉 [%s] %s", rec.Priority, rec.Suggestion))
	}
	return writeLines(w, lines...)
}

// writePlanText prints the improvement plan in priority order.
func writePlanText(w io.Writer, plan []schema.PlanItem, fmtFloat func(float64) string) error {
	if len(plan) == 0 {
		return writeLines(w, "", "📈 모든 영역이 기준 점수 이상입니다")
	}
	items := slices.Clone(plan)
	slices.SortStableFunc(items, func(a, b schema.PlanItem) int { return a.Priority - b.Priority })

	lines := []string{"", "📈 개선 계획"}
	for _, item := range items {
		lines = append(lines,
			fmt.Sprintf("%d. %s (%s점): %s [%s]", item.Priority, item.Label, fmtFloat(item.Score), item.Goal, item.Period),
		)
		for _, action := range item.Actions {
			lines = append(lines, "   - "+action)
		}
		lines = append(lines, "   측정: "+item.Measurement)
	}
	return writeLines(w, lines...)
}
