package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBenchmark outputs a reference comparison, dispatching on the configured output format.
func PrintBenchmark(ref string, result schema.BenchmarkResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		doc := schema.BenchmarkDocument{GeneratedAt: cfg.Now(), Record: ref, Benchmark: result}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkCSV(w, ref, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkText(w, ref, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// readinessOf returns the readiness score of one category, or 0 when absent.
func readinessOf(c schema.ReferenceComparison, cat schema.Category) float64 {
	for _, r := range c.Categories {
		if r.Category == cat {
			return r.Score
		}
	}
	return 0
}

// writeBenchmarkCSV writes one row per reference profile.
func writeBenchmarkCSV(w io.Writer, ref string, result schema.BenchmarkResult, fmtFloat func(float64) string) error {
	header := []string{"record", "profile", "college", "major", "similarity", "overall", "readiness"}
	for _, cat := range schema.AllCategories {
		header = append(header, string(cat))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range result.Comparisons {
			row := []string{ref, c.ProfileID, c.College, c.Major, fmtFloat(c.Similarity), fmtFloat(c.Overall), c.Label}
			for _, cat := range schema.AllCategories {
				row = append(row, fmtFloat(readinessOf(c, cat)))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeBenchmarkText renders the comparison table and the gaps of the most ready profile.
func writeBenchmarkText(w io.Writer, ref string, result schema.BenchmarkResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "🏫 %s vs %d reference profiles (희망 전공: %s)\n", ref, len(result.Comparisons), result.TargetMajor); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Profile", "College", "Major", "Similarity", "Overall", "Readiness"}
	if cfg.Detail {
		for _, cat := range schema.AllCategories {
			headers = append(headers, cat.ShortLabel())
		}
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range result.Comparisons {
		row := []string{c.ProfileID, c.College, c.Major, fmtFloat(c.Similarity), fmtFloat(c.Overall), c.Label}
		if cfg.Detail {
			for _, cat := range schema.AllCategories {
				row = append(row, fmtFloat(readinessOf(c, cat)))
			}
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Most similar: %s / Most ready: %s", result.MostSimilar, result.MostReady),
		"Record keywords: " + joinList(result.RecordKeywords, ", "),
	}
	textWidth := GetMaxTableTextWidth(cfg)
	for _, c := range result.Comparisons {
		if c.ProfileID != result.MostReady {
			continue
		}
		for _, gap := range c.Gaps {
			lines = append(lines, "   - "+truncateText(gap, textWidth))
		}
	}
	lines = append(lines, fmt.Sprintf("Benchmark completed in %v", duration))
	return writeLines(w, lines...)
}
