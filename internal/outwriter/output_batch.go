package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBatch outputs ranked batch results, dispatching on the configured output format.
func PrintBatch(entries []schema.BatchEntry, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		doc := schema.BatchDocument{GeneratedAt: cfg.Now(), Total: len(entries), Results: entries}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchCSV(w, entries, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(w, entries, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// batchRow flattens an entry into rank, record, category composites and overall columns.
func batchRow(e schema.BatchEntry, fmtFloat func(float64) string) []string {
	scores := e.Result.CompositeScores()
	row := []string{strconv.Itoa(e.Rank), e.RecordRef, e.Result.Report.Student.TargetMajor}
	for _, cat := range schema.AllCategories {
		row = append(row, fmtFloat(scores[cat]))
	}
	return append(row, fmtFloat(e.Result.Overall.Score), e.Result.Overall.Grade, strconv.Itoa(e.Result.Overall.Percentile))
}

// writeBatchCSV writes one row per ranked record.
func writeBatchCSV(w io.Writer, entries []schema.BatchEntry, fmtFloat func(float64) string) error {
	header := []string{"rank", "record", "target_major"}
	for _, cat := range schema.AllCategories {
		header = append(header, string(cat))
	}
	header = append(header, "final_score", "grade", "percentile")
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entries {
			if err := cw.Write(batchRow(e, fmtFloat)); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeBatchTable renders the ranking table.
func writeBatchTable(w io.Writer, entries []schema.BatchEntry, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Record", "Major"}
	for _, cat := range schema.AllCategories {
		headers = append(headers, cat.ShortLabel())
	}
	headers = append(headers, "Score", "Grade", "Top %", "Label")
	if cfg.Detail {
		headers = append(headers, "Summary")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, e := range entries {
		row := append(batchRow(e, fmtFloat), scoreLabel(cfg, e.Result.Overall.Score))
		if cfg.Detail {
			row = append(row, truncateText(e.Result.Summary, textWidth))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing top %d records. Batch completed in %v with %d workers\n", len(entries), duration, cfg.Workers)
	return err
}
