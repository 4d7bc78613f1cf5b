package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/internal/parquet"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/olekukonko/tablewriter"
)

// healthJSON is the JSON form of a single dataset score.
type healthJSON struct {
	Dataset string `json:"dataset"`
	Label   string `json:"label"`
	schema.HealthScore
}

// WriteHealth outputs the health score of one dataset.
func WriteHealth(name string, h schema.HealthScore, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, healthJSON{Dataset: name, Label: schema.GetPlainLabel(h.Score), HealthScore: h})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"section", "metric", "value"}, func(cw *csv.Writer) error {
				for _, r := range healthMetrics(h, fmtFloat, fmtInt) {
					if err := cw.Write([]string{name, r.Metric, r.Value}); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		row := parquet.NewHealthRow("", cfg.Now, name, h)
		if err := parquet.WriteHealthParquet([]parquet.HealthRow{row}, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing health parquet: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthText(w, name, h, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table")
	}
}

// healthMetrics lists the score, the deductions and the issues of one dataset.
func healthMetrics(h schema.HealthScore, fmtFloat func(float64) string, fmtInt func(int) string) []metricRow {
	rows := []metricRow{
		{Metric: "score", Value: fmtFloat(h.Score)},
		{Metric: "label", Value: schema.GetPlainLabel(h.Score)},
		{Metric: "rows", Value: fmtInt(h.Rows)},
		{Metric: "columns", Value: fmtInt(h.Columns)},
		{Metric: "status", Value: string(h.Status)},
	}
	for _, p := range schema.HealthPenalties {
		if v, ok := h.Penalties[p.Key]; ok {
			rows = append(rows, metricRow{Metric: "penalty_" + string(p.Key), Value: fmtFloat(v)})
		}
	}
	for i, issue := range h.Issues {
		rows = append(rows, metricRow{Metric: fmt.Sprintf("issue_%d", i+1), Value: issue})
	}
	return rows
}

// writeHealthText prints the score with its issue list.
func writeHealthText(w io.Writer, name string, h schema.HealthScore, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dataset", "Score", "Label", "Rows", "Columns", "Status"})
	if err := table.Bulk([][]string{{name, fmtFloat(h.Score), healthLabel(h.Score, cfg), fmtInt(h.Rows), fmtInt(h.Columns), string(h.Status)}}); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(h.Issues) == 0 {
		if _, err := fmt.Fprintln(w, "No issues found"); err != nil {
			return err
		}
	}
	for _, issue := range h.Issues {
		if _, err := fmt.Fprintf(w, "  - %s\n", issue); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Scored in %v\n", duration)
	return err
}
