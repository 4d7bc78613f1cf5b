package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/StephanieJJ/jupiter-audit/core/algo"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/internal/parquet"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// metricRow is one reported value, shared by the CSV writer and the diagnostics table.
type metricRow struct {
	Section string
	Metric  string
	Value   string
}

// reportJSON is the JSON form of a report with recommendations in presentation order.
type reportJSON struct {
	schema.AuditReport
	Ranked []schema.EnrichedRecommendation `json:"ranked_recommendations"`
}

// WriteReport outputs an audit report, dispatching based on the output format configured.
func WriteReport(report schema.AuditReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)
	ranked := algo.SortRecommendations(report.Summary.Recommendations)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reportJSON{AuditReport: report, Ranked: schema.EnrichRecommendations(ranked)})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, ranked, fmtFloat, fmtInt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeReportParquet(report, ranked, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, ranked, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table")
	}
}

// writeReportParquet writes health rows and the companion recommendations file.
func writeReportParquet(report schema.AuditReport, ranked []schema.Recommendation, outputFile string) error {
	if err := parquet.WriteHealthParquet(parquet.HealthRows(report), outputFile); err != nil {
		return fmt.Errorf("error writing health parquet: %w", err)
	}
	recPath := parquet.RecommendationsPath(outputFile)
	if err := parquet.WriteRecommendationsParquet(parquet.RecommendationRows(report.RunID, ranked), recPath); err != nil {
		return fmt.Errorf("error writing recommendations parquet: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s and %s\n", outputFile, recPath)
	return nil
}

// writeReportCSV writes one section,metric,value row per reported value.
func writeReportCSV(w io.Writer, report schema.AuditReport, ranked []schema.Recommendation, fmtFloat func(float64) string, fmtInt func(int) string) error {
	return writeCSVWithHeader(w, []string{"section", "metric", "value"}, func(cw *csv.Writer) error {
		rows := reportMetrics(report, fmtFloat, fmtInt)
		for _, r := range schema.EnrichRecommendations(ranked) {
			rows = append(rows, metricRow{
				Section: "recommendations",
				Metric:  fmt.Sprintf("%d_%s", r.Rank, strings.ToLower(string(r.Priority))),
				Value:   r.Issue,
			})
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.Section, r.Metric, r.Value}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// reportMetrics flattens every scalar of a report into rows, in presentation order.
func reportMetrics(report schema.AuditReport, fmtFloat func(float64) string, fmtInt func(int) string) []metricRow {
	var rows []metricRow
	add := func(section, metric, value string) {
		rows = append(rows, metricRow{Section: section, Metric: metric, Value: value})
	}
	s := report.Summary

	add("summary", "total_contacts", fmtInt(s.TotalContacts))
	add("summary", "total_companies", fmtInt(s.TotalCompanies))
	add("summary", "total_tickets", fmtInt(s.TotalTickets))
	for _, kind := range schema.SortedKinds(s.Duplicates) {
		add("summary", "duplicates_"+string(kind), fmtInt(s.Duplicates[kind]))
	}
	for _, kind := range schema.SortedKinds(s.MissingData) {
		add("summary", "missing_"+string(kind), fmtInt(s.MissingData[kind]))
	}

	for _, kind := range schema.SortedKinds(s.DataQuality) {
		add("health", string(kind)+"_score", fmtFloat(s.DataQuality[kind].Score))
	}
	add("health", "overall_score", fmtFloat(report.Overall.OverallScore))
	if report.PostScore.Status == schema.StatusOK {
		add("health", "post_aggregation_score", fmtFloat(report.PostScore.Score))
	}
	add("health", "improvement", fmtFloat(report.Improvement.Improvement))

	for _, kind := range schema.SortedKinds(report.Complete) {
		add("completeness", string(kind)+"_pct", fmtFloat(report.Complete[kind].CompletenessPct))
	}

	add("relationships", "orphan_contacts", fmtInt(report.Orphans.OrphanCount))
	add("relationships", "orphan_pct", fmtFloat(report.Orphans.OrphanPct))
	add("relationships", "ghost_companies", fmtInt(report.Ghosts.GhostCount))
	add("relationships", "ghost_pct", fmtFloat(report.Ghosts.GhostPct))

	add("email", "valid", fmtInt(report.Email.Valid))
	add("email", "invalid", fmtInt(report.Email.Invalid))
	add("email", "valid_pct", fmtFloat(report.Email.ValidPct))
	add("email", "b2c_count", fmtInt(report.Email.B2CCount))
	add("email", "b2c_pct", fmtFloat(report.Email.B2CPct))

	add("engagement", "cold_contacts", fmtInt(report.Cold.ColdCount))
	add("engagement", "cold_pct", fmtFloat(report.Cold.ColdPct))
	add("engagement", "status", string(report.Cold.Status))

	add("tickets", "critical", fmtInt(report.Critical.CriticalCount))
	add("tickets", "open", fmtInt(report.Critical.TotalOpen))
	add("tickets", "avg_resolution_hours", fmtFloat(report.Critical.AvgResolution))
	add("tickets", "closed", fmtInt(report.Tickets.ClosedCount))
	add("tickets", "sla_compliance", fmtOptional(report.Tickets.SLACompliance, fmtFloat))
	add("tickets", "csat", fmtOptional(report.Tickets.CSATScore, fmtFloat))
	add("tickets", "nps", fmtOptional(report.Tickets.NPSScore, fmtFloat))
	add("tickets", "status", string(report.Critical.Status))

	add("churn", "at_risk", fmtInt(report.Churn.AtRiskCount))
	add("churn", "at_risk_pct", fmtFloat(report.Churn.AtRiskPct))
	add("churn", "avg_score", fmtFloat(report.Churn.AvgScore))
	add("churn", "arr_at_risk", fmtFloat(report.Churn.ARRAtRisk))

	for _, ind := range report.Industries.TopIndustries {
		add("industries", ind.Name, fmt.Sprintf("%s (%s%%)", fmtInt(ind.Count), fmtFloat(ind.Percentage)))
	}
	return rows
}

// writeReportText renders the health, diagnostics and recommendations tables.
func writeReportText(w io.Writer, report schema.AuditReport, ranked []schema.Recommendation, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string, duration time.Duration) error {
	if err := writeHealthTable(w, report, cfg, fmtFloat, fmtInt); err != nil {
		return err
	}
	if err := writeMetricsTable(w, reportMetrics(report, fmtFloat, fmtInt)); err != nil {
		return err
	}
	if err := writeRecommendationsTable(w, ranked, cfg); err != nil {
		return err
	}
	if len(report.Sources) > 0 {
		for _, kind := range schema.SortedKinds(report.Sources) {
			src := report.Sources[kind]
			if src.Limited {
				if _, err := fmt.Fprintf(w, "Note: %s limited to %d of %d rows\n", kind, src.Rows, src.OriginalRows); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "Audit %s evaluated at %s completed in %v\n",
		report.RunID, report.EvaluatedAt.Format(contract.DateTimeFormat), duration)
	return err
}

// healthLabel returns the colored or plain label for a score.
func healthLabel(score float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(score)
	}
	return schema.GetPlainLabel(score)
}

// writeHealthTable prints one row per dataset plus the aggregated view and overall score.
func writeHealthTable(w io.Writer, report schema.AuditReport, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dataset", "Score", "Label", "Rows", "Columns", "Issues"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := GetMaxTableTextWidth(cfg)
	row := func(name string, h schema.HealthScore) []string {
		issues := "-"
		if len(h.Issues) > 0 {
			issues = contract.TruncateText(strings.Join(h.Issues, "; "), textWidth)
		}
		return []string{name, fmtFloat(h.Score), healthLabel(h.Score, cfg), fmtInt(h.Rows), fmtInt(h.Columns), issues}
	}

	var data [][]string
	for _, kind := range schema.SortedKinds(report.Summary.DataQuality) {
		data = append(data, row(kind.Title(), report.Summary.DataQuality[kind]))
	}
	if report.PostScore.Status == schema.StatusOK {
		data = append(data, row(schema.AggregatedKind.Title(), report.PostScore))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Overall quality: %s (%s), improvement after aggregation: %s\n\n",
		fmtFloat(report.Overall.OverallScore), healthLabel(report.Overall.OverallScore, cfg), fmtFloat(report.Improvement.Improvement))
	return err
}

// writeMetricsTable prints the diagnostics as a three-column table.
func writeMetricsTable(w io.Writer, rows []metricRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Section", "Metric", "Value"})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Section, r.Metric, r.Value})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeRecommendationsTable prints the priority-sorted recommendations.
func writeRecommendationsTable(w io.Writer, ranked []schema.Recommendation, cfg *contract.Config) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "✅ No recommendations: no trigger rule fired")
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Priority", "Category", "Issue", "Action"}
	if cfg.Detail {
		headers = append(headers, "Impact")
	}
	table.Header(headers)

	textWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range schema.EnrichRecommendations(ranked) {
		priority := string(r.Priority)
		if cfg.UseColors {
			priority = contract.PriorityColor(r.Priority).Sprint(priority)
		}
		row := []string{
			fmt.Sprint(r.Rank),
			priority,
			r.Category,
			contract.TruncateText(r.Issue, textWidth),
			contract.TruncateText(r.Action, textWidth),
		}
		if cfg.Detail {
			row = append(row, contract.TruncateText(r.Impact, textWidth))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d recommendation(s)\n", len(ranked))
	return err
}
