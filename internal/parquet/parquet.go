// Package parquet provides data structures and functions for exporting audit
// reports to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/parquet-go/parquet-go"
)

// HealthRow is the health score of one dataset in one audit run.
type HealthRow struct {
	// RunID identifies the audit run
	RunID string `parquet:"run_id,snappy"`

	// EvaluatedAt is the evaluation instant of the run (stored as TIMESTAMP with nanosecond precision)
	EvaluatedAt time.Time `parquet:"evaluated_at,snappy"`

	// Dataset is the dataset kind, or "aggregated" for the joined view
	Dataset string `parquet:"dataset,snappy"`

	// Score is the 0-100 health score
	Score float64 `parquet:"score,snappy"`

	// Label is the plain health label of the score
	Label string `parquet:"label,snappy"`

	Rows    int32  `parquet:"rows,snappy"`
	Columns int32  `parquet:"columns,snappy"`
	Status  string `parquet:"status,snappy"`

	// Points deducted per component
	MissingPenalty    float64 `parquet:"missing_penalty,snappy"`
	DuplicatesPenalty float64 `parquet:"duplicates_penalty,snappy"`
	EmptyPenalty      float64 `parquet:"empty_penalty,snappy"`

	// Issues holds the issue strings joined by "; " (nullable)
	Issues *string `parquet:"issues,optional,snappy"`
}

// RecommendationRow is one ranked recommendation of an audit run.
type RecommendationRow struct {
	RunID    string `parquet:"run_id,snappy"`
	Rank     int32  `parquet:"rank,snappy"`
	Priority string `parquet:"priority,snappy"`
	Category string `parquet:"category,snappy"`
	Issue    string `parquet:"issue,snappy"`
	Action   string `parquet:"action,snappy"`
	Impact   string `parquet:"impact,snappy"`
}

// HealthRows flattens the per-dataset and post-aggregation scores of a report.
func HealthRows(report schema.AuditReport) []HealthRow {
	rows := make([]HealthRow, 0, len(report.Summary.DataQuality)+1)
	for _, kind := range schema.SortedKinds(report.Summary.DataQuality) {
		rows = append(rows, NewHealthRow(report.RunID, report.EvaluatedAt, string(kind), report.Summary.DataQuality[kind]))
	}
	if report.PostScore.Status == schema.StatusOK {
		rows = append(rows, NewHealthRow(report.RunID, report.EvaluatedAt, string(schema.AggregatedKind), report.PostScore))
	}
	return rows
}

// NewHealthRow converts one health score into a row.
func NewHealthRow(runID string, evaluatedAt time.Time, dataset string, h schema.HealthScore) HealthRow {
	row := HealthRow{
		RunID:             runID,
		EvaluatedAt:       evaluatedAt,
		Dataset:           dataset,
		Score:             h.Score,
		Label:             schema.GetPlainLabel(h.Score),
		Rows:              int32(h.Rows),
		Columns:           int32(h.Columns),
		Status:            string(h.Status),
		MissingPenalty:    h.Penalties[schema.PenaltyMissing],
		DuplicatesPenalty: h.Penalties[schema.PenaltyDuplicates],
		EmptyPenalty:      h.Penalties[schema.PenaltyEmpty],
	}
	if len(h.Issues) > 0 {
		issues := strings.Join(h.Issues, "; ")
		row.Issues = &issues
	}
	return row
}

// RecommendationRows converts already sorted recommendations into ranked rows.
func RecommendationRows(runID string, recs []schema.Recommendation) []RecommendationRow {
	rows := make([]RecommendationRow, 0, len(recs))
	for _, r := range schema.EnrichRecommendations(recs) {
		rows = append(rows, RecommendationRow{
			RunID:    runID,
			Rank:     int32(r.Rank),
			Priority: string(r.Priority),
			Category: r.Category,
			Issue:    r.Issue,
			Action:   r.Action,
			Impact:   r.Impact,
		})
	}
	return rows
}

// WriteHealthParquet writes health rows to a Parquet file.
func WriteHealthParquet(data []HealthRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteRecommendationsParquet writes recommendation rows to a Parquet file.
func WriteRecommendationsParquet(data []RecommendationRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes any struct-tagged rows; the schema is derived from the struct tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// RecommendationsPath derives the companion file name for recommendation rows,
// e.g. "report.parquet" becomes "report_recommendations.parquet".
func RecommendationsPath(outputPath string) string {
	stem := strings.TrimSuffix(outputPath, ".parquet")
	return stem + "_recommendations.parquet"
}
