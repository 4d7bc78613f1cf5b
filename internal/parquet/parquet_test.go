package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() schema.AuditReport {
	return schema.AuditReport{
		RunID:       "run-1",
		EvaluatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Summary: schema.AuditSummary{
			DataQuality: map[schema.DatasetKind]schema.HealthScore{
				schema.TicketsKind: {Score: 100, Issues: []string{}, Rows: 4, Columns: 3, Status: schema.StatusOK},
				schema.ContactsKind: {
					Score:     80,
					Issues:    []string{"Missing data: 10.0% (-20.0 points)"},
					Penalties: map[schema.PenaltyKey]float64{schema.PenaltyMissing: 20},
					Rows:      10,
					Columns:   5,
					Status:    schema.StatusOK,
				},
			},
			Recommendations: []schema.Recommendation{
				{Priority: schema.PriorityHigh, Category: "Data Cleaning", Issue: "2 duplicate contacts found", Action: "a", Impact: "b"},
				{Priority: schema.PriorityLow, Category: "Data Relationships", Issue: "1 company without contacts", Action: "c", Impact: "d"},
			},
		},
		PostScore: schema.HealthScore{Score: 90, Issues: []string{}, Rows: 10, Columns: 8, Status: schema.StatusOK},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"health", new(HealthRow), []string{"run_id", "evaluated_at", "dataset", "score", "label", "rows", "columns", "status", "missing_penalty", "duplicates_penalty", "empty_penalty", "issues"}},
		{"recommendation", new(RecommendationRow), []string{"run_id", "rank", "priority", "category", "issue", "action", "impact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				_, ok := s.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestHealthRows(t *testing.T) {
	rows := HealthRows(sampleReport())

	require.Len(t, rows, 3)
	assert.Equal(t, "contacts", rows[0].Dataset)
	assert.Equal(t, schema.HealthyValue, rows[1].Label)
	assert.Equal(t, "tickets", rows[1].Dataset)
	assert.Equal(t, "aggregated", rows[2].Dataset)
	assert.Equal(t, 20.0, rows[0].MissingPenalty)
	require.NotNil(t, rows[0].Issues)
	assert.Equal(t, "Missing data: 10.0% (-20.0 points)", *rows[0].Issues)
	assert.Nil(t, rows[1].Issues)
}

func TestHealthRowsWithoutAggregation(t *testing.T) {
	report := sampleReport()
	report.PostScore = schema.HealthScore{Status: schema.StatusNoData}

	rows := HealthRows(report)
	assert.Len(t, rows, 2)
}

func TestRecommendationRows(t *testing.T) {
	report := sampleReport()
	rows := RecommendationRows(report.RunID, report.Summary.Recommendations)

	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, "HIGH", rows[0].Priority)
	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Equal(t, "run-1", rows[1].RunID)
}

func TestWriteHealthParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "health.parquet")
	data := HealthRows(sampleReport())

	require.NoError(t, WriteHealthParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[HealthRow](file)
	defer reader.Close()

	readData := make([]HealthRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].Dataset, readData[i].Dataset)
		assert.InDelta(t, data[i].Score, readData[i].Score, 0.001)
		assert.Equal(t, data[i].Rows, readData[i].Rows)
		assert.WithinDuration(t, data[i].EvaluatedAt, readData[i].EvaluatedAt, time.Nanosecond)
		if data[i].Issues == nil {
			assert.Nil(t, readData[i].Issues)
		} else {
			require.NotNil(t, readData[i].Issues)
			assert.Equal(t, *data[i].Issues, *readData[i].Issues)
		}
	}
}

func TestWriteRecommendationsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "recs.parquet")
	report := sampleReport()
	data := RecommendationRows(report.RunID, report.Summary.Recommendations)

	require.NoError(t, WriteRecommendationsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[RecommendationRow](file)
	defer reader.Close()

	readData := make([]RecommendationRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, data, readData)
}

func TestWriteParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteRecommendationsParquet([]RecommendationRow{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Parquet footer is always written")
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteHealthParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}

func TestRecommendationsPath(t *testing.T) {
	assert.Equal(t, "out/report_recommendations.parquet", RecommendationsPath("out/report.parquet"))
	assert.Equal(t, "report_recommendations.parquet", RecommendationsPath("report"))
}
