package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }

func sampleReport() schema.AuditReport {
	return schema.AuditReport{
		RunID:       "run-42",
		EvaluatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Sources: map[schema.DatasetKind]schema.SourceInfo{
			schema.ContactsKind: {Path: "contacts.csv", Rows: 2, OriginalRows: 5, Limited: true},
		},
		Summary: schema.AuditSummary{
			TotalContacts:  2,
			TotalCompanies: 1,
			Duplicates:     map[schema.DatasetKind]int{schema.ContactsKind: 1},
			MissingData:    map[schema.DatasetKind]int{schema.ContactsKind: 3, schema.CompaniesKind: 0},
			DataQuality: map[schema.DatasetKind]schema.HealthScore{
				schema.ContactsKind:  {Score: 55.5, Issues: []string{"Duplicates: 50.0% (-30.0 points)"}, Rows: 2, Columns: 3, Status: schema.StatusOK},
				schema.CompaniesKind: {Score: 100, Issues: []string{}, Rows: 1, Columns: 2, Status: schema.StatusOK},
			},
			Recommendations: []schema.Recommendation{
				{Priority: schema.PriorityMedium, Category: "Data Completeness", Issue: "Significant missing data in contacts", Action: "Implement data validation rules and mandatory fields", Impact: "Enhance contact information quality"},
				{Priority: schema.PriorityHigh, Category: "Data Cleaning", Issue: "1 duplicate contacts found", Action: "Implement automated deduplication process", Impact: "Improve data accuracy and reduce confusion"},
			},
		},
		PostScore:   schema.HealthScore{Score: 90, Issues: []string{}, Rows: 2, Columns: 6, Status: schema.StatusOK},
		Improvement: schema.QualityImprovement{Improvement: 12.2, PreAvg: 77.8, PostScore: 90},
		Overall:     schema.OverallQuality{OverallScore: 77.8},
		Tickets:     schema.TicketPerformance{CSATScore: ptrFloat(4.5)},
		Industries: schema.TopIndustries{TopIndustries: []schema.IndustryCount{
			{Name: "Software", Count: 1, Percentage: 100},
		}},
	}
}

func testConfig(t *testing.T, mode schema.OutputMode, file string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     mode,
		OutputFile: filepath.Join(t.TempDir(), file),
		Precision:  1,
		Width:      120,
		Now:        time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWriteReportJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut, "report.json")
	require.NoError(t, WriteReport(sampleReport(), cfg, time.Second))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(content, &got))
	assert.Equal(t, "run-42", got["run_id"])
	assert.Contains(t, got, "summary")
	assert.Contains(t, got, "post_aggregation")

	ranked, ok := got["ranked_recommendations"].([]any)
	require.True(t, ok)
	require.Len(t, ranked, 2)
	first := ranked[0].(map[string]any)
	assert.Equal(t, "HIGH", first["priority"], "recommendations are priority sorted")
	assert.Equal(t, float64(1), first["rank"])
}

func TestWriteReportCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "report.csv")
	require.NoError(t, WriteReport(sampleReport(), cfg, time.Second))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"section", "metric", "value"}, records[0])
	byKey := make(map[string]string)
	for _, r := range records[1:] {
		require.Len(t, r, 3)
		byKey[r[0]+"/"+r[1]] = r[2]
	}
	assert.Equal(t, "2", byKey["summary/total_contacts"])
	assert.Equal(t, "1", byKey["summary/duplicates_contacts"])
	assert.Equal(t, "55.5", byKey["health/contacts_score"])
	assert.Equal(t, "90.0", byKey["health/post_aggregation_score"])
	assert.Equal(t, "4.5", byKey["tickets/csat"])
	assert.Equal(t, "n/a", byKey["tickets/nps"])
	assert.Equal(t, "1 (100.0%)", byKey["industries/Software"])
	assert.Equal(t, "1 duplicate contacts found", byKey["recommendations/1_high"])
	assert.Equal(t, "Significant missing data in contacts", byKey["recommendations/2_medium"])
}

func TestWriteReportText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "report.txt")
	cfg.Detail = true
	cfg.Width = 400
	require.NoError(t, WriteReport(sampleReport(), cfg, time.Second))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	out := string(content)

	assert.Contains(t, out, "Contacts")
	assert.Contains(t, out, "Aggregated")
	assert.Contains(t, out, schema.PoorValue)
	assert.Contains(t, out, "Overall quality: 77.8")
	assert.Contains(t, out, "Improve data accuracy")
	assert.Contains(t, out, "Note: contacts limited to 2 of 5 rows")
	assert.Contains(t, out, "Audit run-42 evaluated at 2024-01-01T00:00:00Z")
	assert.Less(t, strings.Index(out, "1 duplicate contacts found"), strings.Index(out, "Significant missing data"))
}

func TestWriteReportTextNoRecommendations(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "report.txt")
	report := sampleReport()
	report.Summary.Recommendations = nil

	require.NoError(t, WriteReport(report, cfg, time.Second))
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "No recommendations")
}

func TestWriteReportParquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut, "report.parquet")
	require.NoError(t, WriteReport(sampleReport(), cfg, time.Second))

	for _, path := range []string{cfg.OutputFile, strings.TrimSuffix(cfg.OutputFile, ".parquet") + "_recommendations.parquet"} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestReportMetricsSkipsMissingAggregation(t *testing.T) {
	report := sampleReport()
	report.PostScore = schema.HealthScore{Status: schema.StatusNoData}
	fmtFloat, fmtInt := createFormatters(1)

	for _, r := range reportMetrics(report, fmtFloat, fmtInt) {
		assert.NotEqual(t, "post_aggregation_score", r.Metric)
	}
}

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		detail   bool
		expected int
	}{
		{"narrow clamps to minimum", 40, false, 15},
		{"wide clamps to maximum", 400, false, 70},
		{"regular", 120, false, 39},
		{"regular with detail", 120, true, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width, Detail: tt.detail}
			assert.Equal(t, tt.expected, GetMaxTableTextWidth(cfg))
		})
	}
}
