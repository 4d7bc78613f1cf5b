package algo

import (
	"testing"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/assert"
)

func TestSortRecommendations(t *testing.T) {
	recs := []schema.Recommendation{
		{Priority: schema.PriorityLow, Issue: "ghosts"},
		{Priority: schema.PriorityMedium, Issue: "missing"},
		{Priority: schema.PriorityHigh, Issue: "duplicates"},
		{Priority: schema.PriorityMedium, Issue: "orphans"},
		{Priority: schema.PriorityHigh, Issue: "critical"},
	}

	sorted := SortRecommendations(recs)

	var issues []string
	for _, r := range sorted {
		issues = append(issues, r.Issue)
	}
	assert.Equal(t, []string{"duplicates", "critical", "missing", "orphans", "ghosts"}, issues)
	assert.Equal(t, "ghosts", recs[0].Issue, "input order is untouched")
}

func TestSortRecommendationsEmpty(t *testing.T) {
	assert.Empty(t, SortRecommendations(nil))
}

func TestCountValues(t *testing.T) {
	counts := CountValues([]string{"Tech", "Retail", "Tech", "Health", "Retail", "Tech"})
	assert.Equal(t, []ValueCount{
		{Value: "Tech", Count: 3},
		{Value: "Retail", Count: 2},
		{Value: "Health", Count: 1},
	}, counts)
}

func TestCountValuesTiesKeepFirstSeen(t *testing.T) {
	counts := CountValues([]string{"b", "a", "c", "a", "b"})
	assert.Equal(t, []ValueCount{
		{Value: "b", Count: 2},
		{Value: "a", Count: 2},
		{Value: "c", Count: 1},
	}, counts)
}

func TestTopValues(t *testing.T) {
	values := []string{"x", "y", "y", "z", "z", "z"}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"limit below distinct", 2, 2},
		{"limit above distinct", 10, 3},
		{"zero returns all", 0, 3},
		{"negative returns all", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, TopValues(values, tt.limit), tt.want)
		})
	}
	assert.Equal(t, "z", TopValues(values, 1)[0].Value)
}
