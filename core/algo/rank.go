// Package algo has ordering helpers shared by the analyzers and writers.
package algo

import (
	"slices"

	"github.com/StephanieJJ/jupiter-audit/schema"
)

// ValueCount is the frequency of one distinct value.
type ValueCount struct {
	Value string
	Count int
}

// SortRecommendations returns the recommendations ordered by priority, HIGH first.
// Recommendations with the same priority keep their trigger order.
func SortRecommendations(recs []schema.Recommendation) []schema.Recommendation {
	sorted := slices.Clone(recs)
	slices.SortStableFunc(sorted, func(a, b schema.Recommendation) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return sorted
}

// CountValues counts distinct values by descending frequency. Ties keep the
// order in which values first appeared.
func CountValues(values []string) []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, ValueCount{Value: v, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b ValueCount) int {
		return b.Count - a.Count
	})
	return counts
}

// TopValues returns at most limit entries of CountValues. A non-positive
// limit returns every entry.
func TopValues(values []string, limit int) []ValueCount {
	counts := CountValues(values)
	if limit > 0 && len(counts) > limit {
		return counts[:limit]
	}
	return counts
}
