package core

import (
	"fmt"
	"math"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

// ScoreHealth computes the 0-100 health score of one dataset.
// Penalties come from schema.HealthPenalties:
// - missing: share of null cells over rows x columns
// - duplicates: share of repeated values in the first id- or email-like column
// - empty: share of cells holding the empty string
//
// Each component is capped and only reported when its percentage is positive.
// A nil or empty dataset scores 0 with no issues.
func ScoreHealth(ds *schema.Dataset) schema.HealthScore {
	if ds.IsEmpty() {
		return schema.HealthScore{
			Issues:  []string{},
			Rows:    ds.Len(),
			Columns: ds.Width(),
			Status:  schema.StatusNoData,
		}
	}

	pcts := healthPercentages(ds)
	result := schema.HealthScore{
		Issues:    []string{},
		Penalties: make(map[schema.PenaltyKey]float64),
		Rows:      ds.Len(),
		Columns:   ds.Width(),
		Status:    schema.StatusOK,
	}

	total := 0.0
	for _, p := range schema.HealthPenalties {
		pct, ok := pcts[p.Key]
		if !ok || pct <= 0 {
			continue
		}
		penalty := math.Min(pct*p.Multiplier, p.Cap)
		total += penalty
		result.Penalties[p.Key] = penalty
		result.Issues = append(result.Issues, fmt.Sprintf("%s: %.1f%% (-%.1f points)", p.Label, pct, penalty))
	}
	result.Score = math.Max(100-total, 0)
	return result
}

// healthPercentages returns the raw percentage behind each penalty component.
// The duplicates entry is absent when no key column resolves.
func healthPercentages(ds *schema.Dataset) map[schema.PenaltyKey]float64 {
	cells := float64(ds.Len() * ds.Width())
	nulls, empties := 0, 0
	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			v := row[col]
			switch {
			case schema.IsNull(v):
				nulls++
			case schema.IsEmptyString(v):
				empties++
			}
		}
	}

	pcts := map[schema.PenaltyKey]float64{
		schema.PenaltyMissing: float64(nulls) * 100 / cells,
		schema.PenaltyEmpty:   float64(empties) * 100 / cells,
	}
	if key, ok := resolve.Column(ds.Columns, resolve.HealthKey); ok {
		pcts[schema.PenaltyDuplicates] = float64(countDuplicates(ds, key)) * 100 / float64(ds.Len())
	}
	return pcts
}

// nullKey stands in for null cells so that repeated nulls count as duplicates.
const nullKey = "\x00null"

// countDuplicates counts rows whose value in col already appeared in an earlier row.
func countDuplicates(ds *schema.Dataset, col string) int {
	seen := make(map[string]struct{}, ds.Len())
	dups := 0
	for _, row := range ds.Rows {
		key, ok := schema.AsKey(row[col])
		if !ok {
			key = nullKey
		}
		if _, exists := seen[key]; exists {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// countNulls returns the number of null cells across the whole dataset.
func countNulls(ds *schema.Dataset) int {
	if ds == nil {
		return 0
	}
	n := 0
	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			if schema.IsNull(row[col]) {
				n++
			}
		}
	}
	return n
}
