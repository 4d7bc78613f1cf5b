package core

import (
	"math"
	"time"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/montanaflynn/stats"
)

// ChurnScoreColumn is the column added to the working copy by ScoreChurnRisk.
const ChurnScoreColumn = "churn_risk_score"

// Churn signal contributions.
const (
	churnInactive90  = 40 // no activity for more than 90 days
	churnInactive60  = 20 // 61 to 90 days
	churnInactive30  = 10 // 31 to 60 days
	churnBadEmail    = 15
	churnIncomplete  = 15
	churnMinFillRate = 0.5
)

// inactivityPoints maps whole days since the last activity to a score contribution.
func inactivityPoints(days float64) int {
	switch {
	case days > 90:
		return churnInactive90
	case days > 60:
		return churnInactive60
	case days > 30:
		return churnInactive30
	default:
		return 0
	}
}

// ScoreChurnRisk returns a copy of contacts with a per-row integer churn risk
// score in ChurnScoreColumn. The input is never modified.
//
// Signals:
// - inactivity from the last activity date; rows whose date does not parse get no points
// - 15 when the email fails the address pattern, null included
// - 15 when fewer than half of the row's fields are non-null
func ScoreChurnRisk(contacts *schema.Dataset, now time.Time) *schema.Dataset {
	if contacts == nil {
		return nil
	}
	work := contacts.Clone()
	dateCol, hasDate := resolve.Column(work.Columns, resolve.ActivityDate)
	emailCol, hasEmail := resolve.Column(work.Columns, resolve.Email)
	if !work.HasColumn(ChurnScoreColumn) {
		work.Columns = append(work.Columns, ChurnScoreColumn)
	}

	for _, row := range work.Rows {
		score := 0
		if hasDate {
			if t, ok := parseDate(row[dateCol]); ok {
				score += inactivityPoints(math.Floor(now.Sub(t).Hours() / 24))
			}
		}
		if hasEmail && !isValidEmail(row[emailCol]) {
			score += churnBadEmail
		}
		row[ChurnScoreColumn] = score
		if fillRate(row, work.Columns) < churnMinFillRate {
			row[ChurnScoreColumn] = score + churnIncomplete
		}
	}
	return work
}

// fillRate is the share of non-null fields in a row.
func fillRate(row schema.Row, columns []string) float64 {
	if len(columns) == 0 {
		return 0
	}
	filled := 0
	for _, c := range columns {
		if !schema.IsNull(row[c]) {
			filled++
		}
	}
	return float64(filled) / float64(len(columns))
}

// AnalyzeChurnRisk summarizes the churn risk cohort of a contacts dataset.
// Revenue at risk is the sum of the revenue column over at-risk rows; a
// non-numeric value sets RevenueError and reports 0.
func AnalyzeChurnRisk(contacts *schema.Dataset, now time.Time) schema.ChurnAnalysis {
	if contacts.IsEmpty() {
		return schema.ChurnAnalysis{Status: schema.StatusNoData}
	}
	work := ScoreChurnRisk(contacts, now)

	scores := make(stats.Float64Data, 0, work.Len())
	var atRisk []schema.Row
	for _, row := range work.Rows {
		score, _ := row[ChurnScoreColumn].(int)
		scores = append(scores, float64(score))
		if score >= schema.DefaultChurnAtRiskScore {
			atRisk = append(atRisk, row)
		}
	}
	mean, _ := stats.Mean(scores)

	res := schema.ChurnAnalysis{
		AtRiskCount: len(atRisk),
		AtRiskPct:   schema.Pct(len(atRisk), work.Len()),
		AvgScore:    schema.Round1(mean),
		Total:       work.Len(),
		Status:      schema.StatusOK,
	}
	if col, ok := resolve.Column(contacts.Columns, resolve.Revenue); ok {
		res.RevenueColumn = col
		sum, valid := sumColumn(atRisk, col)
		res.RevenueError = !valid
		if valid && sum > 0 {
			res.ARRAtRisk = math.Round(sum)
		}
	}
	return res
}

// sumColumn adds the numeric values of col, skipping nulls. It reports false
// when any non-null value is not numeric.
func sumColumn(rows []schema.Row, col string) (float64, bool) {
	sum := 0.0
	for _, row := range rows {
		v := row[col]
		if schema.IsNull(v) {
			continue
		}
		f, ok := schema.AsFloat(v)
		if !ok {
			return 0, false
		}
		sum += f
	}
	return sum, true
}
