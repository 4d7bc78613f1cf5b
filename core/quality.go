package core

import (
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/montanaflynn/stats"
)

// AnalyzeCompleteness reports the share of non-null cells in a dataset.
func AnalyzeCompleteness(ds *schema.Dataset) schema.CompletenessAnalysis {
	if ds.IsEmpty() {
		return schema.CompletenessAnalysis{Status: schema.StatusNoData}
	}
	cells := ds.Len() * ds.Width()
	filled := cells - countNulls(ds)
	return schema.CompletenessAnalysis{
		CompletenessPct: schema.Pct(filled, cells),
		TotalFields:     ds.Width(),
		FilledFields:    filled,
		TotalCells:      cells,
		Status:          schema.StatusOK,
	}
}

// AnalyzeOverallQuality averages the health scores of the non-empty datasets.
// Scores already in cache are reused.
func AnalyzeOverallQuality(datasets map[schema.DatasetKind]*schema.Dataset, cache *ResultCache) schema.OverallQuality {
	scores := make(map[schema.DatasetKind]schema.HealthScore, len(datasets))
	for kind, ds := range datasets {
		if !ds.IsEmpty() {
			scores[kind] = cachedHealth(cache, kind, ds)
		}
	}
	return overallFromScores(scores)
}

// overallFromScores averages health scores keyed by dataset.
func overallFromScores(scores map[schema.DatasetKind]schema.HealthScore) schema.OverallQuality {
	res := schema.OverallQuality{Breakdown: make(map[schema.DatasetKind]float64, len(scores))}
	values := make(stats.Float64Data, 0, len(scores))
	for _, kind := range schema.SortedKinds(scores) {
		score := scores[kind].Score
		values = append(values, score)
		res.Breakdown[kind] = schema.Round1(score)
	}
	if mean, err := stats.Mean(values); err == nil {
		res.OverallScore = schema.Round1(mean)
	}
	return res
}

// AnalyzeQualityImprovement compares the mean pre-aggregation score with the
// score of the aggregated view. Missing inputs yield zeros.
func AnalyzeQualityImprovement(pre map[schema.DatasetKind]schema.HealthScore, post *schema.HealthScore) schema.QualityImprovement {
	if len(pre) == 0 || post == nil {
		return schema.QualityImprovement{}
	}
	values := make(stats.Float64Data, 0, len(pre))
	for _, kind := range schema.SortedKinds(pre) {
		values = append(values, pre[kind].Score)
	}
	preAvg, _ := stats.Mean(values)
	return schema.QualityImprovement{
		Improvement: schema.Round1(post.Score - preAvg),
		PreAvg:      schema.Round1(preAvg),
		PostScore:   schema.Round1(post.Score),
	}
}
