package core

import (
	"fmt"

	"github.com/StephanieJJ/jupiter-audit/core/algo"
	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

// AnalyzeTopIndustries ranks company industries by frequency and keeps the top n.
// Percentages are relative to all companies, null industries included.
func AnalyzeTopIndustries(companies *schema.Dataset, n int) schema.TopIndustries {
	if companies.IsEmpty() {
		return schema.TopIndustries{TopIndustries: []schema.IndustryCount{}, Status: schema.StatusNoData}
	}
	total := companies.Len()
	col, ok := resolve.Column(companies.Columns, resolve.Industry)
	if !ok {
		return schema.TopIndustries{
			TopIndustries:    []schema.IndustryCount{},
			TotalCompanies:   total,
			NoIndustryColumn: true,
			Status:           schema.StatusColumnMissing,
		}
	}

	var values []string
	for _, row := range companies.Rows {
		v := row[col]
		if schema.IsNull(v) {
			continue
		}
		values = append(values, cellText(v))
	}

	top := algo.TopValues(values, n)
	res := schema.TopIndustries{
		TopIndustries:  make([]schema.IndustryCount, 0, len(top)),
		TotalCompanies: total,
		Status:         schema.StatusOK,
	}
	for _, vc := range top {
		res.TopIndustries = append(res.TopIndustries, schema.IndustryCount{
			Name:       vc.Value,
			Count:      vc.Count,
			Percentage: schema.Pct(vc.Count, total),
		})
	}
	return res
}

// cellText renders a non-null cell for display.
func cellText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if key, ok := schema.AsKey(v); ok {
		return key
	}
	return fmt.Sprint(v)
}
