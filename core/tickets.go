package core

import (
	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/montanaflynn/stats"
)

// AnalyzeTicketPerformance summarizes support operations: open and closed
// counts, mean resolution hours, SLA compliance and satisfaction means.
// Optional metrics stay nil when no candidate column holds usable values.
func AnalyzeTicketPerformance(tickets *schema.Dataset) schema.TicketPerformance {
	if tickets.IsEmpty() {
		return schema.TicketPerformance{Status: schema.StatusNoData}
	}
	res := schema.TicketPerformance{TotalCount: tickets.Len(), Status: schema.StatusOK}

	if col, ok := resolve.Column(tickets.Columns, resolve.PerfTicketStatus); ok {
		if statuses, ok := statusValues(tickets, col); ok {
			for _, s := range statuses {
				if _, open := openStatuses[s]; open {
					res.OpenCount++
				}
				if _, closed := closedStatuses[s]; closed {
					res.ClosedCount++
				}
			}
		} else {
			res.Status = schema.StatusParseError
		}
	}

	createdCol, okCreated := resolve.Column(tickets.Columns, resolve.PerfTicketCreated)
	closedCol, okClosed := resolve.Column(tickets.Columns, resolve.PerfTicketClosed)
	if okCreated && okClosed {
		res.AvgResolutionHours = meanResolutionHours(tickets, createdCol, closedCol)
	}

	if col, ok := resolve.Column(tickets.Columns, resolve.TicketSLA); ok {
		filled := tickets.Len() - countColumnNulls(tickets, col)
		sla := schema.Pct(filled, tickets.Len())
		res.SLACompliance = &sla
	}
	res.CSATScore = firstNumericMean(tickets, resolve.Candidates(tickets.Columns, resolve.TicketCSAT))
	res.NPSScore = firstNumericMean(tickets, resolve.Candidates(tickets.Columns, resolve.TicketNPS))
	return res
}

func countColumnNulls(ds *schema.Dataset, col string) int {
	n := 0
	for _, row := range ds.Rows {
		if schema.IsNull(row[col]) {
			n++
		}
	}
	return n
}

// firstNumericMean returns the rounded mean of the first candidate column
// whose non-null values are all numeric. Columns with no values or a
// non-numeric value are skipped.
func firstNumericMean(ds *schema.Dataset, candidates []string) *float64 {
	for _, col := range candidates {
		values, ok := numericValues(ds, col)
		if !ok {
			continue
		}
		mean, err := stats.Mean(values)
		if err != nil {
			continue
		}
		m := schema.Round1(mean)
		return &m
	}
	return nil
}

func numericValues(ds *schema.Dataset, col string) (stats.Float64Data, bool) {
	var values stats.Float64Data
	for _, row := range ds.Rows {
		v := row[col]
		if schema.IsNull(v) {
			continue
		}
		f, ok := schema.AsFloat(v)
		if !ok {
			return nil, false
		}
		values = append(values, f)
	}
	return values, true
}
