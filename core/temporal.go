package core

import (
	"strings"
	"time"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/montanaflynn/stats"
)

// openStatuses and closedStatuses are compared against trimmed, lowercased status text.
var (
	openStatuses   = map[string]struct{}{"open": {}, "new": {}, "pending": {}, "in progress": {}, "waiting": {}}
	closedStatuses = map[string]struct{}{"closed": {}, "resolved": {}, "solved": {}, "completed": {}}
)

// AnalyzeColdContacts counts contacts whose last activity is missing, unparseable
// or strictly older than days before now.
func AnalyzeColdContacts(contacts *schema.Dataset, days int, now time.Time) schema.ColdAnalysis {
	if contacts.IsEmpty() {
		return schema.ColdAnalysis{Status: schema.StatusNoData}
	}
	total := contacts.Len()
	col, ok := resolve.Column(contacts.Columns, resolve.ActivityDate)
	if !ok {
		return schema.ColdAnalysis{Total: total, NoDateColumn: true, Status: schema.StatusColumnMissing}
	}

	threshold := now.Add(-time.Duration(days) * 24 * time.Hour)
	cold := 0
	for _, row := range contacts.Rows {
		t, ok := parseDate(row[col])
		if !ok || t.Before(threshold) {
			cold++
		}
	}
	return schema.ColdAnalysis{
		ColdCount:     cold,
		ColdPct:       schema.Pct(cold, total),
		Total:         total,
		ThresholdDays: days,
		DateColumn:    col,
		Status:        schema.StatusOK,
	}
}

// AnalyzeCriticalTickets counts open tickets created more than hours before now,
// and averages resolution time over tickets with both dates.
func AnalyzeCriticalTickets(tickets *schema.Dataset, hours int, now time.Time) schema.CriticalTicketsAnalysis {
	if tickets.IsEmpty() {
		return schema.CriticalTicketsAnalysis{Status: schema.StatusNoData}
	}
	total := tickets.Len()
	createdCol, okCreated := resolve.Column(tickets.Columns, resolve.TicketCreated)
	statusCol, okStatus := resolve.Column(tickets.Columns, resolve.TicketStatus)
	if !okCreated || !okStatus {
		return schema.CriticalTicketsAnalysis{Total: total, NoRequiredColumns: true, Status: schema.StatusColumnMissing}
	}

	statuses, ok := statusValues(tickets, statusCol)
	if !ok {
		return schema.CriticalTicketsAnalysis{Total: total, Error: true, Status: schema.StatusParseError}
	}

	threshold := now.Add(-time.Duration(hours) * time.Hour)
	critical, open := 0, 0
	for i, row := range tickets.Rows {
		if _, isOpen := openStatuses[statuses[i]]; !isOpen {
			continue
		}
		open++
		if created, ok := parseDate(row[createdCol]); ok && created.Before(threshold) {
			critical++
		}
	}

	avg := 0.0
	if closedCol, ok := resolve.Column(tickets.Columns, resolve.TicketClosed); ok {
		avg = meanResolutionHours(tickets, createdCol, closedCol)
	}
	return schema.CriticalTicketsAnalysis{
		CriticalCount:  critical,
		TotalOpen:      open,
		Total:          total,
		AvgResolution:  avg,
		ThresholdHours: hours,
		Status:         schema.StatusOK,
	}
}

// statusValues normalizes a status column. Null cells become "". It reports
// false when a non-null cell is not text, since such a column cannot be
// classified.
func statusValues(ds *schema.Dataset, col string) ([]string, bool) {
	out := make([]string, ds.Len())
	for i, row := range ds.Rows {
		v := row[col]
		if schema.IsNull(v) {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out, true
}

// meanResolutionHours averages closed - created over rows where both dates parse.
// The result is rounded to one decimal and clamped to 0 when not positive.
func meanResolutionHours(ds *schema.Dataset, createdCol, closedCol string) float64 {
	var durations stats.Float64Data
	for _, row := range ds.Rows {
		closed, ok := parseDate(row[closedCol])
		if !ok {
			continue
		}
		created, ok := parseDate(row[createdCol])
		if !ok {
			continue
		}
		durations = append(durations, hoursBetween(created, closed))
	}
	mean, err := stats.Mean(durations)
	if err != nil || mean <= 0 {
		return 0
	}
	return schema.Round1(mean)
}
