package core

import (
	"fmt"
	"time"

	"github.com/StephanieJJ/jupiter-audit/core/agg"
	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/google/uuid"
)

// Inputs holds the three CRM exports of one audit. Any of them may be nil.
type Inputs struct {
	Contacts  *schema.Dataset
	Companies *schema.Dataset
	Tickets   *schema.Dataset
}

// ByKind returns the non-nil datasets keyed by kind.
func (in Inputs) ByKind() map[schema.DatasetKind]*schema.Dataset {
	out := make(map[schema.DatasetKind]*schema.Dataset, 3)
	for kind, ds := range map[schema.DatasetKind]*schema.Dataset{
		schema.ContactsKind:  in.Contacts,
		schema.CompaniesKind: in.Companies,
		schema.TicketsKind:   in.Tickets,
	} {
		if ds != nil {
			out[kind] = ds
		}
	}
	return out
}

// Options parameterizes a full audit run.
type Options struct {
	Now           time.Time // Evaluation instant; zero means wall clock
	ColdDays      int
	CriticalHours int
	TopIndustries int
	Rules         schema.RuleThresholds
	RunID         string // Optional; a random UUID is used when empty
}

// DefaultOptions returns the stock analyzer parameters evaluated at now.
func DefaultOptions(now time.Time) Options {
	return Options{
		Now:           now,
		ColdDays:      schema.DefaultColdDays,
		CriticalHours: schema.DefaultCriticalHours,
		TopIndustries: schema.DefaultTopIndustries,
		Rules:         schema.DefaultRuleThresholds(),
	}
}

// duplicateRoles picks the column checked for duplicates in each dataset.
var duplicateRoles = map[schema.DatasetKind]resolve.Role{
	schema.ContactsKind:  resolve.Email,
	schema.CompaniesKind: resolve.CompanyName,
	schema.TicketsKind:   resolve.HealthKey,
}

// Audit computes totals, duplicate and missing-cell counts per dataset, the
// per-dataset health scores and the recommendations of the data rules.
func Audit(in Inputs, th schema.RuleThresholds) schema.AuditSummary {
	return auditSummary(in, th, nil)
}

func auditSummary(in Inputs, th schema.RuleThresholds, cache *ResultCache) schema.AuditSummary {
	summary := schema.AuditSummary{
		TotalContacts:   in.Contacts.Len(),
		TotalCompanies:  in.Companies.Len(),
		TotalTickets:    in.Tickets.Len(),
		Duplicates:      make(map[schema.DatasetKind]int),
		MissingData:     make(map[schema.DatasetKind]int),
		DataQuality:     make(map[schema.DatasetKind]schema.HealthScore),
		Recommendations: []schema.Recommendation{},
	}
	datasets := in.ByKind()
	for _, kind := range schema.SortedKinds(datasets) {
		ds := datasets[kind]
		if col, ok := resolve.Column(ds.Columns, duplicateRoles[kind]); ok {
			summary.Duplicates[kind] = countDuplicates(ds, col)
		}
		summary.MissingData[kind] = countNulls(ds)
		if !ds.IsEmpty() {
			summary.DataQuality[kind] = cachedHealth(cache, kind, ds)
		}
	}
	summary.Recommendations = Recommend(Evidence{Summary: summary}, th, DataRules)
	return summary
}

// cachedHealth scores a dataset once per run.
func cachedHealth(cache *ResultCache, kind schema.DatasetKind, ds *schema.Dataset) schema.HealthScore {
	return cached(cache, "health:"+string(kind), func() schema.HealthScore { return ScoreHealth(ds) })
}

// RunAudit runs every analyzer over the inputs and returns the full report.
// Records are stored in cache under their analysis names when cache is non-nil.
func RunAudit(in Inputs, opts Options, cache *ResultCache) schema.AuditReport {
	start := time.Now()
	now := opts.Now
	if now.IsZero() {
		now = start.UTC()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	report := schema.AuditReport{
		RunID:       runID,
		EvaluatedAt: now,
		Summary:     auditSummary(in, opts.Rules, cache),
		Complete:    make(map[schema.DatasetKind]schema.CompletenessAnalysis),
	}
	for kind, ds := range in.ByKind() {
		report.Complete[kind] = cached(cache, "completeness:"+string(kind), func() schema.CompletenessAnalysis {
			return AnalyzeCompleteness(ds)
		})
	}

	report.Cold = cached(cache, "cold", func() schema.ColdAnalysis {
		return AnalyzeColdContacts(in.Contacts, opts.ColdDays, now)
	})
	report.Email = cached(cache, "email", func() schema.EmailAnalysis { return AnalyzeEmailValidity(in.Contacts) })
	report.Orphans = cached(cache, "orphans", func() schema.OrphanAnalysis { return AnalyzeOrphanContacts(in.Contacts) })
	report.Ghosts = cached(cache, "ghosts", func() schema.GhostAnalysis {
		return AnalyzeGhostCompanies(in.Companies, in.Contacts)
	})
	report.Critical = cached(cache, "critical", func() schema.CriticalTicketsAnalysis {
		return AnalyzeCriticalTickets(in.Tickets, opts.CriticalHours, now)
	})
	report.Churn = cached(cache, "churn", func() schema.ChurnAnalysis { return AnalyzeChurnRisk(in.Contacts, now) })
	report.Tickets = cached(cache, "tickets", func() schema.TicketPerformance { return AnalyzeTicketPerformance(in.Tickets) })
	report.Industries = cached(cache, "industries", func() schema.TopIndustries {
		return AnalyzeTopIndustries(in.Companies, opts.TopIndustries)
	})

	report.Overall = AnalyzeOverallQuality(in.ByKind(), cache)
	aggregated := agg.Aggregate(in.Contacts, in.Companies, in.Tickets)
	report.PostScore = cachedHealth(cache, schema.AggregatedKind, aggregated)
	var post *schema.HealthScore
	if aggregated != nil {
		post = &report.PostScore
	}
	report.Improvement = AnalyzeQualityImprovement(report.Summary.DataQuality, post)

	ev := Evidence{
		Summary:  report.Summary,
		Orphans:  report.Orphans,
		Ghosts:   report.Ghosts,
		Email:    report.Email,
		Cold:     report.Cold,
		Critical: report.Critical,
		Churn:    report.Churn,
	}
	report.Summary.Recommendations = append(report.Summary.Recommendations, Recommend(ev, opts.Rules, SignalRules)...)

	report.Duration = time.Since(start)
	return report
}

// kindNoun is the singular noun used in recommendation text.
func kindNoun(kind schema.DatasetKind) string {
	switch kind {
	case schema.ContactsKind:
		return "contact"
	case schema.CompaniesKind:
		return "company"
	case schema.TicketsKind:
		return "ticket"
	default:
		return string(kind)
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
