package core

import (
	"fmt"

	"github.com/StephanieJJ/jupiter-audit/schema"
)

// Evidence is what the recommendation rules look at.
type Evidence struct {
	Summary  schema.AuditSummary
	Orphans  schema.OrphanAnalysis
	Ghosts   schema.GhostAnalysis
	Email    schema.EmailAnalysis
	Cold     schema.ColdAnalysis
	Critical schema.CriticalTicketsAnalysis
	Churn    schema.ChurnAnalysis
}

// RecommendationRule turns evidence into zero or more recommendations.
type RecommendationRule struct {
	Name     string
	Priority schema.Priority
	Category string
	Trigger  func(th schema.RuleThresholds) string // Human readable trigger condition
	Evaluate func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation
}

// atLeast reports whether a count reaches a threshold; zero counts never fire.
func atLeast(n, minimum int) bool {
	return n > 0 && n >= minimum
}

// DataRules run on the audit summary of every dataset.
var DataRules = []RecommendationRule{
	{
		Name:     "duplicates",
		Priority: schema.PriorityHigh,
		Category: "Data Cleaning",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("duplicates >= %d", max(th.DuplicateMin, 1))
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			var out []schema.Recommendation
			for _, kind := range schema.SortedKinds(ev.Summary.Duplicates) {
				n := ev.Summary.Duplicates[kind]
				if !atLeast(n, th.DuplicateMin) {
					continue
				}
				out = append(out, schema.Recommendation{
					Priority: schema.PriorityHigh,
					Category: "Data Cleaning",
					Issue:    fmt.Sprintf("%d duplicate %s found", n, kind),
					Action:   "Implement automated deduplication process",
					Impact:   "Improve data accuracy and reduce confusion",
				})
			}
			return out
		},
	},
	{
		Name:     "missing_data",
		Priority: schema.PriorityMedium,
		Category: "Data Completeness",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("missing cells > %.0f%% of rows", th.MissingRatio*100)
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			var out []schema.Recommendation
			for _, kind := range schema.SortedKinds(ev.Summary.MissingData) {
				missing := ev.Summary.MissingData[kind]
				if float64(missing) <= float64(ev.Summary.Total(kind))*th.MissingRatio {
					continue
				}
				out = append(out, schema.Recommendation{
					Priority: schema.PriorityMedium,
					Category: "Data Completeness",
					Issue:    fmt.Sprintf("Significant missing data in %s", kind),
					Action:   "Implement data validation rules and mandatory fields",
					Impact:   fmt.Sprintf("Enhance %s information quality", kindNoun(kind)),
				})
			}
			return out
		},
	},
}

// SignalRules run on the relationship, validity, temporal and churn records.
var SignalRules = []RecommendationRule{
	{
		Name:     "orphan_contacts",
		Priority: schema.PriorityMedium,
		Category: "Data Relationships",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("orphan contacts >= %d", max(th.OrphanMin, 1))
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			if !atLeast(ev.Orphans.OrphanCount, th.OrphanMin) {
				return nil
			}
			return []schema.Recommendation{{
				Priority: schema.PriorityMedium,
				Category: "Data Relationships",
				Issue:    plural(ev.Orphans.OrphanCount, "contact", "contacts") + " without a company",
				Action:   "Associate contacts with their companies, using email domains where possible",
				Impact:   "Restore account-level reporting and routing",
			}}
		},
	},
	{
		Name:     "ghost_companies",
		Priority: schema.PriorityLow,
		Category: "Data Relationships",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("companies without contacts >= %d", max(th.GhostMin, 1))
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			if !atLeast(ev.Ghosts.GhostCount, th.GhostMin) {
				return nil
			}
			return []schema.Recommendation{{
				Priority: schema.PriorityLow,
				Category: "Data Relationships",
				Issue:    plural(ev.Ghosts.GhostCount, "company", "companies") + " without contacts",
				Action:   "Archive inactive companies or assign an owner contact",
				Impact:   "Reduce CRM clutter and licence cost",
			}}
		},
	},
	{
		Name:     "invalid_emails",
		Priority: schema.PriorityMedium,
		Category: "Data Validation",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("invalid emails >= %d", max(th.InvalidEmailMin, 1))
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			if !atLeast(ev.Email.Invalid, th.InvalidEmailMin) {
				return nil
			}
			return []schema.Recommendation{{
				Priority: schema.PriorityMedium,
				Category: "Data Validation",
				Issue:    plural(ev.Email.Invalid, "invalid email address", "invalid email addresses"),
				Action:   "Validate email syntax at entry and correct existing records",
				Impact:   "Improve campaign deliverability",
			}}
		},
	},
	{
		Name:     "cold_contacts",
		Priority: schema.PriorityMedium,
		Category: "Engagement",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("cold contacts >= %.0f%%", th.ColdPct)
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			if ev.Cold.ColdCount == 0 || ev.Cold.ColdPct < th.ColdPct {
				return nil
			}
			return []schema.Recommendation{{
				Priority: schema.PriorityMedium,
				Category: "Engagement",
				Issue:    fmt.Sprintf("%.1f%% of contacts inactive for more than %d days", ev.Cold.ColdPct, ev.Cold.ThresholdDays),
				Action:   "Launch a re-engagement campaign for dormant contacts",
				Impact:   "Recover dormant relationships before they churn",
			}}
		},
	},
	{
		Name:     "critical_tickets",
		Priority: schema.PriorityHigh,
		Category: "Support Operations",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("critical tickets >= %d", max(th.CriticalMin, 1))
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			if !atLeast(ev.Critical.CriticalCount, th.CriticalMin) {
				return nil
			}
			return []schema.Recommendation{{
				Priority: schema.PriorityHigh,
				Category: "Support Operations",
				Issue:    fmt.Sprintf("%s open for more than %d hours", plural(ev.Critical.CriticalCount, "ticket", "tickets"), ev.Critical.ThresholdHours),
				Action:   "Triage and escalate aging tickets",
				Impact:   "Protect customer satisfaction and SLA compliance",
			}}
		},
	},
	{
		Name:     "churn_risk",
		Priority: schema.PriorityHigh,
		Category: "Retention",
		Trigger: func(th schema.RuleThresholds) string {
			return fmt.Sprintf("at-risk contacts >= %d", max(th.AtRiskMin, 1))
		},
		Evaluate: func(ev Evidence, th schema.RuleThresholds) []schema.Recommendation {
			if !atLeast(ev.Churn.AtRiskCount, th.AtRiskMin) {
				return nil
			}
			impact := "Reduce churn in the at-risk cohort"
			if ev.Churn.ARRAtRisk > 0 {
				impact = fmt.Sprintf("Protect %.0f of revenue at risk", ev.Churn.ARRAtRisk)
			}
			return []schema.Recommendation{{
				Priority: schema.PriorityHigh,
				Category: "Retention",
				Issue:    plural(ev.Churn.AtRiskCount, "contact", "contacts") + " at high churn risk",
				Action:   "Prioritize outreach to at-risk contacts",
				Impact:   impact,
			}}
		},
	},
}

// Recommend evaluates rules in order and concatenates their output.
func Recommend(ev Evidence, th schema.RuleThresholds, rules []RecommendationRule) []schema.Recommendation {
	out := []schema.Recommendation{}
	for _, r := range rules {
		out = append(out, r.Evaluate(ev, th)...)
	}
	return out
}
