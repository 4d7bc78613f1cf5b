package schema

import "time"

// Recommendation is one remediation suggestion produced by a trigger rule.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Issue    string   `json:"issue"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
}

// AuditSummary is the output of the audit orchestrator: totals,
// duplicate and missing-cell counts per dataset, and the recommendations.
type AuditSummary struct {
	TotalContacts   int                         `json:"total_contacts"`
	TotalCompanies  int                         `json:"total_companies"`
	TotalTickets    int                         `json:"total_tickets"`
	Duplicates      map[DatasetKind]int         `json:"duplicates"`
	MissingData     map[DatasetKind]int         `json:"missing_data"`
	DataQuality     map[DatasetKind]HealthScore `json:"data_quality"`
	Recommendations []Recommendation            `json:"recommendations"`
}

// Total returns the row count recorded for a dataset kind.
func (s AuditSummary) Total(kind DatasetKind) int {
	switch kind {
	case ContactsKind:
		return s.TotalContacts
	case CompaniesKind:
		return s.TotalCompanies
	case TicketsKind:
		return s.TotalTickets
	default:
		return 0
	}
}

// SourceInfo describes how a dataset was loaded.
type SourceInfo struct {
	Path         string `json:"path"`
	Rows         int    `json:"rows"`
	OriginalRows int    `json:"original_rows"`
	Limited      bool   `json:"limited"`
}

// AuditReport bundles every diagnostic record of one audit run.
type AuditReport struct {
	RunID       string                               `json:"run_id"`
	EvaluatedAt time.Time                            `json:"evaluated_at"`
	Sources     map[DatasetKind]SourceInfo           `json:"sources,omitempty"`
	Summary     AuditSummary                         `json:"summary"`
	PostScore   HealthScore                          `json:"post_aggregation"`
	Improvement QualityImprovement                   `json:"quality_improvement"`
	Overall     OverallQuality                       `json:"overall_quality"`
	Complete    map[DatasetKind]CompletenessAnalysis `json:"completeness"`
	Cold        ColdAnalysis                         `json:"cold_analysis"`
	Email       EmailAnalysis                        `json:"email_analysis"`
	Orphans     OrphanAnalysis                       `json:"orphan_analysis"`
	Ghosts      GhostAnalysis                        `json:"ghost_companies"`
	Critical    CriticalTicketsAnalysis              `json:"critical_tickets"`
	Churn       ChurnAnalysis                        `json:"churn_risk"`
	Tickets     TicketPerformance                    `json:"tickets_performance"`
	Industries  TopIndustries                        `json:"top_industries"`
	Duration    time.Duration                        `json:"-"`
}

// RuleThresholds are the trigger levels of the recommendation rules.
// Count thresholds fire when the observed count is at least the value.
type RuleThresholds struct {
	DuplicateMin    int     `json:"duplicate_min"`
	MissingRatio    float64 `json:"missing_ratio"` // Missing cells above ratio x rows
	OrphanMin       int     `json:"orphan_min"`
	GhostMin        int     `json:"ghost_min"`
	InvalidEmailMin int     `json:"invalid_email_min"`
	ColdPct         float64 `json:"cold_pct"`
	CriticalMin     int     `json:"critical_min"`
	AtRiskMin       int     `json:"at_risk_min"`
}

// DefaultRuleThresholds returns the stock trigger levels.
func DefaultRuleThresholds() RuleThresholds {
	return RuleThresholds{
		DuplicateMin:    1,
		MissingRatio:    0.10,
		OrphanMin:       1,
		GhostMin:        1,
		InvalidEmailMin: 1,
		ColdPct:         25,
		CriticalMin:     1,
		AtRiskMin:       1,
	}
}
