package schema

// HealthScore is the 0-100 quality score of one dataset with its itemized deductions.
type HealthScore struct {
	Score     float64                `json:"score"`
	Issues    []string               `json:"issues"`
	Penalties map[PenaltyKey]float64 `json:"penalties,omitempty"` // Points deducted per component
	Rows      int                    `json:"rows"`
	Columns   int                    `json:"columns"`
	Status    Status                 `json:"status"`
}

// OrphanAnalysis counts contacts without a company reference.
type OrphanAnalysis struct {
	OrphanCount     int     `json:"orphan_count"`
	OrphanPct       float64 `json:"orphan_pct"`
	NonOrphanCount  int     `json:"non_orphan_count"`
	Total           int     `json:"total"`
	CompanyColumn   string  `json:"company_column,omitempty"`
	NoCompanyColumn bool    `json:"no_company_column,omitempty"`
	Status          Status  `json:"status"`
}

// GhostAnalysis counts companies that no contact references.
type GhostAnalysis struct {
	GhostCount  int     `json:"ghost_count"`
	GhostPct    float64 `json:"ghost_pct"`
	Total       int     `json:"total"`
	NoIDColumns bool    `json:"no_id_columns,omitempty"`
	Status      Status  `json:"status"`
}

// ColdAnalysis counts contacts with no activity inside the threshold window.
type ColdAnalysis struct {
	ColdCount     int     `json:"cold_count"`
	ColdPct       float64 `json:"cold_pct"`
	Total         int     `json:"total"`
	ThresholdDays int     `json:"threshold_days,omitempty"`
	DateColumn    string  `json:"date_column,omitempty"`
	NoDateColumn  bool    `json:"no_date_column,omitempty"`
	Status        Status  `json:"status"`
}

// CriticalTicketsAnalysis counts open tickets older than the threshold.
type CriticalTicketsAnalysis struct {
	CriticalCount     int     `json:"critical_count"`
	TotalOpen         int     `json:"total_open"`
	Total             int     `json:"total"`
	AvgResolution     float64 `json:"avg_resolution"` // Hours, one decimal
	ThresholdHours    int     `json:"threshold_hours,omitempty"`
	NoRequiredColumns bool    `json:"no_required_columns,omitempty"`
	Error             bool    `json:"error,omitempty"`
	Status            Status  `json:"status"`
}

// EmailAnalysis reports syntactic validity and consumer domains of contact emails.
type EmailAnalysis struct {
	Total    int     `json:"total"` // Contacts with a non-null email
	Valid    int     `json:"valid"`
	Invalid  int     `json:"invalid"`
	ValidPct float64 `json:"valid_pct"`
	B2CCount int     `json:"b2c_count"`
	B2CPct   float64 `json:"b2c_pct"`
	Status   Status  `json:"status"`
}

// ChurnAnalysis summarizes per-contact churn risk scores.
type ChurnAnalysis struct {
	AtRiskCount   int     `json:"at_risk_count"`
	AtRiskPct     float64 `json:"at_risk_pct"`
	AvgScore      float64 `json:"avg_score"`
	Total         int     `json:"total"`
	ARRAtRisk     float64 `json:"arr_at_risk"`
	RevenueColumn string  `json:"revenue_column,omitempty"`
	RevenueError  bool    `json:"revenue_error,omitempty"`
	Status        Status  `json:"status"`
}

// CompletenessAnalysis reports the share of non-null cells in a dataset.
type CompletenessAnalysis struct {
	CompletenessPct float64 `json:"completeness_pct"`
	TotalFields     int     `json:"total_fields"`
	FilledFields    int     `json:"filled_fields"`
	TotalCells      int     `json:"total_cells"`
	Status          Status  `json:"status"`
}

// OverallQuality is the mean health score across the supplied datasets.
type OverallQuality struct {
	OverallScore float64                 `json:"overall_score"`
	Breakdown    map[DatasetKind]float64 `json:"breakdown"`
}

// QualityImprovement compares pre-aggregation scores to the aggregated view score.
type QualityImprovement struct {
	Improvement float64 `json:"improvement"`
	PreAvg      float64 `json:"pre_avg"`
	PostScore   float64 `json:"post_score"`
}

// TicketPerformance summarizes support operations.
// Optional metrics are nil when no usable column exists.
type TicketPerformance struct {
	OpenCount          int      `json:"open_count"`
	ClosedCount        int      `json:"closed_count"`
	TotalCount         int      `json:"total_count"`
	AvgResolutionHours float64  `json:"avg_resolution_hours"`
	SLACompliance      *float64 `json:"sla_compliance"`
	CSATScore          *float64 `json:"csat_score"`
	NPSScore           *float64 `json:"nps_score"`
	Status             Status   `json:"status"`
}

// IndustryCount is one entry of the top industries ranking.
type IndustryCount struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopIndustries ranks company industries by frequency.
type TopIndustries struct {
	TopIndustries    []IndustryCount `json:"top_industries"`
	TotalCompanies   int             `json:"total_companies"`
	NoIndustryColumn bool            `json:"no_industry_column,omitempty"`
	Status           Status          `json:"status"`
}
