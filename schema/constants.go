package schema

// Custom string types for type safety.
type (
	// DatasetKind names one of the CRM exports.
	DatasetKind string

	// Status tells callers why a diagnostic record holds the values it does.
	Status string

	// OutputMode represents the format of the output.
	OutputMode string

	// Priority ranks a recommendation.
	Priority string

	// PenaltyKey names one component of the health score.
	PenaltyKey string
)

// All dataset kinds supported.
const (
	ContactsKind   DatasetKind = "contacts"
	CompaniesKind  DatasetKind = "companies"
	TicketsKind    DatasetKind = "tickets"
	AggregatedKind DatasetKind = "aggregated"
)

// AllDatasetKinds lists the source exports in audit order.
var AllDatasetKinds = []DatasetKind{ContactsKind, CompaniesKind, TicketsKind}

// All record statuses.
const (
	StatusOK            Status = "ok"             // metrics were computed
	StatusNoData        Status = "no_data"        // dataset was nil or empty
	StatusColumnMissing Status = "column_missing" // a required column role did not resolve
	StatusParseError    Status = "parse_error"    // column values could not be interpreted
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// Recommendation priorities.
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities for presentation; lower sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Health score penalty components.
const (
	PenaltyMissing    PenaltyKey = "missing"
	PenaltyDuplicates PenaltyKey = "duplicates"
	PenaltyEmpty      PenaltyKey = "empty"
)

// Penalty describes how one health score component is computed.
type Penalty struct {
	Key        PenaltyKey
	Label      string  // Prefix used in issue strings
	Multiplier float64 // Points deducted per percentage point
	Cap        float64 // Maximum deduction
}

// HealthPenalties is the penalty table applied by the health scorer, in issue order.
var HealthPenalties = []Penalty{
	{Key: PenaltyMissing, Label: "Missing data", Multiplier: 2, Cap: 30},
	{Key: PenaltyDuplicates, Label: "Duplicates", Multiplier: 3, Cap: 30},
	{Key: PenaltyEmpty, Label: "Empty fields", Multiplier: 1.5, Cap: 20},
}

// Default analyzer parameters.
const (
	DefaultColdDays         = 90
	DefaultCriticalHours    = 48
	DefaultTopIndustries    = 3
	DefaultChurnAtRiskScore = 70
	DefaultHealthThreshold  = 70.0
)

// Gate keys accepted by the health check besides the dataset kinds.
const (
	OverallGate = "overall"
	PostGate    = "post"
)
