package schema

// CheckResult holds the results of a health gate.
type CheckResult struct {
	Passed     bool               `json:"passed"`
	Failed     []CheckFailure     `json:"failed"`
	Scores     map[string]float64 `json:"scores"`     // Gate key -> observed score
	Thresholds map[string]float64 `json:"thresholds"` // Gate key -> minimum score
}

// CheckFailure is one gate whose score fell below its threshold.
type CheckFailure struct {
	Gate      string  `json:"gate"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
}
