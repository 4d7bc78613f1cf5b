package schema

// Health label values, from best to worst.
const (
	HealthyValue  = "Healthy"
	FairValue     = "Fair"
	PoorValue     = "Poor"
	CriticalValue = "Critical"
)

// EnrichedRecommendation adds presentation rank to a recommendation.
type EnrichedRecommendation struct {
	Rank int `json:"rank"`
	Recommendation
}

// GetPlainLabel returns a plain text label for a 0-100 health score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return HealthyValue
	case score >= 60:
		return FairValue
	case score >= 40:
		return PoorValue
	default:
		return CriticalValue
	}
}

// EnrichRecommendations adds a 1-based rank to already sorted recommendations.
func EnrichRecommendations(recs []Recommendation) []EnrichedRecommendation {
	output := make([]EnrichedRecommendation, len(recs))
	for i, r := range recs {
		output[i] = EnrichedRecommendation{
			Rank:           i + 1,
			Recommendation: r,
		}
	}
	return output
}

// ResolverRule is the printable form of one column role rule.
type ResolverRule struct {
	Role     string `json:"role"`
	Matchers string `json:"matchers"` // Matcher descriptions in priority order
}

// TriggerRule is the printable form of one recommendation rule.
type TriggerRule struct {
	Name     string   `json:"name"`
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Trigger  string   `json:"trigger"`
}

// RulesRenderModel is everything the rules listing prints.
type RulesRenderModel struct {
	Penalties  []Penalty      `json:"penalties"`
	Resolver   []ResolverRule `json:"resolver"`
	Triggers   []TriggerRule  `json:"triggers"`
	Thresholds RuleThresholds `json:"thresholds"`
}
