package core

import (
	"regexp"
	"strings"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// consumerDomains mark an address as B2C when found anywhere in the lowercased value.
var consumerDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "live.com"}

// isValidEmail reports whether a cell is text matching the address pattern.
// Null and non-text cells are invalid.
func isValidEmail(v any) bool {
	s, ok := v.(string)
	return ok && emailRe.MatchString(s)
}

func isConsumerEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.ToLower(s)
	for _, d := range consumerDomains {
		if strings.Contains(s, d) {
			return true
		}
	}
	return false
}

// AnalyzeEmailValidity classifies the non-null emails of a contacts dataset.
func AnalyzeEmailValidity(contacts *schema.Dataset) schema.EmailAnalysis {
	if contacts.IsEmpty() {
		return schema.EmailAnalysis{Status: schema.StatusNoData}
	}
	col, ok := resolve.Column(contacts.Columns, resolve.Email)
	if !ok {
		return schema.EmailAnalysis{Status: schema.StatusColumnMissing}
	}

	var res schema.EmailAnalysis
	for _, row := range contacts.Rows {
		v := row[col]
		if schema.IsNull(v) {
			continue
		}
		res.Total++
		if isValidEmail(v) {
			res.Valid++
		}
		if isConsumerEmail(v) {
			res.B2CCount++
		}
	}
	res.Invalid = res.Total - res.Valid
	res.ValidPct = schema.Pct(res.Valid, res.Total)
	res.B2CPct = schema.Pct(res.B2CCount, res.Total)
	res.Status = schema.StatusOK
	return res
}
