package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

// gateOrder is the order in which gates are checked and printed.
var gateOrder = []string{
	string(schema.ContactsKind),
	string(schema.CompaniesKind),
	string(schema.TicketsKind),
	schema.OverallGate,
	schema.PostGate,
}

// ExecuteCheck runs the health gate for CI/CD.
// It audits the configured exports, compares each score with its threshold,
// and exits non-zero if any gate fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, l contract.DatasetLoader) error {
	start := time.Now()

	report, _, err := GetAuditResults(WithSuppressHeader(ctx), cfg, l)
	if err != nil {
		return err
	}
	result := EvaluateGate(report, cfg.Thresholds)
	printCheckResult(os.Stdout, result, time.Since(start))

	if !result.Passed {
		fmt.Printf("%d violation(s) found\n", len(result.Failed))
		os.Exit(1)
	}
	return nil
}

// EvaluateGate compares the per-dataset, overall and post-aggregation scores
// of a report with the thresholds. Gates without a score are skipped; gates
// without a threshold use the default. A gate fails when its score is below
// the threshold.
func EvaluateGate(report schema.AuditReport, thresholds map[string]float64) schema.CheckResult {
	scores := make(map[string]float64)
	for kind, h := range report.Summary.DataQuality {
		scores[string(kind)] = h.Score
	}
	if len(report.Summary.DataQuality) > 0 {
		scores[schema.OverallGate] = report.Overall.OverallScore
	}
	if report.PostScore.Status == schema.StatusOK {
		scores[schema.PostGate] = report.PostScore.Score
	}

	result := schema.CheckResult{
		Passed:     true,
		Scores:     scores,
		Thresholds: make(map[string]float64, len(scores)),
	}
	for _, gate := range gateOrder {
		score, ok := scores[gate]
		if !ok {
			continue
		}
		threshold, ok := thresholds[gate]
		if !ok {
			threshold = schema.DefaultHealthThreshold
		}
		result.Thresholds[gate] = threshold
		if score < threshold {
			result.Passed = false
			result.Failed = append(result.Failed, schema.CheckFailure{Gate: gate, Score: score, Threshold: threshold})
		}
	}
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result schema.CheckResult, duration time.Duration) {
	printCheckHeader(w, result, duration)

	if result.Passed {
		printCheckSuccess(w, result)
	} else {
		printCheckFailure(w, result)
	}
}

// printCheckHeader prints the gates and thresholds that were checked.
func printCheckHeader(w io.Writer, result schema.CheckResult, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Health Check Results:")

	var parts []string
	for _, gate := range gateOrder {
		if threshold, ok := result.Thresholds[gate]; ok {
			parts = append(parts, fmt.Sprintf("%s=%.1f", gate, threshold))
		}
	}
	_, _ = fmt.Fprintf(w, "  %-12s %s\n\n", "Thresholds:", strings.Join(parts, ", "))
	_, _ = fmt.Fprintf(w, "Checked %d gate(s) in %v\n\n", len(result.Thresholds), duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result schema.CheckResult) {
	if len(result.Thresholds) == 0 {
		_, _ = fmt.Fprintf(w, "✅ No gates to check: every dataset was empty\n")
		return
	}
	_, _ = fmt.Fprintf(w, "✅ All gates passed\n\n")
	_, _ = fmt.Fprintln(w, "Scores observed:")
	for _, gate := range gateOrder {
		if _, ok := result.Thresholds[gate]; ok {
			score := result.Scores[gate]
			_, _ = fmt.Fprintf(w, "  %s: %.1f (%s)\n", gate, score, schema.GetPlainLabel(score))
		}
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "❌ Health check failed: %d of %d gate(s) below threshold\n\n", len(result.Failed), len(result.Thresholds))
	for _, f := range result.Failed {
		_, _ = fmt.Fprintf(w, "  - %s (score: %.1f < threshold: %.1f)\n", f.Gate, f.Score, f.Threshold)
	}
	_, _ = fmt.Fprintln(w)
}
