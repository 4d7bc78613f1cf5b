// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a full audit report using the configured output format.
func (ow *OutWriter) WriteReport(report schema.AuditReport, cfg *contract.Config, duration time.Duration) error {
	return WriteReport(report, cfg, duration)
}

// WriteHealth prints one dataset health score using the configured output format.
func (ow *OutWriter) WriteHealth(name string, h schema.HealthScore, cfg *contract.Config, duration time.Duration) error {
	return WriteHealth(name, h, cfg, duration)
}

// WriteRules prints the rule tables using the configured output format.
func (ow *OutWriter) WriteRules(model schema.RulesRenderModel, cfg *contract.Config) error {
	return WriteRules(model, cfg)
}
