// Package core has the analyzers, the audit orchestrator and the command entry points.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/internal/loader"
	"github.com/StephanieJJ/jupiter-audit/internal/outwriter"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/fatih/color"
)

// ExecutorFunc defines the function signature for the dataset-reading commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, l contract.DatasetLoader) error

// ErrNoInputs is returned when no export path is configured.
var ErrNoInputs = errors.New("at least one of --contacts, --companies or --tickets is required")

var headerColor = color.New(color.FgCyan, color.Bold)

// ExecuteAudit loads the configured exports, runs every analyzer and prints the report.
// It serves as the main entry point for the 'audit' command.
func ExecuteAudit(ctx context.Context, cfg *contract.Config, l contract.DatasetLoader) error {
	report, duration, err := GetAuditResults(ctx, cfg, l)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg, duration)
}

// GetAuditResults loads the configured exports and returns the full report.
func GetAuditResults(ctx context.Context, cfg *contract.Config, l contract.DatasetLoader) (schema.AuditReport, time.Duration, error) {
	start := time.Now()
	if !cfg.HasInputs() {
		return schema.AuditReport{}, 0, ErrNoInputs
	}
	logAuditHeader(ctx, cfg)

	exports, err := loader.LoadExports(ctx, l, cfg.Paths, cfg.MaxRows)
	if err != nil {
		return schema.AuditReport{}, 0, err
	}
	in, sources := inputsFromExports(exports)

	opts := Options{
		Now:           cfg.Now,
		ColdDays:      cfg.ColdDays,
		CriticalHours: cfg.CriticalHours,
		TopIndustries: cfg.TopIndustries,
		Rules:         cfg.Rules,
	}
	report := RunAudit(in, opts, NewResultCache())
	report.Sources = sources
	return report, time.Since(start), nil
}

// ExecuteHealth scores one export on its own and prints the result.
func ExecuteHealth(ctx context.Context, cfg *contract.Config, l contract.DatasetLoader, path string) error {
	h, duration, err := GetHealthResults(ctx, cfg, l, path)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHealth(filepath.Base(path), h, cfg, duration)
}

// GetHealthResults loads one export and returns its health score.
func GetHealthResults(ctx context.Context, cfg *contract.Config, l contract.DatasetLoader, path string) (schema.HealthScore, time.Duration, error) {
	start := time.Now()
	ds, _, err := l.Load(ctx, path, cfg.MaxRows)
	if err != nil {
		return schema.HealthScore{}, 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ScoreHealth(ds), time.Since(start), nil
}

// ExecuteRules prints the penalty, resolver and recommendation trigger tables.
// This is a static display that does not read any export.
func ExecuteRules(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteRules(BuildRulesModel(cfg.Rules), cfg)
}

// BuildRulesModel collects the rule tables used by the analyzers and recommendations.
func BuildRulesModel(th schema.RuleThresholds) schema.RulesRenderModel {
	model := schema.RulesRenderModel{
		Penalties:  schema.HealthPenalties,
		Resolver:   make([]schema.ResolverRule, 0, len(resolve.AllRoles)),
		Thresholds: th,
	}
	for _, role := range resolve.AllRoles {
		model.Resolver = append(model.Resolver, schema.ResolverRule{Role: string(role), Matchers: resolve.Describe(role)})
	}
	for _, rules := range [][]RecommendationRule{DataRules, SignalRules} {
		for _, r := range rules {
			model.Triggers = append(model.Triggers, schema.TriggerRule{
				Name:     r.Name,
				Priority: r.Priority,
				Category: r.Category,
				Trigger:  r.Trigger(th),
			})
		}
	}
	return model
}

// inputsFromExports splits loaded exports into analyzer inputs and provenance.
func inputsFromExports(exports map[schema.DatasetKind]loader.Export) (Inputs, map[schema.DatasetKind]schema.SourceInfo) {
	var in Inputs
	sources := make(map[schema.DatasetKind]schema.SourceInfo, len(exports))
	for kind, e := range exports {
		sources[kind] = e.Source
		switch kind {
		case schema.ContactsKind:
			in.Contacts = e.Dataset
		case schema.CompaniesKind:
			in.Companies = e.Dataset
		case schema.TicketsKind:
			in.Tickets = e.Dataset
		}
	}
	return in, sources
}

// logAuditHeader prints the inputs and evaluation instant to stderr.
func logAuditHeader(ctx context.Context, cfg *contract.Config) {
	if shouldSuppressHeader(ctx) {
		return
	}
	_, _ = headerColor.Fprintf(os.Stderr, "🩺 CRM data audit\n")
	for _, kind := range schema.SortedKinds(cfg.Paths) {
		_, _ = fmt.Fprintf(os.Stderr, "  %-10s %s\n", kind.Title()+":", cfg.Paths[kind])
	}
	_, _ = fmt.Fprintf(os.Stderr, "  %-10s %s\n", "Now:", cfg.Now.Format(contract.DateTimeFormat))
	if cfg.MaxRows > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "  %-10s %d\n", "Max rows:", cfg.MaxRows)
	}
}
