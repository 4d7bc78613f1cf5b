package core

import (
	"context"
	"errors"
	"testing"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/internal/loader"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func auditConfig(paths map[schema.DatasetKind]string) *contract.Config {
	return &contract.Config{
		Paths:         paths,
		Now:           auditNow,
		ColdDays:      schema.DefaultColdDays,
		CriticalHours: schema.DefaultCriticalHours,
		TopIndustries: schema.DefaultTopIndustries,
		Precision:     contract.DefaultPrecision,
		Output:        schema.TextOut,
		Rules:         schema.DefaultRuleThresholds(),
	}
}

func TestGetAuditResults(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := auditConfig(map[schema.DatasetKind]string{
		schema.ContactsKind: "contacts.csv",
		schema.TicketsKind:  "tickets.xlsx",
	})
	cfg.MaxRows = 100

	l := &loader.MockDatasetLoader{}
	l.On("Load", mock.Anything, "contacts.csv", 100).
		Return(scenarioContacts(), schema.SourceInfo{Path: "contacts.csv", Rows: 4, OriginalRows: 4}, nil)
	l.On("Load", mock.Anything, "tickets.xlsx", 100).
		Return(scenarioTickets(), schema.SourceInfo{Path: "tickets.xlsx", Rows: 5, OriginalRows: 5}, nil)

	report, duration, err := GetAuditResults(ctx, cfg, l)
	require.NoError(t, err)
	l.AssertExpectations(t)

	assert.GreaterOrEqual(t, int64(duration), int64(0))
	assert.True(t, auditNow.Equal(report.EvaluatedAt))
	assert.Equal(t, 4, report.Summary.TotalContacts)
	assert.Zero(t, report.Summary.TotalCompanies)
	assert.Equal(t, 5, report.Summary.TotalTickets)
	assert.Equal(t, schema.StatusNoData, report.Ghosts.Status)
	assert.Equal(t, map[schema.DatasetKind]schema.SourceInfo{
		schema.ContactsKind: {Path: "contacts.csv", Rows: 4, OriginalRows: 4},
		schema.TicketsKind:  {Path: "tickets.xlsx", Rows: 5, OriginalRows: 5},
	}, report.Sources)
}

func TestGetAuditResultsErrors(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	_, _, err := GetAuditResults(ctx, auditConfig(nil), &loader.MockDatasetLoader{})
	assert.ErrorIs(t, err, ErrNoInputs)

	l := &loader.MockDatasetLoader{}
	l.On("Load", mock.Anything, "broken.csv", 0).Return(nil, schema.SourceInfo{}, errors.New("boom"))
	_, _, err = GetAuditResults(ctx, auditConfig(map[schema.DatasetKind]string{schema.CompaniesKind: "broken.csv"}), l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "companies")
	assert.Contains(t, err.Error(), "boom")
}

func TestGetHealthResults(t *testing.T) {
	l := &loader.MockDatasetLoader{}
	l.On("Load", mock.Anything, "contacts.csv", 0).Return(tenByFive(5), schema.SourceInfo{}, nil)
	l.On("Load", mock.Anything, "missing.csv", 0).Return(nil, schema.SourceInfo{}, errors.New("no such file"))

	h, _, err := GetHealthResults(context.Background(), auditConfig(nil), l, "contacts.csv")
	require.NoError(t, err)
	assert.InDelta(t, 80.0, h.Score, 1e-9)

	_, _, err = GetHealthResults(context.Background(), auditConfig(nil), l, "missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load missing.csv")
}

func TestBuildRulesModel(t *testing.T) {
	th := schema.DefaultRuleThresholds()
	th.CriticalMin = 3

	model := BuildRulesModel(th)

	assert.Equal(t, schema.HealthPenalties, model.Penalties)
	assert.Equal(t, th, model.Thresholds)
	require.Len(t, model.Resolver, len(resolve.AllRoles))
	assert.Equal(t, string(resolve.HealthKey), model.Resolver[0].Role)
	assert.NotEmpty(t, model.Resolver[0].Matchers)

	require.Len(t, model.Triggers, len(DataRules)+len(SignalRules))
	assert.Equal(t, "duplicates", model.Triggers[0].Name)
	for _, tr := range model.Triggers {
		if tr.Name == "critical_tickets" {
			assert.Equal(t, "critical tickets >= 3", tr.Trigger)
			assert.Equal(t, schema.PriorityHigh, tr.Priority)
		}
	}
}

func TestInputsFromExports(t *testing.T) {
	contacts := scenarioContacts()
	exports := map[schema.DatasetKind]loader.Export{
		schema.ContactsKind: {Dataset: contacts, Source: schema.SourceInfo{Path: "c.csv", Rows: 4}},
	}

	in, sources := inputsFromExports(exports)

	assert.Same(t, contacts, in.Contacts)
	assert.Nil(t, in.Companies)
	assert.Nil(t, in.Tickets)
	assert.Equal(t, "c.csv", sources[schema.ContactsKind].Path)
}
