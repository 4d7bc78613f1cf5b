package core

import (
	"testing"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputsByKind(t *testing.T) {
	in := Inputs{Contacts: scenarioContacts()}
	byKind := in.ByKind()

	assert.Len(t, byKind, 1)
	assert.Contains(t, byKind, schema.ContactsKind)
	assert.Empty(t, Inputs{}.ByKind())
}

func TestAudit(t *testing.T) {
	summary := Audit(scenarioInputs(), schema.DefaultRuleThresholds())

	assert.Equal(t, 4, summary.TotalContacts)
	assert.Equal(t, 3, summary.TotalCompanies)
	assert.Equal(t, 5, summary.TotalTickets)
	assert.Equal(t, map[schema.DatasetKind]int{
		schema.ContactsKind:  1,
		schema.CompaniesKind: 0,
		schema.TicketsKind:   0,
	}, summary.Duplicates)
	assert.Equal(t, map[schema.DatasetKind]int{
		schema.ContactsKind:  6,
		schema.CompaniesKind: 0,
		schema.TicketsKind:   3,
	}, summary.MissingData)

	require.Len(t, summary.DataQuality, 3)
	assert.InDelta(t, 70.0, summary.DataQuality[schema.ContactsKind].Score, 1e-9)
	assert.InDelta(t, 100.0, summary.DataQuality[schema.CompaniesKind].Score, 1e-9)
	assert.InDelta(t, 76.0, summary.DataQuality[schema.TicketsKind].Score, 1e-9)

	var issues []string
	for _, r := range summary.Recommendations {
		issues = append(issues, r.Issue)
	}
	assert.Equal(t, []string{
		"1 duplicate contacts found",
		"Significant missing data in contacts",
		"Significant missing data in tickets",
	}, issues)
}

func TestAuditSkipsUnresolvedDuplicateColumn(t *testing.T) {
	companies := schema.NewDataset("", []string{"id", "industry"}, []schema.Row{{"id": "1", "industry": "Tech"}})

	summary := Audit(Inputs{Companies: companies}, schema.DefaultRuleThresholds())

	assert.NotContains(t, summary.Duplicates, schema.CompaniesKind, "companies without a name column are not checked")
	assert.Equal(t, 0, summary.MissingData[schema.CompaniesKind])
}

func TestRunAuditScenario(t *testing.T) {
	opts := DefaultOptions(auditNow)
	opts.RunID = "run-1"
	cache := NewResultCache()

	report := RunAudit(scenarioInputs(), opts, cache)

	assert.Equal(t, "run-1", report.RunID)
	assert.True(t, auditNow.Equal(report.EvaluatedAt))
	assert.InDelta(t, 82.0, report.Overall.OverallScore, 1e-9)

	assert.Equal(t, 1, report.Orphans.OrphanCount)
	assert.Equal(t, 1, report.Ghosts.GhostCount)
	assert.Equal(t, 1, report.Email.Invalid)
	assert.Equal(t, 2, report.Cold.ColdCount)
	assert.InDelta(t, 50.0, report.Cold.ColdPct, 1e-9)
	assert.Equal(t, 2, report.Critical.CriticalCount)
	assert.Equal(t, 3, report.Critical.TotalOpen)
	assert.Equal(t, 1, report.Churn.AtRiskCount)
	assert.InDelta(t, 1000.0, report.Churn.ARRAtRisk, 1e-9)
	assert.Equal(t, 2, report.Tickets.ClosedCount)
	require.NotEmpty(t, report.Industries.TopIndustries)
	assert.Equal(t, schema.IndustryCount{Name: "Tech", Count: 2, Percentage: 66.7}, report.Industries.TopIndustries[0])
	assert.Len(t, report.Complete, 3)

	assert.Equal(t, schema.StatusOK, report.PostScore.Status)
	assert.InDelta(t, report.PostScore.Score-report.Improvement.PreAvg, report.Improvement.Improvement, 0.1)
	assert.InDelta(t, 82.0, report.Improvement.PreAvg, 1e-9)

	// 3 data recommendations followed by 6 signal recommendations.
	require.Len(t, report.Summary.Recommendations, 9)
	assert.Equal(t, "1 duplicate contacts found", report.Summary.Recommendations[0].Issue)
	assert.Equal(t, "1 contact at high churn risk", report.Summary.Recommendations[8].Issue)

	for _, name := range []string{"health:contacts", "health:aggregated", "churn", "completeness:tickets"} {
		_, ok := cache.Get(name)
		assert.True(t, ok, "%s is cached", name)
	}
}

func TestRunAuditDefaultsRunIDAndNow(t *testing.T) {
	report := RunAudit(Inputs{}, Options{}, nil)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.EvaluatedAt.IsZero())
	assert.NotEqual(t, report.RunID, RunAudit(Inputs{}, Options{}, nil).RunID)
}

func TestRunAuditSignalScenarios(t *testing.T) {
	tests := []struct {
		name    string
		in      Inputs
		cold    int
		b2c     int
		orphans int
		ghosts  schema.GhostAnalysis
	}{
		{
			name: "stale consumer contact linked to its company",
			in: Inputs{
				Contacts: schema.NewDataset("contacts", []string{"id", "email", "company_id", "last_activity"}, []schema.Row{
					{"id": 1, "email": "a@gmail.com", "company_id": "10", "last_activity": "2020-01-01"},
				}),
				Companies: schema.NewDataset("companies", []string{"id", "name"}, []schema.Row{
					{"id": "10", "name": "Acme"},
				}),
				Tickets: schema.NewDataset("tickets", nil, nil),
			},
			cold:   1,
			b2c:    1,
			ghosts: schema.GhostAnalysis{GhostCount: 0, GhostPct: 0, Total: 1, Status: schema.StatusOK},
		},
		{
			name: "companies without contacts are all ghosts",
			in: Inputs{
				Companies: schema.NewDataset("companies", []string{"id"}, []schema.Row{{"id": "1"}, {"id": "2"}}),
			},
			ghosts: schema.GhostAnalysis{GhostCount: 2, GhostPct: 100, Total: 2, Status: schema.StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := RunAudit(tt.in, DefaultOptions(auditNow), nil)

			assert.Equal(t, tt.cold, report.Cold.ColdCount)
			assert.Equal(t, tt.b2c, report.Email.B2CCount)
			assert.Equal(t, tt.orphans, report.Orphans.OrphanCount)
			assert.Equal(t, tt.ghosts, report.Ghosts)
		})
	}
}

func TestRunAuditEmpty(t *testing.T) {
	report := RunAudit(Inputs{}, DefaultOptions(auditNow), nil)

	assert.Zero(t, report.Summary.TotalContacts)
	assert.Empty(t, report.Summary.DataQuality)
	require.NotNil(t, report.Summary.Recommendations)
	assert.Empty(t, report.Summary.Recommendations)

	assert.Equal(t, schema.StatusNoData, report.PostScore.Status)
	assert.Equal(t, schema.QualityImprovement{}, report.Improvement)
	assert.Zero(t, report.Overall.OverallScore)
	assert.Equal(t, schema.StatusNoData, report.Orphans.Status)
	assert.Equal(t, schema.StatusNoData, report.Ghosts.Status)
	assert.Equal(t, schema.StatusNoData, report.Email.Status)
	assert.Equal(t, schema.StatusNoData, report.Cold.Status)
	assert.Equal(t, schema.StatusNoData, report.Critical.Status)
	assert.Equal(t, schema.StatusNoData, report.Churn.Status)
	assert.Equal(t, schema.StatusNoData, report.Tickets.Status)
	assert.Equal(t, schema.StatusNoData, report.Industries.Status)
	assert.Empty(t, report.Complete)
}

func TestRunAuditDoesNotMutateInputs(t *testing.T) {
	in := scenarioInputs()
	before := in.Contacts.Clone()

	RunAudit(in, DefaultOptions(auditNow), nil)

	assert.Equal(t, before, in.Contacts)
}
