package core

import (
	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

// AnalyzeOrphanContacts counts contacts whose company reference is null or the empty string.
func AnalyzeOrphanContacts(contacts *schema.Dataset) schema.OrphanAnalysis {
	if contacts.IsEmpty() {
		return schema.OrphanAnalysis{Status: schema.StatusNoData}
	}
	total := contacts.Len()
	col, ok := resolve.Column(contacts.Columns, resolve.OrphanCompanyRef)
	if !ok {
		return schema.OrphanAnalysis{
			Total:           total,
			NonOrphanCount:  total,
			NoCompanyColumn: true,
			Status:          schema.StatusColumnMissing,
		}
	}

	orphans := 0
	for _, row := range contacts.Rows {
		if v := row[col]; schema.IsNull(v) || schema.IsEmptyString(v) {
			orphans++
		}
	}
	return schema.OrphanAnalysis{
		OrphanCount:    orphans,
		OrphanPct:      schema.Pct(orphans, total),
		NonOrphanCount: total - orphans,
		Total:          total,
		CompanyColumn:  col,
		Status:         schema.StatusOK,
	}
}

// AnalyzeGhostCompanies counts companies that no contact references.
// With no contacts at all, every company is a ghost.
func AnalyzeGhostCompanies(companies, contacts *schema.Dataset) schema.GhostAnalysis {
	if companies.IsEmpty() {
		return schema.GhostAnalysis{Status: schema.StatusNoData}
	}
	total := companies.Len()
	if contacts.IsEmpty() {
		return schema.GhostAnalysis{GhostCount: total, GhostPct: 100, Total: total, Status: schema.StatusOK}
	}

	idCol, okID := resolve.Column(companies.Columns, resolve.GhostCompanyID)
	refCol, okRef := resolve.Column(contacts.Columns, resolve.GhostContactRef)
	if !okID || !okRef {
		return schema.GhostAnalysis{Total: total, NoIDColumns: true, Status: schema.StatusColumnMissing}
	}

	referenced := make(map[string]struct{})
	for _, row := range contacts.Rows {
		if key, ok := schema.AsKey(row[refCol]); ok {
			referenced[key] = struct{}{}
		}
	}

	ghosts := 0
	for _, row := range companies.Rows {
		key, ok := schema.AsKey(row[idCol])
		if !ok {
			ghosts++
			continue
		}
		if _, found := referenced[key]; !found {
			ghosts++
		}
	}
	return schema.GhostAnalysis{
		GhostCount: ghosts,
		GhostPct:   schema.Pct(ghosts, total),
		Total:      total,
		Status:     schema.StatusOK,
	}
}
