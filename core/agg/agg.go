// Package agg builds the denormalized view of contacts, companies and ticket counts.
package agg

import (
	"maps"
	"slices"

	"github.com/StephanieJJ/jupiter-audit/core/resolve"
	"github.com/StephanieJJ/jupiter-audit/schema"
)

// TicketCountColumn is the per-contact ticket count added by Aggregate.
const TicketCountColumn = "ticket_count"

// companySuffix is appended to company columns whose name already exists on contacts.
const companySuffix = "_company"

// Aggregate left-joins contacts with companies and then with per-contact ticket
// counts. Join keys are compared in their canonical string form. A join whose
// key columns do not resolve is skipped. It returns nil when contacts are empty.
// Inputs are never modified.
func Aggregate(contacts, companies, tickets *schema.Dataset) *schema.Dataset {
	if contacts.IsEmpty() {
		return nil
	}
	result := contacts.Clone()
	result.Name = string(schema.AggregatedKind)

	if !companies.IsEmpty() {
		result = joinCompanies(result, companies)
	}
	if !tickets.IsEmpty() {
		joinTicketCounts(result, contacts.Columns, tickets)
	}
	return result
}

// joinCompanies merges company columns onto contact rows. A contact matching
// several companies yields one row per match; a contact with no match keeps
// null company fields.
func joinCompanies(contacts, companies *schema.Dataset) *schema.Dataset {
	refCol, okRef := resolve.Column(contacts.Columns, resolve.JoinCompanyRef)
	idCol, okID := resolve.Column(companies.Columns, resolve.JoinCompanyID)
	if !okRef || !okID {
		return contacts
	}
	canonicalize(contacts, refCol)

	index := make(map[string][]schema.Row)
	for _, row := range companies.Rows {
		if key, ok := schema.AsKey(row[idCol]); ok {
			index[key] = append(index[key], row)
		}
	}

	// Output name for each company column. A key column sharing the contact
	// key's name would only repeat the same value, so it is dropped.
	columns := slices.Clone(contacts.Columns)
	rename := make(map[string]string, companies.Width())
	for _, c := range companies.Columns {
		if c == idCol && c == refCol {
			continue
		}
		name := c
		for slices.Contains(columns, name) {
			name += companySuffix
		}
		rename[c] = name
		columns = append(columns, name)
	}

	out := &schema.Dataset{Name: contacts.Name, Columns: columns, Rows: make([]schema.Row, 0, contacts.Len())}
	for _, row := range contacts.Rows {
		key, ok := schema.AsKey(row[refCol])
		matches := index[key]
		if !ok || len(matches) == 0 {
			out.Rows = append(out.Rows, row)
			continue
		}
		for _, company := range matches {
			merged := maps.Clone(row)
			for src, dst := range rename {
				merged[dst] = company[src]
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

// joinTicketCounts adds TicketCountColumn to every row in place. The contact
// id is resolved against the original contact columns.
func joinTicketCounts(result *schema.Dataset, contactColumns []string, tickets *schema.Dataset) {
	idCol, okID := resolve.Column(contactColumns, resolve.JoinContactID)
	refCol, okRef := resolve.Column(tickets.Columns, resolve.JoinTicketContactRef)
	if !okID || !okRef {
		return
	}

	counts := CountTickets(tickets, refCol)
	canonicalize(result, idCol)
	if !result.HasColumn(TicketCountColumn) {
		result.Columns = append(result.Columns, TicketCountColumn)
	}
	for _, row := range result.Rows {
		n := 0
		if key, ok := schema.AsKey(row[idCol]); ok {
			n = counts[key]
		}
		row[TicketCountColumn] = n
	}
}

// CountTickets groups tickets by the canonical value of refCol. Null references
// are skipped. When the tickets carry an "id" column only rows with a non-null
// id are counted.
func CountTickets(tickets *schema.Dataset, refCol string) map[string]int {
	hasID := tickets.HasColumn("id")
	counts := make(map[string]int)
	for _, row := range tickets.Rows {
		key, ok := schema.AsKey(row[refCol])
		if !ok {
			continue
		}
		if hasID && schema.IsNull(row["id"]) {
			continue
		}
		counts[key]++
	}
	return counts
}

// canonicalize rewrites a key column to its canonical string form so that
// numeric and text ids compare equal. Null cells stay null.
func canonicalize(ds *schema.Dataset, col string) {
	for _, row := range ds.Rows {
		if key, ok := schema.AsKey(row[col]); ok {
			row[col] = key
		}
	}
}
