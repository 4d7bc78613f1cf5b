// Package resolve infers semantically typed columns from loosely named CRM headers.
//
// Each Role maps to a Rule: an ordered list of matchers. Resolution tries the
// matchers in priority order and, for each, scans the headers in declaration
// order; the first header accepted wins. Headers are compared lowercased.
package resolve

import (
	"slices"
	"strings"
)

// Role is a semantic column tag.
type Role string

// Roles resolved by the analyzers. The same concept can appear under several
// roles because each analyzer context uses its own candidate set.
const (
	HealthKey            Role = "health_key"              // id- or email-like column for duplicate checks
	Email                Role = "email"                   // contact email
	ActivityDate         Role = "date_activity"           // last activity / last contact date
	OrphanCompanyRef     Role = "orphan_company_ref"      // any company column on contacts
	GhostCompanyID       Role = "ghost_company_id"        // company primary key, exact names only
	GhostContactRef      Role = "ghost_contact_ref"       // contact -> company reference, exact names only
	JoinCompanyRef       Role = "join_company_ref"        // contact -> company reference for the aggregator
	JoinCompanyID        Role = "join_company_id"         // company primary key for the aggregator
	JoinContactID        Role = "join_contact_id"         // contact primary key for the aggregator
	JoinTicketContactRef Role = "join_ticket_contact_ref" // ticket -> contact reference
	TicketCreated        Role = "ticket_created"
	TicketStatus         Role = "status"
	TicketClosed         Role = "ticket_closed"
	PerfTicketCreated    Role = "perf_ticket_created"
	PerfTicketStatus     Role = "perf_ticket_status"
	PerfTicketClosed     Role = "perf_ticket_closed"
	TicketSLA            Role = "ticket_sla"
	TicketCSAT           Role = "ticket_csat"
	TicketNPS            Role = "ticket_nps"
	Revenue              Role = "revenue"
	Industry             Role = "industry"
	CompanyName          Role = "company_name"
)

// Matcher accepts or rejects a lowercased header.
type Matcher struct {
	Desc  string // Human readable form used by the rules listing
	Match func(lower string) bool
}

// Rule is an ordered list of matchers; earlier matchers take priority.
type Rule []Matcher

// Exact matches one header name exactly (case-insensitive).
func Exact(name string) Matcher {
	name = strings.ToLower(name)
	return Matcher{
		Desc:  "= " + name,
		Match: func(lower string) bool { return lower == name },
	}
}

// OneOf matches any of the names exactly, taking whichever header comes first.
func OneOf(names ...string) Matcher {
	lowered := lowerAll(names)
	return Matcher{
		Desc:  "in {" + strings.Join(lowered, ", ") + "}",
		Match: func(lower string) bool { return slices.Contains(lowered, lower) },
	}
}

// ContainsAll matches headers containing every token.
func ContainsAll(tokens ...string) Matcher {
	lowered := lowerAll(tokens)
	return Matcher{
		Desc: "contains " + strings.Join(lowered, " & "),
		Match: func(lower string) bool {
			for _, t := range lowered {
				if !strings.Contains(lower, t) {
					return false
				}
			}
			return true
		},
	}
}

// ContainsAny matches headers containing at least one token.
func ContainsAny(tokens ...string) Matcher {
	lowered := lowerAll(tokens)
	return Matcher{
		Desc: "contains " + strings.Join(lowered, " | "),
		Match: func(lower string) bool {
			for _, t := range lowered {
				if strings.Contains(lower, t) {
					return true
				}
			}
			return false
		},
	}
}

// ExactList expands a fixed candidate list into one Exact matcher per name,
// so list order decides priority rather than header order.
func ExactList(names ...string) Rule {
	rule := make(Rule, len(names))
	for i, n := range names {
		rule[i] = Exact(n)
	}
	return rule
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Rules is the role -> rule table.
var Rules = map[Role]Rule{
	HealthKey:            {ContainsAny("id", "email")},
	Email:                {ContainsAll("email")},
	ActivityDate:         {ContainsAny("last_activity", "last_contact")},
	OrphanCompanyRef:     {ContainsAll("company")},
	GhostCompanyID:       ExactList("id", "company_id", "companyid"),
	GhostContactRef:      ExactList("company_id", "companyid", "company"),
	JoinCompanyRef:       {ContainsAll("company", "id")},
	JoinCompanyID:        append(ExactList("id", "company_id", "companyid"), ContainsAll("id")),
	JoinContactID:        append(ExactList("id", "contact_id", "contactid"), ContainsAll("id")),
	JoinTicketContactRef: {ContainsAll("contact", "id")},
	TicketCreated:        ExactList("created_date", "createdate", "created_at"),
	TicketStatus:         ExactList("status", "state", "ticket_status"),
	TicketClosed:         ExactList("closed_date", "closedate", "resolved_date"),
	PerfTicketCreated:    ExactList("created_date", "createdate", "created_at", "hs_createdate"),
	PerfTicketStatus:     ExactList("status", "state", "ticket_status", "hs_ticket_status"),
	PerfTicketClosed:     ExactList("closed_date", "closedate", "resolved_date", "hs_closed_date"),
	TicketSLA:            ExactList("sla_met", "sla_status", "within_sla", "hs_sla_status"),
	TicketCSAT:           ExactList("csat", "customer_satisfaction", "satisfaction_score", "hs_csat"),
	TicketNPS:            ExactList("nps", "net_promoter_score", "nps_score", "hs_nps"),
	Revenue:              {OneOf("arr", "mrr", "annual_revenue")},
	Industry:             ExactList("industry", "sector", "vertical", "hs_industry"),
	CompanyName:          {ContainsAll("name")},
}

// AllRoles lists the roles in a stable order for display.
var AllRoles = []Role{
	HealthKey, Email, ActivityDate, OrphanCompanyRef,
	GhostCompanyID, GhostContactRef,
	JoinCompanyRef, JoinCompanyID, JoinContactID, JoinTicketContactRef,
	TicketCreated, TicketStatus, TicketClosed,
	PerfTicketCreated, PerfTicketStatus, PerfTicketClosed,
	TicketSLA, TicketCSAT, TicketNPS,
	Revenue, Industry, CompanyName,
}

// Column resolves a role against headers. It returns false when nothing matches
// or the role is unknown.
func Column(columns []string, role Role) (string, bool) {
	rule, ok := Rules[role]
	if !ok {
		return "", false
	}
	return Apply(columns, rule)
}

// Apply resolves an arbitrary rule against headers.
func Apply(columns []string, rule Rule) (string, bool) {
	lowered := lowerAll(columns)
	for _, m := range rule {
		for i, l := range lowered {
			if m.Match(l) {
				return columns[i], true
			}
		}
	}
	return "", false
}

// Candidates returns every role-matching header in resolution order,
// without duplicates. Useful to see which headers lost to the chosen one.
func Candidates(columns []string, role Role) []string {
	var out []string
	lowered := lowerAll(columns)
	for _, m := range Rules[role] {
		for i, l := range lowered {
			if m.Match(l) && !slices.Contains(out, columns[i]) {
				out = append(out, columns[i])
			}
		}
	}
	return out
}

// Describe renders a role's rule for display.
func Describe(role Role) string {
	rule := Rules[role]
	parts := make([]string, len(rule))
	for i, m := range rule {
		parts[i] = m.Desc
	}
	return strings.Join(parts, " > ")
}
