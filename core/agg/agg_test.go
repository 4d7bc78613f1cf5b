package agg

import (
	"testing"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactsFixture() *schema.Dataset {
	return schema.NewDataset("contacts", []string{"id", "email", "company_id"}, []schema.Row{
		{"id": "1", "email": "a@acme.com", "company_id": 10},
		{"id": "2", "email": "b@globex.com", "company_id": "20"},
		{"id": "3", "email": "c@nowhere.com", "company_id": nil},
	})
}

func companiesFixture() *schema.Dataset {
	return schema.NewDataset("companies", []string{"id", "name"}, []schema.Row{
		{"id": "10", "name": "Acme"},
		{"id": 20.0, "name": "Globex"},
	})
}

func ticketsFixture() *schema.Dataset {
	return schema.NewDataset("tickets", []string{"id", "contact_id", "status"}, []schema.Row{
		{"id": "t1", "contact_id": "1", "status": "open"},
		{"id": "t2", "contact_id": 1, "status": "closed"},
		{"id": "t3", "contact_id": "2", "status": "new"},
		{"id": nil, "contact_id": "2", "status": "new"},
		{"id": "t5", "contact_id": nil, "status": "new"},
	})
}

func TestAggregate(t *testing.T) {
	contacts := contactsFixture()
	result := Aggregate(contacts, companiesFixture(), ticketsFixture())
	require.NotNil(t, result)

	assert.Equal(t, string(schema.AggregatedKind), result.Name)
	assert.Equal(t, []string{"id", "email", "company_id", "id_company", "name", TicketCountColumn}, result.Columns)
	require.Len(t, result.Rows, 3)

	// Mixed numeric and text keys join on their canonical form.
	assert.Equal(t, "Acme", result.Rows[0]["name"])
	assert.Equal(t, "10", result.Rows[0]["company_id"])
	assert.Equal(t, "Globex", result.Rows[1]["name"])
	assert.Equal(t, 20.0, result.Rows[1]["id_company"])
	assert.Nil(t, result.Rows[2]["name"])

	assert.Equal(t, 2, result.Rows[0][TicketCountColumn])
	assert.Equal(t, 1, result.Rows[1][TicketCountColumn])
	assert.Equal(t, 0, result.Rows[2][TicketCountColumn])

	// The caller's data is untouched.
	assert.Equal(t, 10, contacts.Rows[0]["company_id"])
	assert.Equal(t, []string{"id", "email", "company_id"}, contacts.Columns)
}

func TestAggregateEmptyContacts(t *testing.T) {
	assert.Nil(t, Aggregate(nil, companiesFixture(), ticketsFixture()))
	assert.Nil(t, Aggregate(schema.NewDataset("", []string{"id"}, nil), companiesFixture(), nil))
}

func TestAggregateSkipsUnresolvableJoins(t *testing.T) {
	contacts := schema.NewDataset("contacts", []string{"email", "company"}, []schema.Row{
		{"email": "a@acme.com", "company": "Acme"},
	})
	tickets := schema.NewDataset("tickets", []string{"subject"}, []schema.Row{{"subject": "help"}})

	result := Aggregate(contacts, companiesFixture(), tickets)
	require.NotNil(t, result)
	assert.Equal(t, []string{"email", "company"}, result.Columns)
	assert.Len(t, result.Rows, 1)
}

func TestAggregateOneToMany(t *testing.T) {
	companies := schema.NewDataset("companies", []string{"company_id", "name"}, []schema.Row{
		{"company_id": "10", "name": "Acme EU"},
		{"company_id": "10", "name": "Acme US"},
	})
	result := Aggregate(contactsFixture(), companies, nil)
	require.NotNil(t, result)

	// Same-named key columns are not repeated.
	assert.Equal(t, []string{"id", "email", "company_id", "name"}, result.Columns)
	require.Len(t, result.Rows, 4)
	assert.Equal(t, "Acme EU", result.Rows[0]["name"])
	assert.Equal(t, "Acme US", result.Rows[1]["name"])
	assert.Equal(t, "1", result.Rows[1]["id"])
}

func TestAggregateIdempotent(t *testing.T) {
	contacts, companies, tickets := contactsFixture(), companiesFixture(), ticketsFixture()
	first := Aggregate(contacts, companies, tickets)
	second := Aggregate(contacts, companies, tickets)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestCountTickets(t *testing.T) {
	counts := CountTickets(ticketsFixture(), "contact_id")
	assert.Equal(t, map[string]int{"1": 2, "2": 1}, counts)

	noID := schema.NewDataset("tickets", []string{"contact_id"}, []schema.Row{
		{"contact_id": "7"}, {"contact_id": "7.0"}, {"contact_id": nil},
	})
	assert.Equal(t, map[string]int{"7": 2}, CountTickets(noID, "contact_id"))
}
