package core

import (
	"time"

	"github.com/StephanieJJ/jupiter-audit/schema"
)

// auditNow is the evaluation instant of the scenario fixtures.
var auditNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// scenarioContacts has one duplicate email, one orphan, one invalid email
// and one contact at high churn risk.
func scenarioContacts() *schema.Dataset {
	return schema.NewDataset("contacts",
		[]string{"id", "email", "last_activity", "phone", "company_id", "arr"},
		[]schema.Row{
			{"id": "1", "email": "a@acme.com", "last_activity": "2023-12-25", "phone": "555-0001", "company_id": "10", "arr": "500"},
			{"id": nil, "email": nil, "last_activity": "2023-09-01", "phone": nil, "company_id": nil, "arr": "1000"},
			{"id": "3", "email": "bad", "last_activity": "2023-10-15", "phone": "555-0003", "company_id": "20", "arr": "200"},
			{"id": "4", "email": "a@acme.com", "last_activity": nil, "phone": "555-0004", "company_id": "10", "arr": nil},
		})
}

func scenarioCompanies() *schema.Dataset {
	return schema.NewDataset("companies",
		[]string{"id", "name", "industry"},
		[]schema.Row{
			{"id": "10", "name": "Acme", "industry": "Tech"},
			{"id": "20", "name": "Globex", "industry": "Retail"},
			{"id": "30", "name": "Initech", "industry": "Tech"},
		})
}

func scenarioTickets() *schema.Dataset {
	return schema.NewDataset("tickets",
		[]string{"id", "contact_id", "status", "created_date", "closed_date"},
		[]schema.Row{
			{"id": "t1", "contact_id": "1", "status": "Open", "created_date": "2023-12-01", "closed_date": nil},
			{"id": "t2", "contact_id": "1", "status": "new", "created_date": "2023-12-31", "closed_date": nil},
			{"id": "t3", "contact_id": "3", "status": "closed", "created_date": "2023-12-01 10:00:00", "closed_date": "2023-12-02 10:00:00"},
			{"id": "t4", "contact_id": "4", "status": " Pending ", "created_date": "2023-11-01", "closed_date": nil},
			{"id": "t5", "contact_id": "3", "status": "resolved", "created_date": "2023-12-10", "closed_date": "2023-12-12"},
		})
}

func scenarioInputs() Inputs {
	return Inputs{
		Contacts:  scenarioContacts(),
		Companies: scenarioCompanies(),
		Tickets:   scenarioTickets(),
	}
}
