// internal/webhook/payload_test.go
package webhook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayloadShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"current shape", `{"id": 42, "display_id": "TKT-1001", "subject": "need payslip", "requester": {"email": "a@b.com"}}`, true},
		{"legacy shape", `{"ticket_id": "TKT-1001", "issue_description": "need payslip", "user_email": "a@b.com"}`, true},
		{"extra fields ignored", `{"display_id": "TKT-1001", "workspace": "hr", "priority": 3}`, true},
		{"no ticket identifier", `{"subject": "need payslip"}`, false},
		{"wrong types", `{"display_id": 1001}`, false},
		{"not an object", `[1, 2, 3]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload([]byte(tt.body))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeCurrentShape(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 42,
		"display_id": "TKT-1001",
		"subject": "I need my payslip for December 2024",
		"requester": {"email": "asha.rao@drreddy.com", "label": "Asha Rao"}
	}`), &p))

	ticket := p.Normalize()
	assert.Equal(t, "TKT-1001", ticket.ID)
	assert.Equal(t, "I need my payslip for December 2024", ticket.Text)
	assert.Equal(t, "asha.rao@drreddy.com", ticket.RequesterEmail)
	assert.Equal(t, "Asha Rao", ticket.RequesterName)
}

func TestNormalizeRequesterNameFromParts(t *testing.T) {
	p := Payload{
		ID:        42,
		Subject:   "leave balance",
		Requester: &Requester{Email: "r@x.com", FirstName: "Ravi", LastName: "K"},
	}

	ticket := p.Normalize()
	assert.Equal(t, "42", ticket.ID, "numeric id is the fallback reference")
	assert.Equal(t, "Ravi K", ticket.RequesterName)
}

func TestNormalizeLegacyShape(t *testing.T) {
	p := Payload{
		TicketID:         "TKT-7",
		IssueDescription: "apply casual leave",
		UserEmail:        "ravi.k@drreddy.com",
	}

	ticket := p.Normalize()
	assert.Equal(t, "TKT-7", ticket.ID)
	assert.Equal(t, "apply casual leave", ticket.Text)
	assert.Equal(t, "ravi.k@drreddy.com", ticket.RequesterEmail)
	assert.Equal(t, "ravi.k", ticket.RequesterName, "name falls back to the email local part")
}

func TestNormalizeDefaults(t *testing.T) {
	p := Payload{TicketID: "TKT-8"}

	ticket := p.Normalize()
	assert.Equal(t, "unknown@company.com", ticket.RequesterEmail)
	assert.Equal(t, "unknown", ticket.RequesterName, "derived from the default email's local part")
	assert.Empty(t, ticket.Text)
}
