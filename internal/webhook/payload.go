// internal/webhook/payload.go
package webhook

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "hr-service-agent/internal/common/errors"
	"hr-service-agent/internal/pipeline"
)

// payloadSchema accepts both service-desk webhook shapes: the current one
// (id/display_id/subject/requester) and the legacy flat one
// (ticket_id/issue_description/user_email/requester_name). Extra fields
// are ignored, but some form of ticket identifier must be present.
const payloadSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "integer"},
		"display_id": {"type": "string"},
		"subject": {"type": "string"},
		"requester": {
			"type": "object",
			"properties": {
				"id": {"type": "integer"},
				"email": {"type": "string"},
				"label": {"type": "string"},
				"first_name": {"type": "string"},
				"last_name": {"type": "string"}
			}
		},
		"ticket_id": {"type": "string"},
		"issue_description": {"type": "string"},
		"user_email": {"type": "string"},
		"requester_name": {"type": "string"}
	},
	"anyOf": [
		{"required": ["id"]},
		{"required": ["display_id"]},
		{"required": ["ticket_id"]}
	]
}`

var schema = gojsonschema.NewStringLoader(payloadSchema)

// ValidatePayload checks a raw webhook body against the schema.
func ValidatePayload(body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewPayloadInvalidError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return apperrors.NewPayloadInvalidError(strings.Join(msgs, "; "))
	}
	return nil
}

// Requester is the nested requester object on current-shape payloads.
type Requester struct {
	ID        int    `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	Label     string `json:"label,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Payload is the union of both accepted webhook shapes.
type Payload struct {
	ID        int        `json:"id,omitempty"`
	DisplayID string     `json:"display_id,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	Requester *Requester `json:"requester,omitempty"`

	// Legacy flat fields.
	TicketID         string `json:"ticket_id,omitempty"`
	IssueDescription string `json:"issue_description,omitempty"`
	UserEmail        string `json:"user_email,omitempty"`
	RequesterName    string `json:"requester_name,omitempty"`
}

const (
	defaultEmail = "unknown@company.com"
	defaultName  = "Employee"
)

// TicketRef returns the best available ticket identifier.
func (p Payload) TicketRef() string {
	if p.DisplayID != "" {
		return p.DisplayID
	}
	if p.TicketID != "" {
		return p.TicketID
	}
	return fmt.Sprintf("%d", p.ID)
}

// Normalize folds either payload shape into one pipeline ticket, filling
// in safe defaults for anything the sender omitted.
func (p Payload) Normalize() pipeline.Ticket {
	text := p.Subject
	if text == "" {
		text = p.IssueDescription
	}

	email := defaultEmail
	name := defaultName
	if p.Requester != nil {
		if p.Requester.Email != "" {
			email = p.Requester.Email
		}
		if p.Requester.Label != "" {
			name = p.Requester.Label
		} else if p.Requester.FirstName != "" || p.Requester.LastName != "" {
			name = strings.TrimSpace(p.Requester.FirstName + " " + p.Requester.LastName)
		}
	} else {
		if p.UserEmail != "" {
			email = p.UserEmail
		}
		if p.RequesterName != "" {
			name = p.RequesterName
		} else if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	return pipeline.Ticket{
		ID:             p.TicketRef(),
		Text:           text,
		RequesterEmail: email,
		RequesterName:  name,
	}
}
