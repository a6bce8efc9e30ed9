// internal/actions/executor.go
package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hr-service-agent/internal/common/logger"
	"hr-service-agent/internal/document"
	"hr-service-agent/internal/hris"
	"hr-service-agent/internal/intent"
)

// Executor fulfils classified requests against the employee record store
// and the document renderer. Handlers never fail a ticket over a missing
// entity; every absent value has a documented default.
type Executor struct {
	store      *hris.Store
	renderer   document.Renderer
	company    string
	helpdesk   string
	fiscalFrom string
	baseURL    string
	log        logger.Logger
	now        func() time.Time
}

// NewExecutor wires the executor. baseURL is the externally reachable
// prefix for generated-document download links.
func NewExecutor(store *hris.Store, renderer document.Renderer, company, helpdesk, fiscalFrom, baseURL string, log logger.Logger) *Executor {
	return &Executor{
		store:      store,
		renderer:   renderer,
		company:    company,
		helpdesk:   helpdesk,
		fiscalFrom: fiscalFrom,
		baseURL:    baseURL,
		log:        log,
		now:        time.Now,
	}
}

// Execute dispatches one classified request to its handler and returns the
// outcome. The intent set is closed; anything outside it, including intents
// the catalog recognizes but no workflow automates yet, is routed to manual
// review.
func (e *Executor) Execute(ctx context.Context, name intent.Name, entities map[string]string, requesterEmail, requesterName, ticketID string) Outcome {
	employee := e.store.GetOrCreate(requesterEmail, requesterName)

	switch name {
	case intent.PayslipDownload:
		return e.handlePayslip(ctx, employee, entities, ticketID)
	case intent.PayStatement:
		return e.handlePayStatement(ctx, employee, entities, ticketID)
	case intent.ApplyLeave:
		return e.handleLeaveApplication(employee, entities, ticketID)
	case intent.LeaveBalance:
		return e.handleLeaveBalance(employee, entities)
	case intent.EmploymentLetter:
		return e.handleEmploymentLetter(ctx, employee, entities, ticketID)
	case intent.SalaryCertificate:
		return e.handleSalaryCertificate(employee, entities)
	case intent.InsuranceECard:
		return e.handleInsuranceECard(employee, entities)
	case intent.AttendanceCorrection:
		return e.handleAttendanceCorrection(employee, entities, ticketID)
	case intent.BankAccountChange:
		return e.handleBankChange(entities, ticketID)
	case intent.AddDependent:
		return e.handleAddDependent(entities, ticketID)
	case intent.Form16:
		return e.handleForm16(employee, entities)
	case intent.UpdateContact:
		return e.handleContactUpdate(entities)
	case intent.PolicyQuery:
		return e.handlePolicyQuery(entities)
	case intent.AddressProofLetter, intent.ReimbursementClaim, intent.UpdateEmergencyContact:
		// Recognized but not yet automated; these go to the HR team.
		return e.handleUnknown()
	default:
		return e.handleUnknown()
	}
}

func (e *Executor) handleUnknown() Outcome {
	var d Details
	d.Add("action_required", "HR team will review and respond")
	d.Add("common_requests", "Payslip download, Leave application, Employment letter, Insurance e-card, Leave balance check")
	return Outcome{
		Status:  StatusNeedsClarification,
		Message: "I couldn't understand the specific HR request. This ticket has been flagged for manual review.",
		Details: d,
	}
}

// entityOr returns the entity value or fallback when absent.
func entityOr(entities map[string]string, key, fallback string) string {
	if v, ok := entities[key]; ok && v != "" {
		return v
	}
	return fallback
}

// titleCase capitalizes each space-separated word, after mapping
// underscores to spaces. "casual_leave" becomes "Casual Leave".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (e *Executor) downloadURL(filename string) string {
	return fmt.Sprintf("%s/downloads/%s", strings.TrimRight(e.baseURL, "/"), filename)
}
