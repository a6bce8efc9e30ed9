// internal/actions/requests.go
package actions

import (
	"fmt"
	"strings"

	"hr-service-agent/internal/hris"
)

func (e *Executor) handleAttendanceCorrection(employee hris.EmployeeProfile, entities map[string]string, ticketID string) Outcome {
	date := entityOr(entities, "date", "Not specified")
	timeOfDay := entityOr(entities, "time", "Not specified")

	var d Details
	d.Add("request_id", fmt.Sprintf("ATT-%s", ticketID))
	d.Add("date", date)
	d.Add("time", timeOfDay)
	d.Add("status", "Pending Manager Approval")
	d.Add("manager", employee.Manager)

	return Outcome{
		Status:  StatusPending,
		Message: "Attendance correction request submitted. Awaiting manager approval.",
		Details: d,
	}
}

func (e *Executor) handleBankChange(entities map[string]string, ticketID string) Outcome {
	newBank := "Not specified"
	if bank, ok := entities["bank_name"]; ok && bank != "" {
		newBank = strings.ToUpper(bank)
	}

	var d Details
	d.Add("request_id", fmt.Sprintf("BNK-%s", ticketID))
	d.Add("new_bank", newBank)
	d.Add("status", "Awaiting Document Upload")
	d.Add("documents_required", "Cancelled cheque, Passbook front page")
	d.Add("effective_from", "Next payroll cycle")

	return Outcome{
		Status:  StatusPending,
		Message: "Bank account change request submitted. Please upload cancelled cheque for verification.",
		Details: d,
	}
}

func (e *Executor) handleContactUpdate(entities map[string]string) Outcome {
	field := entityOr(entities, "field", "contact")
	value := entityOr(entities, "value", "Not specified")

	var d Details
	d.Add("field_updated", titleCase(field))
	d.Add("new_value", value)
	d.Add("status", "Updated")
	d.Add("updated_on", e.now().Format("02 January 2006 15:04"))

	return Outcome{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%s update request processed successfully", titleCase(field)),
		Details: d,
	}
}

var policyInfo = map[string]string{
	"leave":      "Leave policy: Casual Leave - 12 days, Sick Leave - 12 days, Earned Leave - 15 days. Apply via HRIS portal.",
	"attendance": "Attendance policy: Core hours 10 AM - 5 PM. Flexi timing available. Regularization within 3 days.",
	"benefits":   "Benefits: Group Medical Insurance (₹5L), Group Term Life, Gratuity, PF. Contact HR for details.",
	"insurance":  "Health Insurance: ICICI Lombard via Medi Assist TPA. E-card available on HRIS. Cashless at network hospitals.",
	"travel":     "Travel policy: Book via Concur. Domestic - 7 days advance. International - 21 days advance.",
}

func (e *Executor) handlePolicyQuery(entities map[string]string) Outcome {
	topic := entityOr(entities, "topic", "general")

	info, ok := policyInfo[strings.ToLower(topic)]
	if !ok {
		info = "Please contact HR for detailed policy information."
	}

	var d Details
	d.Add("topic", titleCase(topic))
	d.Add("for_detailed_info", fmt.Sprintf("Contact HR at %s", e.helpdesk))

	return Outcome{
		Status:  StatusInfo,
		Message: info,
		Details: d,
	}
}
