// internal/actions/benefits.go
package actions

import (
	"fmt"

	"hr-service-agent/internal/hris"
)

func (e *Executor) handleInsuranceECard(employee hris.EmployeeProfile, entities map[string]string) Outcome {
	forWhom := entityOr(entities, "for_whom", "self")

	var d Details
	d.Add("policy_number", fmt.Sprintf("GMC-%s-2024", employee.EmployeeID))
	d.Add("employee_name", employee.Name)
	d.Add("employee_id", employee.EmployeeID)
	d.Add("insurer", "ICICI Lombard")
	d.Add("tpa", "Medi Assist")
	d.Add("sum_insured", "₹5,00,000")
	d.Add("valid_from", "01-Apr-2024")
	d.Add("valid_to", "31-Mar-2025")
	d.Add("for_member", titleCase(forWhom))

	return Outcome{
		Status:      StatusSuccess,
		Message:     fmt.Sprintf("Insurance e-card generated for %s", forWhom),
		Details:     d,
		DownloadURL: e.downloadURL("insurance_ecard.pdf"),
	}
}

func (e *Executor) handleAddDependent(entities map[string]string, ticketID string) Outcome {
	relationship := entityOr(entities, "relationship", "dependent")
	name := entityOr(entities, "name", "Not specified")

	var d Details
	d.Add("request_id", fmt.Sprintf("DEP-%s", ticketID))
	d.Add("dependent_name", name)
	d.Add("relationship", titleCase(relationship))
	d.Add("status", "Pending Verification")
	d.Add("documents_required", "Please submit: Birth Certificate/Marriage Certificate, Aadhaar Card, Photo")
	d.Add("expected_completion", e.now().AddDate(0, 0, 5).Format("02 January 2006"))

	return Outcome{
		Status:  StatusPending,
		Message: "Dependent addition request submitted. HR team will verify and process within 3-5 business days.",
		Details: d,
	}
}
