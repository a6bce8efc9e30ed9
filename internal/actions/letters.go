// internal/actions/letters.go
package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"hr-service-agent/internal/document"
	"hr-service-agent/internal/hris"
)

func (e *Executor) handleEmploymentLetter(ctx context.Context, employee hris.EmployeeProfile, entities map[string]string, ticketID string) Outcome {
	purpose := entityOr(entities, "purpose", "general verification")
	letterType := entityOr(entities, "letter_type", "employment")
	generatedOn := e.now().Format("02 January 2006")

	path, err := e.renderer.RenderLetter(ctx, document.Letter{
		LetterType:    letterType,
		EmployeeName:  employee.Name,
		EmployeeID:    employee.EmployeeID,
		Designation:   employee.Designation,
		Department:    employee.Department,
		DateOfJoining: employee.DateOfJoining,
		Purpose:       purpose,
		Date:          generatedOn,
	}, ticketID)
	if err != nil {
		e.log.WithError(err).Error("letter render failed", map[string]interface{}{"ticketId": ticketID})
	}

	var d Details
	d.Add("letter_type", titleCase(letterType))
	d.Add("employee_name", employee.Name)
	d.Add("designation", employee.Designation)
	d.Add("date_of_joining", employee.DateOfJoining)
	d.Add("purpose", purpose)
	d.Add("generated_on", generatedOn)

	out := Outcome{
		Status:         StatusSuccess,
		Message:        fmt.Sprintf("%s letter generated successfully", titleCase(letterType)),
		Details:        d,
		AttachmentPath: path,
	}
	if path != "" {
		out.DownloadURL = e.downloadURL(filepath.Base(path))
	}
	return out
}
