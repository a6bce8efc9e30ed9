// internal/actions/leave.go
package actions

import (
	"errors"
	"fmt"
	"strconv"

	"hr-service-agent/internal/hris"
)

func (e *Executor) handleLeaveApplication(employee hris.EmployeeProfile, entities map[string]string, ticketID string) Outcome {
	leaveType := entityOr(entities, "leave_type", "casual_leave")
	fromDate := entityOr(entities, "from_date", entityOr(entities, "single_date", "Not specified"))
	toDate := entityOr(entities, "to_date", fromDate)
	reason := entityOr(entities, "reason", "Personal work")

	key, ok := hris.ResolveLeaveType(leaveType)
	if !ok {
		key = "casual_leave"
	}

	// Day counting is coarse: a single date is one day, a range counts as
	// three until real date parsing lands.
	days := 1
	if fromDate != toDate {
		days = 3
	}

	requestID := fmt.Sprintf("LR-%s", ticketID)
	remaining, err := e.store.ApplyLeave(employee.Email, key, days, hris.LeaveRequest{
		ID:           requestID,
		EmployeeName: employee.Name,
		FromDate:     fromDate,
		ToDate:       toDate,
		Reason:       reason,
		Status:       "Pending Approval",
		AppliedOn:    e.now(),
		Manager:      employee.Manager,
	})
	if err != nil {
		var insufficient *hris.ErrInsufficientBalance
		if errors.As(err, &insufficient) {
			var d Details
			d.Add("leave_type", titleCase(key))
			d.Add("requested_days", strconv.Itoa(days))
			d.Add("available_balance", strconv.Itoa(insufficient.Available))
			d.Add("action_required", "Please select a different leave type or reduce the number of days")
			return Outcome{
				Status: StatusWarning,
				Message: fmt.Sprintf("Insufficient leave balance. You have %d %s days available.",
					insufficient.Available, titleCase(key)),
				Details: d,
			}
		}
		e.log.WithError(err).Error("leave application failed", map[string]interface{}{"ticketId": ticketID})
		return e.handleUnknown()
	}

	var d Details
	d.Add("leave_request_id", requestID)
	d.Add("leave_type", titleCase(key))
	d.Add("from_date", fromDate)
	d.Add("to_date", toDate)
	d.Add("days", strconv.Itoa(days))
	d.Add("reason", reason)
	d.Add("status", "Pending Approval")
	d.Add("remaining_balance", strconv.Itoa(remaining))
	d.Add("calendar_event", fmt.Sprintf("Out of Office: %s to %s", fromDate, toDate))

	return Outcome{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Leave application submitted successfully. Pending approval from %s.", employee.Manager),
		Details: d,
	}
}

func (e *Executor) handleLeaveBalance(employee hris.EmployeeProfile, entities map[string]string) Outcome {
	leaveType := entityOr(entities, "leave_type", "all")

	if leaveType != "all" {
		if key, ok := hris.ResolveLeaveType(leaveType); ok {
			if bal, found := e.store.Balance(employee.Email, key); found {
				var d Details
				d.Add("leave_type", titleCase(key))
				d.Add("total_entitled", strconv.Itoa(bal.Total))
				d.Add("used", strconv.Itoa(bal.Used))
				d.Add("available", strconv.Itoa(bal.Available))
				return Outcome{
					Status: StatusSuccess,
					Message: fmt.Sprintf("Your %s balance: %d days available",
						titleCase(key), bal.Available),
					Details: d,
				}
			}
		}
		// Unrecognized type falls through to the full summary.
	}

	balances := e.store.Balances(employee.Email)
	var d Details
	totalAvailable := 0
	for _, key := range hris.LeaveTypes() {
		bal := balances[key]
		d.Add(titleCase(key), fmt.Sprintf("%d of %d days", bal.Available, bal.Total))
		totalAvailable += bal.Available
	}

	return Outcome{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Total available leave: %d days across all categories", totalAvailable),
		Details: d,
	}
}
