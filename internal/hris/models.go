// internal/hris/models.go
package hris

import "time"

// BankAccount holds the salary credit account on file.
type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
}

// Salary is the monthly salary breakdown for an employee.
type Salary struct {
	Basic            int `json:"basic"`
	HRA              int `json:"hra"`
	SpecialAllowance int `json:"specialAllowance"`
	PFContribution   int `json:"pfContribution"`
	ProfessionalTax  int `json:"professionalTax"`
	IncomeTax        int `json:"incomeTax"`
	Gross            int `json:"gross"`
	Net              int `json:"net"`
}

// TotalDeductions returns the sum of the monthly deduction lines.
func (s Salary) TotalDeductions() int {
	return s.PFContribution + s.ProfessionalTax + s.IncomeTax
}

// EmployeeProfile is the master record for one employee, keyed by email.
type EmployeeProfile struct {
	EmployeeID    string      `json:"employeeId"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Department    string      `json:"department"`
	Designation   string      `json:"designation"`
	DateOfJoining string      `json:"dateOfJoining"`
	Manager       string      `json:"manager"`
	Location      string      `json:"location"`
	BankAccount   BankAccount `json:"bankAccount"`
	Salary        Salary      `json:"salary"`
}

// LeaveBalance tracks one leave category for one employee.
// Invariant: Available = Total - Used and Available >= 0.
type LeaveBalance struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

// LeaveRequest is an append-only record of a submitted leave application.
// Approval happens in an external system; the status here never leaves
// "Pending Approval" inside this process.
type LeaveRequest struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	LeaveType    string    `json:"leaveType"`
	FromDate     string    `json:"fromDate"`
	ToDate       string    `json:"toDate"`
	Days         int       `json:"days"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	AppliedOn    time.Time `json:"appliedOn"`
	Manager      string    `json:"manager"`
}
