// internal/document/renderer.go
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hr-service-agent/internal/common/logger"
)

// LineItem is one labelled amount on a payslip.
type LineItem struct {
	Label  string
	Amount int
}

// Payslip carries everything needed to render one monthly payslip.
type Payslip struct {
	EmployeeName    string
	EmployeeID      string
	Department      string
	Designation     string
	PayPeriod       string
	Earnings        []LineItem
	Deductions      []LineItem
	GrossEarnings   int
	TotalDeductions int
	NetPay          int
	BankAccount     string
	BankName        string
}

// Letter carries the fields of an employment verification letter.
type Letter struct {
	LetterType    string
	EmployeeName  string
	EmployeeID    string
	Designation   string
	Department    string
	DateOfJoining string
	Purpose       string
	Date          string
}

// Statement carries year-to-date pay statement figures.
type Statement struct {
	EmployeeName  string
	EmployeeID    string
	Period        string
	YTDGross      int
	YTDDeductions int
	YTDNet        int
	MonthsCovered int
}

// Renderer produces downloadable documents and returns the written path.
type Renderer interface {
	RenderPayslip(ctx context.Context, p Payslip, ticketID string) (string, error)
	RenderLetter(ctx context.Context, l Letter, ticketID string) (string, error)
	RenderStatement(ctx context.Context, s Statement, ticketID string) (string, error)
}

// TextRenderer writes plain-text documents into a local output directory.
// The files are served back to requesters through the downloads endpoint.
type TextRenderer struct {
	outputDir   string
	companyName string
	address     string
	log         logger.Logger
}

// NewTextRenderer creates the output directory if needed.
func NewTextRenderer(outputDir, companyName, address string, log logger.Logger) (*TextRenderer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	return &TextRenderer{outputDir: outputDir, companyName: companyName, address: address, log: log}, nil
}

const rule = "============================================================"

// RenderPayslip writes payslip_<ticketID>.txt and returns its path.
func (r *TextRenderer) RenderPayslip(ctx context.Context, p Payslip, ticketID string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%s\n", center(strings.ToUpper(r.companyName)))
	fmt.Fprintf(&b, "%s\n", center("PAYSLIP"))
	fmt.Fprintf(&b, "%s\n\n", rule)
	fmt.Fprintf(&b, "Employee: %s (%s)\n", p.EmployeeName, p.EmployeeID)
	fmt.Fprintf(&b, "Department: %s | Designation: %s\n", p.Department, p.Designation)
	fmt.Fprintf(&b, "Period: %s\n", p.PayPeriod)
	fmt.Fprintf(&b, "Bank A/C: %s (%s)\n\n", p.BankAccount, p.BankName)
	b.WriteString("EARNINGS:\n")
	for _, e := range p.Earnings {
		fmt.Fprintf(&b, "  %s: %s\n", e.Label, Rupees(e.Amount))
	}
	fmt.Fprintf(&b, "\nGross: %s\n\n", Rupees(p.GrossEarnings))
	b.WriteString("DEDUCTIONS:\n")
	for _, d := range p.Deductions {
		fmt.Fprintf(&b, "  %s: %s\n", d.Label, Rupees(d.Amount))
	}
	fmt.Fprintf(&b, "\nTotal Deductions: %s\n", Rupees(p.TotalDeductions))
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "NET PAY: %s\n", Rupees(p.NetPay))
	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString("\nThis is a system-generated payslip and does not require a signature.\n")

	return r.write(ctx, fmt.Sprintf("payslip_%s.txt", ticketID), b.String())
}

// RenderLetter writes <type>_letter_<ticketID>.txt and returns its path.
func (r *TextRenderer) RenderLetter(ctx context.Context, l Letter, ticketID string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(r.companyName))
	fmt.Fprintf(&b, "%s\n", r.address)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Date: %s\n\n", l.Date)
	b.WriteString("TO WHOM IT MAY CONCERN\n\n")
	fmt.Fprintf(&b, "This is to certify that %s (ID: %s)\n", l.EmployeeName, l.EmployeeID)
	fmt.Fprintf(&b, "is employed as %s in %s\n", l.Designation, l.Department)
	fmt.Fprintf(&b, "since %s.\n\n", l.DateOfJoining)
	fmt.Fprintf(&b, "This letter is issued at the request of the employee\n")
	fmt.Fprintf(&b, "for the purpose of %s.\n\n", l.Purpose)
	fmt.Fprintf(&b, "For %s\n", r.companyName)
	b.WriteString("Human Resources Department\n")

	return r.write(ctx, fmt.Sprintf("%s_letter_%s.txt", l.LetterType, ticketID), b.String())
}

// RenderStatement writes pay_statement_<ticketID>.txt and returns its path.
func (r *TextRenderer) RenderStatement(ctx context.Context, s Statement, ticketID string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%s\n", center(strings.ToUpper(r.companyName)))
	fmt.Fprintf(&b, "%s\n", center("PAY STATEMENT"))
	fmt.Fprintf(&b, "%s\n\n", rule)
	fmt.Fprintf(&b, "Employee: %s (%s)\n", s.EmployeeName, s.EmployeeID)
	fmt.Fprintf(&b, "Period: %s\n", s.Period)
	fmt.Fprintf(&b, "Months Covered: %d\n\n", s.MonthsCovered)
	fmt.Fprintf(&b, "YTD Gross Earnings: %s\n", Rupees(s.YTDGross))
	fmt.Fprintf(&b, "YTD Deductions: %s\n", Rupees(s.YTDDeductions))
	fmt.Fprintf(&b, "YTD Net Pay: %s\n", Rupees(s.YTDNet))

	return r.write(ctx, fmt.Sprintf("pay_statement_%s.txt", ticketID), b.String())
}

func (r *TextRenderer) write(ctx context.Context, filename, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(r.outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write document %s: %w", filename, err)
	}
	r.log.Info("document generated", map[string]interface{}{"path": path})
	return path, nil
}

func center(s string) string {
	if pad := (len(rule) - len(s)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// Rupees formats an amount as "₹1,234,567" with thousands separators.
func Rupees(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + "₹" + strings.Join(groups, ",")
}
