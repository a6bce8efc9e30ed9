// internal/document/renderer_test.go
package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-service-agent/internal/common/logger"
)

func newTestRenderer(t *testing.T) *TextRenderer {
	t.Helper()
	r, err := NewTextRenderer(t.TempDir(), "Dr. Reddy's Laboratories Limited",
		"8-2-337, Road No. 3, Banjara Hills, Hyderabad - 500034", logger.NewNoOpLogger())
	require.NoError(t, err)
	return r
}

func TestRenderPayslip(t *testing.T) {
	r := newTestRenderer(t)

	path, err := r.RenderPayslip(context.Background(), Payslip{
		EmployeeName: "John Doe",
		EmployeeID:   "EMP001",
		Department:   "Research & Development",
		Designation:  "Senior Scientist",
		PayPeriod:    "December 2024",
		Earnings: []LineItem{
			{"Basic Salary", 75000},
			{"House Rent Allowance", 30000},
			{"Special Allowance", 25000},
		},
		Deductions: []LineItem{
			{"Provident Fund", 9000},
			{"Professional Tax", 200},
			{"Income Tax (TDS)", 15000},
		},
		GrossEarnings:   130000,
		TotalDeductions: 24200,
		NetPay:          105800,
		BankAccount:     "XXXX5678",
		BankName:        "HDFC Bank",
	}, "TKT-1001")
	require.NoError(t, err)

	assert.Equal(t, "payslip_TKT-1001.txt", filepath.Base(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "DR. REDDY'S LABORATORIES LIMITED")
	assert.Contains(t, text, "John Doe (EMP001)")
	assert.Contains(t, text, "Period: December 2024")
	assert.Contains(t, text, "Basic Salary: ₹75,000")
	assert.Contains(t, text, "NET PAY: ₹105,800")
}

func TestRenderLetter(t *testing.T) {
	r := newTestRenderer(t)

	path, err := r.RenderLetter(context.Background(), Letter{
		LetterType:    "employment",
		EmployeeName:  "John Doe",
		EmployeeID:    "EMP001",
		Designation:   "Senior Scientist",
		Department:    "Research & Development",
		DateOfJoining: "2020-03-15",
		Purpose:       "visa application",
		Date:          "20 January 2025",
	}, "TKT-1002")
	require.NoError(t, err)

	assert.Equal(t, "employment_letter_TKT-1002.txt", filepath.Base(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "TO WHOM IT MAY CONCERN")
	assert.Contains(t, text, "John Doe (ID: EMP001)")
	assert.Contains(t, text, "purpose of visa application")
}

func TestRenderStatement(t *testing.T) {
	r := newTestRenderer(t)

	path, err := r.RenderStatement(context.Background(), Statement{
		EmployeeName:  "John Doe",
		EmployeeID:    "EMP001",
		Period:        "April 2024 to December 2024",
		YTDGross:      1170000,
		YTDDeductions: 217800,
		YTDNet:        952200,
		MonthsCovered: 9,
	}, "TKT-1003")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "YTD Gross Earnings: ₹1,170,000")
	assert.Contains(t, string(content), "Months Covered: 9")
}

func TestRupees(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "₹0"},
		{200, "₹200"},
		{9000, "₹9,000"},
		{130000, "₹130,000"},
		{1560000, "₹1,560,000"},
		{-200, "-₹200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rupees(tt.in))
	}
}
