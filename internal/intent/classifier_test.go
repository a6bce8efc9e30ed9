// internal/intent/classifier_test.go
package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-service-agent/internal/common/logger"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier(logger.NewNoOpLogger())
	c.now = func() time.Time {
		return time.Date(2025, time.January, 20, 10, 0, 0, 0, time.UTC)
	}
	return c
}

func TestClassifyRecognizesEveryIntent(t *testing.T) {
	tests := []struct {
		text string
		want Name
	}{
		{"I need my payslip for December 2024", PayslipDownload},
		{"Please share my salary statement year to date", PayStatement},
		{"I want to change my bank account to HDFC", BankAccountChange},
		{"Apply casual leave from 15/01/2025 to 17/01/2025 for personal work", ApplyLeave},
		{"Attendance correction needed, I forgot punch on 12/01/2025", AttendanceCorrection},
		{"What is my leave balance?", LeaveBalance},
		{"Need employment letter for visa application", EmploymentLetter},
		{"Please issue a salary certificate for my home loan", SalaryCertificate},
		{"I need address proof for opening a bank account", AddressProofLetter},
		{"Please download my health card from medi assist", InsuranceECard},
		{"Add my newborn daughter as dependent, name: Meera", AddDependent},
		{"I want to submit a medical reimbursement claim for Rs. 4,500", ReimbursementClaim},
		{"Please update my phone number to 9876543210", UpdateContact},
		{"Update my emergency contact, name: Suresh, 9876501234", UpdateEmergencyContact},
		{"I need form 16 for 2023-24", Form16},
		{"What is the travel policy?", PolicyQuery},
	}
	c := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			res := c.Classify(tt.text)
			assert.Equal(t, tt.want, res.Intent)
			assert.Greater(t, res.Confidence, 0.4)
			assert.LessOrEqual(t, res.Confidence, 1.0)
		})
	}
}

func TestClassifyPayslipWithMonthAndYear(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify("I need my payslip for December 2024")

	assert.Equal(t, PayslipDownload, res.Intent)
	assert.Equal(t, "december", res.Entities["month"])
	assert.Equal(t, "2024", res.Entities["year"])
}

func TestClassifyPayslipLastMonthSynthesizesPeriod(t *testing.T) {
	c := newTestClassifier(t) // clock pinned to 20 Jan 2025

	res := c.Classify("Please send me last month's payslip")

	assert.Equal(t, PayslipDownload, res.Intent)
	assert.Equal(t, "december", res.Entities["month"])
	assert.Equal(t, "2024", res.Entities["year"])
}

func TestClassifyPayslipThisMonthSynthesizesPeriod(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify("Can you share this month's payslip please")

	assert.Equal(t, PayslipDownload, res.Intent)
	assert.Equal(t, "january", res.Entities["month"])
	assert.Equal(t, "2025", res.Entities["year"])
}

func TestClassifyLeaveApplicationEntities(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify("Apply casual leave from 15/01/2025 to 17/01/2025 for personal work")

	require.Equal(t, ApplyLeave, res.Intent)
	assert.Equal(t, "casual", res.Entities["leave_type"])
	assert.Equal(t, "15/01/2025", res.Entities["from_date"])
	assert.Equal(t, "17/01/2025", res.Entities["to_date"])
	assert.Contains(t, res.Entities, "reason")
}

func TestClassifyEntitiesPushScoreOverThreshold(t *testing.T) {
	c := newTestClassifier(t)

	// One keyword hit alone scores exactly 0.4, which is below the cutoff;
	// the extracted date must be what tips it over.
	res := c.Classify("vacation from 15/01/2025")

	assert.Equal(t, ApplyLeave, res.Intent)
	assert.InDelta(t, 0.5, res.Confidence, 0.001)
}

func TestClassifyUnknownInputs(t *testing.T) {
	c := newTestClassifier(t)
	for _, text := range []string{
		"",
		"   ",
		"the quick brown fox jumps over the lazy dog",
		"hello team, just checking in",
	} {
		res := c.Classify(text)
		assert.Equal(t, Unknown, res.Intent, "input %q", text)
		assert.LessOrEqual(t, res.Confidence, 0.4)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := newTestClassifier(t)
	const text = "Need employment letter for visa application"

	first := c.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
}

func TestClassifyCaseAndWhitespaceInsensitive(t *testing.T) {
	c := newTestClassifier(t)

	a := c.Classify("  I NEED MY PAYSLIP FOR DECEMBER 2024  ")
	b := c.Classify("i need my payslip for december 2024")

	assert.Equal(t, b, a)
}

func TestClassifyShortMonthNames(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify("need my payslip for sept 2024")

	assert.Equal(t, PayslipDownload, res.Intent)
	assert.Equal(t, "sep", res.Entities["month"][:3])
	assert.Equal(t, "2024", res.Entities["year"])
}

func TestClassifyLeaveBalanceWithType(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify("Remaining leaves - casual")

	assert.Equal(t, LeaveBalance, res.Intent)
	assert.Equal(t, "casual", res.Entities["leave_type"])
}
