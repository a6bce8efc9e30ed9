// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-service-agent/internal/actions"
	"hr-service-agent/internal/audit"
	"hr-service-agent/internal/common/logger"
	"hr-service-agent/internal/document"
	"hr-service-agent/internal/hris"
	"hr-service-agent/internal/intent"
)

type fakeReporter struct {
	ticketID   string
	note       string
	attachment string
	calls      int
	err        error
}

func (f *fakeReporter) AddNote(_ context.Context, ticketID, content string, _ bool, attachmentPath string) error {
	f.calls++
	f.ticketID = ticketID
	f.note = content
	f.attachment = attachmentPath
	return f.err
}

type fakeAuditor struct {
	entries []audit.Entry
	err     error
}

func (f *fakeAuditor) Record(_ context.Context, e audit.Entry) error {
	f.entries = append(f.entries, e)
	return f.err
}

type fakeNotifier struct {
	documentURLs []string
	alerts       []string
}

func (f *fakeNotifier) DocumentReady(_ context.Context, _, _, downloadURL, _ string) error {
	f.documentURLs = append(f.documentURLs, downloadURL)
	return nil
}

func (f *fakeNotifier) ManualReviewAlert(_ context.Context, ticketID, _ string) error {
	f.alerts = append(f.alerts, ticketID)
	return nil
}

func newTestPipeline(t *testing.T, reporter *fakeReporter, auditor *fakeAuditor, notifier *fakeNotifier) *Pipeline {
	t.Helper()
	log := logger.NewNoOpLogger()
	renderer, err := document.NewTextRenderer(t.TempDir(), "Dr. Reddy's Laboratories Limited",
		"Banjara Hills, Hyderabad", log)
	require.NoError(t, err)
	executor := actions.NewExecutor(hris.NewStore(), renderer, "Dr. Reddy's Laboratories Limited",
		"hr.helpdesk@drreddy.com", "april", "http://localhost:7500", log)

	var a Auditor
	if auditor != nil {
		a = auditor
	}
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	return New(intent.NewClassifier(log), executor, reporter, a, n, nil, log)
}

func payslipTicket() Ticket {
	return Ticket{
		ID:             "TKT-1001",
		Text:           "I need my payslip for December 2024",
		RequesterEmail: "asha.rao@drreddy.com",
		RequesterName:  "Asha Rao",
	}
}

func TestProcessPayslipEndToEnd(t *testing.T) {
	reporter := &fakeReporter{}
	auditor := &fakeAuditor{}
	notifier := &fakeNotifier{}
	p := newTestPipeline(t, reporter, auditor, notifier)

	outcome := p.Process(context.Background(), payslipTicket())

	assert.Equal(t, actions.StatusSuccess, outcome.Status)
	period, _ := outcome.Details.Get("pay_period")
	assert.Equal(t, "December 2024", period)

	assert.Equal(t, 1, reporter.calls)
	assert.Equal(t, "TKT-1001", reporter.ticketID)
	assert.Contains(t, reporter.note, "Payslip Download")
	assert.Contains(t, reporter.note, "December 2024")
	assert.NotEmpty(t, reporter.attachment)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "payslip_download", auditor.entries[0].Intent)
	assert.Equal(t, "success", auditor.entries[0].Status)
	assert.NotEmpty(t, auditor.entries[0].CorrelationID)

	require.Len(t, notifier.documentURLs, 1)
	assert.Contains(t, notifier.documentURLs[0], "payslip_TKT-1001.txt")
	assert.Empty(t, notifier.alerts)
}

func TestProcessUnreadableTicketAlertsOps(t *testing.T) {
	reporter := &fakeReporter{}
	notifier := &fakeNotifier{}
	p := newTestPipeline(t, reporter, nil, notifier)

	outcome := p.Process(context.Background(), Ticket{
		ID:             "TKT-1002",
		Text:           "hello team, just checking in",
		RequesterEmail: "asha.rao@drreddy.com",
		RequesterName:  "Asha Rao",
	})

	assert.Equal(t, actions.StatusNeedsClarification, outcome.Status)
	assert.Equal(t, []string{"TKT-1002"}, notifier.alerts)
	assert.Empty(t, notifier.documentURLs)
	assert.Contains(t, reporter.note, "NEEDS_CLARIFICATION")
}

func TestProcessReporterFailureDoesNotChangeOutcome(t *testing.T) {
	reporter := &fakeReporter{err: errors.New("service desk down")}
	p := newTestPipeline(t, reporter, nil, nil)

	outcome := p.Process(context.Background(), payslipTicket())

	assert.Equal(t, actions.StatusSuccess, outcome.Status)
	assert.Equal(t, 1, reporter.calls)
}

func TestProcessAuditFailureIsSwallowed(t *testing.T) {
	reporter := &fakeReporter{}
	auditor := &fakeAuditor{err: errors.New("db down")}
	p := newTestPipeline(t, reporter, auditor, nil)

	outcome := p.Process(context.Background(), payslipTicket())

	assert.Equal(t, actions.StatusSuccess, outcome.Status)
	assert.Len(t, auditor.entries, 1)
}

func TestProcessWithoutOptionalCollaborators(t *testing.T) {
	reporter := &fakeReporter{}
	p := newTestPipeline(t, reporter, nil, nil)

	outcome := p.Process(context.Background(), payslipTicket())

	assert.Equal(t, actions.StatusSuccess, outcome.Status)
}
