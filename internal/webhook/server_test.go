// internal/webhook/server_test.go
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-service-agent/internal/actions"
	"hr-service-agent/internal/common/logger"
	"hr-service-agent/internal/pipeline"
)

type recordingProcessor struct {
	mu      sync.Mutex
	tickets []pipeline.Ticket
	done    chan struct{}
}

func newRecordingProcessor(expected int) *recordingProcessor {
	return &recordingProcessor{done: make(chan struct{}, expected)}
}

func (r *recordingProcessor) Process(_ context.Context, t pipeline.Ticket) actions.Outcome {
	r.mu.Lock()
	r.tickets = append(r.tickets, t)
	r.mu.Unlock()
	r.done <- struct{}{}
	return actions.Outcome{Status: actions.StatusSuccess}
}

func (r *recordingProcessor) wait(t *testing.T) pipeline.Ticket {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("processor was not invoked")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickets[len(r.tickets)-1]
}

func (r *recordingProcessor) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

func postWebhook(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhookAcceptsAndProcessesInBackground(t *testing.T) {
	proc := newRecordingProcessor(1)
	srv := NewServer(proc, nil, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	rec := postWebhook(t, srv, `{
		"id": 42,
		"display_id": "TKT-1001",
		"subject": "I need my payslip for December 2024",
		"requester": {"email": "asha.rao@drreddy.com", "label": "Asha Rao"}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["status"])
	assert.Equal(t, "TKT-1001", resp["ticket_id"])

	ticket := proc.wait(t)
	assert.Equal(t, "TKT-1001", ticket.ID)
	assert.Equal(t, "asha.rao@drreddy.com", ticket.RequesterEmail)
}

func TestWebhookRejectsInvalidPayload(t *testing.T) {
	proc := newRecordingProcessor(1)
	srv := NewServer(proc, nil, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	rec := postWebhook(t, srv, `{"subject": "no ticket reference"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, proc.count())
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	proc := newRecordingProcessor(1)
	srv := NewServer(proc, nil, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	rec := postWebhook(t, srv, `{"display_id": "TKT-1"`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookSuppressesDuplicateDeliveries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	proc := newRecordingProcessor(2)
	srv := NewServer(proc, client, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	body := `{"ticket_id": "TKT-9", "issue_description": "leave balance", "user_email": "a@b.com"}`

	first := postWebhook(t, srv, body)
	assert.Equal(t, http.StatusOK, first.Code)
	proc.wait(t)

	second := postWebhook(t, srv, body)
	assert.Equal(t, http.StatusOK, second.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "duplicate", resp["status"])
	assert.Equal(t, 1, proc.count())
}

func TestWebhookDedupeFailsOpen(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSetNX("hr:ticket:seen:TKT-9", 1, dedupeTTL).SetErr(errors.New("redis down"))

	proc := newRecordingProcessor(1)
	srv := NewServer(proc, client, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	rec := postWebhook(t, srv, `{"ticket_id": "TKT-9", "issue_description": "leave balance"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	proc.wait(t)
	assert.Equal(t, 1, proc.count())
}

func TestHealthEndpoints(t *testing.T) {
	srv := NewServer(newRecordingProcessor(1), nil, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
		assert.Equal(t, "1.0.0", resp["version"])
	}
}

func TestReadyReflectsRedisHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	srv := NewServer(newRecordingProcessor(1), client, t.TempDir(), "1.0.0", logger.NewNoOpLogger())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	mr.Close()
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDownloadServesGeneratedDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payslip_TKT-1001.txt"), []byte("NET PAY"), 0o644))
	srv := NewServer(newRecordingProcessor(1), nil, dir, "1.0.0", logger.NewNoOpLogger())

	req := httptest.NewRequest(http.MethodGet, "/downloads/payslip_TKT-1001.txt", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NET PAY")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/downloads/missing.txt", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
