// internal/audit/trail.go

// Package audit persists a per-ticket processing trail: one row per
// processed ticket in PostgreSQL for reporting, and one document per
// outcome in Elasticsearch for free-text search by the HR ops team.
package audit

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "hr-service-agent/internal/common/errors"
	"hr-service-agent/internal/common/logger"
)

// Entry is one processed-ticket record.
type Entry struct {
	TicketID       string    `json:"ticket_id"`
	Intent         string    `json:"intent"`
	Confidence     float64   `json:"confidence"`
	Status         string    `json:"status"`
	Message        string    `json:"message"`
	RequesterEmail string    `json:"requester_email"`
	CorrelationID  string    `json:"correlation_id"`
	ProcessedAt    time.Time `json:"processed_at"`
	DurationMS     int64     `json:"duration_ms"`
}

// Trail writes entries to both sinks. Either client may be nil, in which
// case that sink is skipped; audit is best-effort by design and never
// blocks ticket processing.
type Trail struct {
	db    *sql.DB
	es    *elasticsearch.Client
	table string
	index string
	log   logger.Logger
}

// NewTrail wires the audit trail. table and index name the PostgreSQL
// table and Elasticsearch index respectively.
func NewTrail(db *sql.DB, es *elasticsearch.Client, table, index string, log logger.Logger) *Trail {
	return &Trail{db: db, es: es, table: table, index: index, log: log}
}

// Record persists one entry. Sink failures are combined into one error so
// the caller can log them; a failure in one sink does not skip the other.
func (t *Trail) Record(ctx context.Context, e Entry) error {
	var dbErr, esErr error
	if t.db != nil {
		dbErr = t.insertRow(ctx, e)
	}
	if t.es != nil {
		esErr = t.indexDocument(ctx, e)
	}
	if dbErr == nil && esErr == nil {
		return nil
	}
	details := ""
	if dbErr != nil {
		details += fmt.Sprintf("postgres: %v; ", dbErr)
	}
	if esErr != nil {
		details += fmt.Sprintf("elasticsearch: %v; ", esErr)
	}
	return &apperrors.StandardError{
		Code:      apperrors.ErrCodeAuditWriteFailed,
		Message:   "Failed to write audit trail",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func (t *Trail) insertRow(ctx context.Context, e Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			ticket_id, intent, confidence, status, message,
			requester_email, correlation_id, processed_at, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (ticket_id) DO UPDATE SET
			intent = EXCLUDED.intent,
			confidence = EXCLUDED.confidence,
			status = EXCLUDED.status,
			message = EXCLUDED.message,
			processed_at = EXCLUDED.processed_at,
			duration_ms = EXCLUDED.duration_ms`, t.table)

	_, err := t.db.ExecContext(ctx, query,
		e.TicketID, e.Intent, e.Confidence, e.Status, e.Message,
		e.RequesterEmail, e.CorrelationID, e.ProcessedAt, e.DurationMS)
	if err != nil {
		return fmt.Errorf("insert processed ticket %s: %w", e.TicketID, err)
	}
	return nil
}

func (t *Trail) indexDocument(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	res, err := t.es.Index(
		t.index,
		bytes.NewReader(body),
		t.es.Index.WithContext(ctx),
		t.es.Index.WithDocumentID(e.TicketID),
	)
	if err != nil {
		return fmt.Errorf("index outcome %s: %w", e.TicketID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index outcome %s: %s", e.TicketID, res.Status())
	}
	return nil
}
