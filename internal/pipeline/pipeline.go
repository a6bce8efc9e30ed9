// internal/pipeline/pipeline.go

// Package pipeline orchestrates one ticket end to end: classify the text,
// execute the matching HR workflow, report the outcome back onto the
// ticket, and fan out best-effort audit and notification side effects.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hr-service-agent/internal/actions"
	"hr-service-agent/internal/audit"
	"hr-service-agent/internal/common/logger"
	"hr-service-agent/internal/common/metrics"
	"hr-service-agent/internal/common/observability"
	"hr-service-agent/internal/intent"
	"hr-service-agent/internal/ticketing"
)

// Ticket is one normalized inbound service request.
type Ticket struct {
	ID             string
	Text           string
	RequesterEmail string
	RequesterName  string
}

// Classifier produces a classification for raw ticket text.
type Classifier interface {
	Classify(text string) intent.Result
}

// Executor fulfils a classified request.
type Executor interface {
	Execute(ctx context.Context, name intent.Name, entities map[string]string, requesterEmail, requesterName, ticketID string) actions.Outcome
}

// Reporter posts the outcome note back onto the ticket.
type Reporter interface {
	AddNote(ctx context.Context, ticketID, content string, private bool, attachmentPath string) error
}

// Auditor persists the processing trail.
type Auditor interface {
	Record(ctx context.Context, e audit.Entry) error
}

// Notifier delivers side-channel notifications.
type Notifier interface {
	DocumentReady(ctx context.Context, toEmail, employeeName, downloadURL, ticketID string) error
	ManualReviewAlert(ctx context.Context, ticketID, subject string) error
}

// Pipeline processes tickets. Auditor, Notifier and Observability are
// optional; a nil value disables that side effect. Reporting and side
// effects are best-effort: their failures are logged and counted but never
// change the returned outcome.
type Pipeline struct {
	classifier Classifier
	executor   Executor
	reporter   Reporter
	auditor    Auditor
	notifier   Notifier
	obs        *observability.Observability
	log        logger.Logger
	now        func() time.Time
}

// New wires a pipeline. reporter must be non-nil; pass nil for the
// optional collaborators to disable them.
func New(classifier Classifier, executor Executor, reporter Reporter, auditor Auditor, notifier Notifier, obs *observability.Observability, log logger.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		executor:   executor,
		reporter:   reporter,
		auditor:    auditor,
		notifier:   notifier,
		obs:        obs,
		log:        log,
		now:        time.Now,
	}
}

// Process runs one ticket through classification, execution and reporting,
// and returns the outcome.
func (p *Pipeline) Process(ctx context.Context, t Ticket) actions.Outcome {
	start := p.now()
	correlationID := uuid.NewString()
	log := p.log.WithFields(map[string]interface{}{
		"ticketId":      t.ID,
		"correlationId": correlationID,
	})
	log.Info("processing ticket", map[string]interface{}{"requester": t.RequesterEmail})

	res := p.classifier.Classify(t.Text)
	metrics.ClassificationConfidence.Observe(res.Confidence)
	log.Info("ticket classified", map[string]interface{}{
		"intent":     string(res.Intent),
		"confidence": res.Confidence,
		"entities":   res.Entities,
	})

	outcome := p.executor.Execute(ctx, res.Intent, res.Entities, t.RequesterEmail, t.RequesterName, t.ID)
	log.Info("action executed", map[string]interface{}{"status": string(outcome.Status)})

	note := ticketing.BuildNote(res, outcome, p.now())
	if err := p.reporter.AddNote(ctx, t.ID, note, false, outcome.AttachmentPath); err != nil {
		metrics.TicketUpdateFailures.Inc()
		log.WithError(err).Error("failed to update ticket", nil)
	}

	p.recordSideEffects(ctx, t, res, outcome, correlationID, start, log)

	duration := p.now().Sub(start)
	metrics.TicketsProcessed.WithLabelValues(string(res.Intent), string(outcome.Status)).Inc()
	metrics.TicketProcessingDuration.WithLabelValues(string(res.Intent)).Observe(duration.Seconds())
	if p.obs != nil {
		p.obs.RecordTicketProcessed(ctx, string(res.Intent), string(outcome.Status))
		p.obs.RecordTicketDuration(ctx, duration, string(res.Intent))
	}

	return outcome
}

func (p *Pipeline) recordSideEffects(ctx context.Context, t Ticket, res intent.Result, outcome actions.Outcome, correlationID string, start time.Time, log logger.Logger) {
	if p.auditor != nil {
		entry := audit.Entry{
			TicketID:       t.ID,
			Intent:         string(res.Intent),
			Confidence:     res.Confidence,
			Status:         string(outcome.Status),
			Message:        outcome.Message,
			RequesterEmail: t.RequesterEmail,
			CorrelationID:  correlationID,
			ProcessedAt:    p.now().UTC(),
			DurationMS:     p.now().Sub(start).Milliseconds(),
		}
		if err := p.auditor.Record(ctx, entry); err != nil {
			log.WithError(err).Warn("audit trail write failed", nil)
		}
	}

	if p.notifier == nil {
		return
	}
	if outcome.DownloadURL != "" {
		if err := p.notifier.DocumentReady(ctx, t.RequesterEmail, t.RequesterName, outcome.DownloadURL, t.ID); err != nil {
			log.WithError(err).Warn("document email failed", nil)
		}
	}
	if outcome.Status == actions.StatusNeedsClarification {
		if err := p.notifier.ManualReviewAlert(ctx, t.ID, t.Text); err != nil {
			log.WithError(err).Warn("manual review alert failed", nil)
		}
	}
}
