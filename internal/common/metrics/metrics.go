// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicketsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_tickets_processed_total",
			Help: "Total number of tickets processed, by intent and outcome status",
		},
		[]string{"intent", "status"},
	)

	TicketProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hr_ticket_processing_duration_seconds",
			Help:    "End-to-end duration of classify+dispatch per ticket",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"intent"},
	)

	ClassificationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hr_classification_confidence",
			Help:    "Distribution of classifier confidence scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_documents_generated_total",
			Help: "Total number of document artifacts rendered, by type",
		},
		[]string{"document_type"},
	)

	TicketUpdateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hr_ticket_update_failures_total",
			Help: "Total number of failed note posts to the service desk",
		},
	)

	WebhookDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hr_webhook_duplicate_deliveries_total",
			Help: "Total number of webhook deliveries suppressed by the dedupe guard",
		},
	)
)
