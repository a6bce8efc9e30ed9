// internal/webhook/server.go

// Package webhook exposes the inbound HTTP surface: the service-desk
// webhook, health probes, and the downloads endpoint for generated
// documents.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"hr-service-agent/internal/actions"
	"hr-service-agent/internal/common/logger"
	"hr-service-agent/internal/common/metrics"
	"hr-service-agent/internal/pipeline"
)

const (
	maxBodyBytes = 1 << 20
	dedupeTTL    = 24 * time.Hour
)

// Processor runs one normalized ticket through the HR pipeline.
type Processor interface {
	Process(ctx context.Context, t pipeline.Ticket) actions.Outcome
}

// Server handles inbound webhooks. Deliveries are acknowledged immediately
// and processed in the background so the service desk never waits on
// document generation. A Redis SETNX guard suppresses duplicate deliveries
// of the same ticket; without Redis every delivery is processed.
type Server struct {
	router       *mux.Router
	processor    Processor
	redis        *redis.Client
	downloadsDir string
	version      string
	log          logger.Logger
}

// NewServer wires the routes. redisClient may be nil to disable dedupe.
func NewServer(processor Processor, redisClient *redis.Client, downloadsDir, version string, log logger.Logger) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		processor:    processor,
		redis:        redisClient,
		downloadsDir: downloadsDir,
		version:      version,
		log:          log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	s.router.HandleFunc("/webhook", s.handleWebhook).Methods(http.MethodPost)
	s.router.HandleFunc("/downloads/{filename}", s.handleDownload).Methods(http.MethodGet)
}

// Handler returns the HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   s.version,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		if err := s.redis.Ping(r.Context()).Err(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"reason": "redis unreachable",
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	if err := ValidatePayload(body); err != nil {
		s.log.Warn("webhook payload rejected", map[string]interface{}{"error": err.Error()})
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON"})
		return
	}

	ticket := payload.Normalize()
	log := s.log.WithFields(map[string]interface{}{"ticketId": ticket.ID})
	log.Info("webhook received", map[string]interface{}{"requester": ticket.RequesterEmail})

	if s.isDuplicate(r.Context(), ticket.ID) {
		metrics.WebhookDuplicates.Inc()
		log.Info("duplicate delivery suppressed", nil)
		respondJSON(w, http.StatusOK, map[string]string{
			"status":    "duplicate",
			"message":   "Ticket already processed",
			"ticket_id": ticket.ID,
		})
		return
	}

	go s.process(ticket)

	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "accepted",
		"message":   "Processing HR request for ticket " + ticket.ID,
		"ticket_id": ticket.ID,
	})
}

// isDuplicate claims the ticket ID in Redis. Redis being down fails open:
// processing a delivery twice beats dropping it.
func (s *Server) isDuplicate(ctx context.Context, ticketID string) bool {
	if s.redis == nil {
		return false
	}
	ok, err := s.redis.SetNX(ctx, "hr:ticket:seen:"+ticketID, 1, dedupeTTL).Result()
	if err != nil {
		s.log.WithError(err).Warn("dedupe check failed, processing anyway", map[string]interface{}{"ticketId": ticketID})
		return false
	}
	return !ok
}

func (s *Server) process(ticket pipeline.Ticket) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("panic while processing ticket", map[string]interface{}{
				"ticketId": ticket.ID,
				"panic":    rec,
			})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	s.processor.Process(ctx, ticket)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(mux.Vars(r)["filename"])
	path := filepath.Join(s.downloadsDir, filename)
	http.ServeFile(w, r, path)
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
