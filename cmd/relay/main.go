// cmd/relay/main.go

// relay is a thin webhook forwarder for deployments where the service desk
// can only reach a public endpoint. It accepts webhook posts and replays
// them to the agent's local webhook URL.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"hr-service-agent/internal/common/config"
	"hr-service-agent/internal/common/logger"
)

type relay struct {
	targetURL string
	client    *http.Client
	log       *zap.Logger
}

func (r *relay) forward(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, 1<<20))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"status": "error", "message": "unreadable body"})
		return
	}

	r.log.Info("relaying webhook", zap.String("target", r.targetURL))
	upstream, err := r.client.Post(r.targetURL, "application/json", bytes.NewReader(body))
	if err != nil {
		r.log.Error("relay failed", zap.Error(err))
		respond(w, http.StatusBadGateway, map[string]interface{}{"status": "error", "message": err.Error()})
		return
	}
	defer upstream.Body.Close()

	var upstreamBody interface{}
	if err := json.NewDecoder(upstream.Body).Decode(&upstreamBody); err != nil {
		upstreamBody = nil
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"status":            "relayed",
		"upstream_status":   upstream.StatusCode,
		"upstream_response": upstreamBody,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	timeout := time.Duration(cfg.Relay.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	r := &relay{
		targetURL: cfg.Relay.TargetURL,
		client:    &http.Client{Timeout: timeout},
		log:       zapLog,
	}

	router := mux.NewRouter()
	router.HandleFunc("/webhook", r.forward).Methods(http.MethodPost)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Relay.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		zapLog.Info("Relay listening", zap.String("addr", server.Addr), zap.String("target", r.targetURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("relay server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	zapLog.Info("Relay stopped")
}
