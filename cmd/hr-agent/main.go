// cmd/hr-agent/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hr-service-agent/internal/actions"
	"hr-service-agent/internal/audit"
	"hr-service-agent/internal/common/config"
	"hr-service-agent/internal/common/database"
	"hr-service-agent/internal/common/logger"
	"hr-service-agent/internal/common/observability"
	"hr-service-agent/internal/document"
	"hr-service-agent/internal/hris"
	"hr-service-agent/internal/intent"
	"hr-service-agent/internal/notify"
	"hr-service-agent/internal/pipeline"
	"hr-service-agent/internal/ticketing"
	"hr-service-agent/internal/webhook"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting HR service agent...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Redis (webhook dedupe) with retry; optional ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Warn("redis unavailable, webhook dedupe disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Audit sinks (PostgreSQL + Elasticsearch) with retry; optional ---
	var trail *audit.Trail
	if cfg.Audit.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		trail = audit.NewTrail(pg.DB, esClient.Client, cfg.Audit.Table, cfg.Audit.Index, log)
	}

	// --- Notifications (SES + SNS); optional ---
	var notifier *notify.Notifier
	if cfg.Notifications.Enabled {
		notifier, err = notify.New(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notification clients failed", zap.Error(err))
		}
		zapLog.Info("Notification clients initialized")
	}

	// --- Core pipeline ---
	renderer, err := document.NewTextRenderer(cfg.Documents.OutputDir, cfg.Company.Name, cfg.Company.Address, log)
	if err != nil {
		zapLog.Fatal("document renderer init failed", zap.Error(err))
	}

	store := hris.NewStore()
	classifier := intent.NewClassifier(log)
	executor := actions.NewExecutor(store, renderer,
		cfg.Company.Name, cfg.Company.HRHelpdesk, cfg.Company.FiscalStart,
		cfg.Server.ExternalURL, log)
	reporter := ticketing.NewClient(cfg.Ticketing, log)

	var auditor pipeline.Auditor
	if trail != nil {
		auditor = trail
	}
	var sideNotifier pipeline.Notifier
	if notifier != nil {
		sideNotifier = notifier
	}
	proc := pipeline.New(classifier, executor, reporter, auditor, sideNotifier, obs, log)

	var dedupe *redis.Client
	if redisClient != nil {
		dedupe = redisClient.Client
	}
	srv := webhook.NewServer(proc, dedupe, cfg.Documents.OutputDir, cfg.App.Version, log)

	// --- Health & Metrics Server ---
	go func() {
		// Default mux so the pprof import's handlers are reachable too.
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		zapLog.Info("Webhook server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("endpoint", "/webhook"),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("webhook server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down webhook server", zap.Error(err))
	}

	zapLog.Info("HR service agent stopped gracefully")
}
