// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gastro-triage/internal/catalog"
	"gastro-triage/internal/common/config"
	"gastro-triage/internal/common/database"
	"gastro-triage/internal/common/logger"
	"gastro-triage/internal/common/metrics"
	"gastro-triage/internal/common/observability"
	"gastro-triage/internal/triage"

	et "gastro-triage/internal/workers/triage/evaluate-triage"
	mbs "gastro-triage/internal/workers/triage/match-by-symptoms"
	sea "gastro-triage/internal/workers/triage/send-emergency-alert"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
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
			delay *= 2
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

	zapLog.Info("starting triage worker manager",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected")

	// --- Catalog ---
	snap, closers, err := loadCatalog(ctx, cfg, zapLog, log)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	defer closers()

	symptoms, diseases, relations := snap.Counts()
	metrics.CatalogEntries.WithLabelValues("symptoms").Set(float64(symptoms))
	metrics.CatalogEntries.WithLabelValues("diseases").Set(float64(diseases))
	metrics.CatalogEntries.WithLabelValues("relations").Set(float64(relations))
	zapLog.Info("catalog loaded",
		zap.Int("symptoms", symptoms),
		zap.Int("diseases", diseases),
		zap.Int("relations", relations),
	)

	// --- Triage engine ---
	var phrases []string
	if cfg.Triage.EmergencyPhrasePath != "" {
		phrases, err = triage.LoadEmergencyPhrases(cfg.Triage.EmergencyPhrasePath)
		if err != nil {
			zapLog.Fatal("emergency phrase file load failed", zap.Error(err))
		}
	}

	engine := triage.NewEngine(snap, triage.Options{
		Limits: triage.Limits{
			MaxTextLength:   cfg.Triage.MaxTextLength,
			MaxSymptomCount: cfg.Triage.MaxSymptomCount,
		},
		MaxCandidates:    cfg.Triage.MaxCandidates,
		EmergencyPhrases: phrases,
		Logger:           log,
	})

	// --- Workers ---
	if taskType := et.TaskType; cfg.WorkerSettings(taskType).Enabled {
		etCfg := et.LoadConfig()
		handler := et.NewHandler(etCfg, engine, log).WithObservability(obs)
		startWorker(zeebeClient, taskType, cfg.WorkerSettings(taskType), handler.Handle, zapLog)
	}

	if taskType := mbs.TaskType; cfg.WorkerSettings(taskType).Enabled {
		mbsCfg := mbs.LoadConfig()
		handler := mbs.NewHandler(mbsCfg, engine, log).WithObservability(obs)
		startWorker(zeebeClient, taskType, cfg.WorkerSettings(taskType), handler.Handle, zapLog)
	}

	if taskType := sea.TaskType; cfg.WorkerSettings(taskType).Enabled {
		seaCfg := sea.LoadConfig()
		seaCfg.AWSRegion = cfg.Notifications.AWSRegion
		seaCfg.AlertTopicARN = cfg.Notifications.AlertTopicARN
		seaCfg.AlertEmail = cfg.Notifications.AlertEmail
		seaCfg.SenderEmail = cfg.Notifications.SenderEmail
		handler, err := sea.NewHandler(seaCfg, log)
		if err != nil {
			zapLog.Fatal("failed to create send-emergency-alert handler", zap.Error(err))
		}
		startWorker(zeebeClient, taskType, cfg.WorkerSettings(taskType), handler.Handle, zapLog)
	}

	zapLog.Info("all triage workers registered")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("health/metrics server listening", zap.String("addr", cfg.App.MetricsAddr))
		if err := http.ListenAndServe(cfg.App.MetricsAddr, nil); err != nil {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("worker manager stopped gracefully")
}

// loadCatalog loads the snapshot from postgres (with the redis cache in
// front) or from the configured JSON file. The returned closer shuts down
// whatever connections the chosen path opened.
func loadCatalog(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) (*catalog.Snapshot, func(), error) {
	if !cfg.Triage.CatalogFromDB {
		snap, err := catalog.LoadFile(cfg.Triage.CatalogPath, log)
		return snap, func() {}, err
	}

	var pg *database.PostgresClient
	err := retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		return nil, func() {}, err
	}
	zapLog.Info("PostgreSQL connected")

	var source catalog.Source = catalog.NewPostgresSource(pg.DB, log)
	closer := func() { pg.Close() }

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err == nil && rdb.Ping(ctx) == nil {
		zapLog.Info("Redis connected, catalog cache enabled")
		ttl := time.Duration(cfg.Triage.CatalogCacheTTL) * time.Second
		source = catalog.NewCachedSource(source, rdb.Client, ttl, log)
		pgCloser := closer
		closer = func() {
			rdb.Close()
			pgCloser()
		}
	} else {
		zapLog.Warn("Redis unavailable, loading catalog without cache")
	}

	snap, err := source.Load(ctx)
	if err != nil {
		closer()
		return nil, func() {}, err
	}
	return snap, closer, nil
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
