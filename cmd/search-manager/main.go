// cmd/search-manager/main.go
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"supplier-search/internal/common/camunda"
	"supplier-search/internal/common/config"
	"supplier-search/internal/common/database"
	"supplier-search/internal/common/genai"
	"supplier-search/internal/common/logger"
	"supplier-search/internal/common/observability"
	"supplier-search/internal/search"
	"supplier-search/internal/search/intent"
	"supplier-search/internal/search/parser"
	"supplier-search/internal/store"

	cci "supplier-search/internal/workers/directory/classify-chat-intent"
	exs "supplier-search/internal/workers/directory/execute-search"
	psq "supplier-search/internal/workers/directory/parse-search-query"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting search manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("search-manager")
	defer obs.Shutdown()

	tracing := observability.NewTracing("search-manager", os.Getenv("JAEGER_COLLECTOR_URL"))
	defer tracing.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.Timeout),
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the search pipeline ---
	var assisted *parser.Assisted
	if cfg.APIs.GenAI.BaseURL != "" && cfg.APIs.GenAI.APIKey != "" {
		genaiClient := genai.NewClient(&genai.Config{
			BaseURL: cfg.APIs.GenAI.BaseURL,
			APIKey:  cfg.APIs.GenAI.APIKey,
			Model:   cfg.APIs.GenAI.Model,
			Timeout: config.GetDuration(cfg.APIs.GenAI.Timeout),
		})
		parseCache := parser.NewRedisCache(redis.Client, time.Duration(cfg.Search.ParseCacheTTL)*time.Second)
		assisted = parser.NewAssisted(genaiClient, parseCache, log)
		zapLog.Info("GenAI assisted parser enabled")
	} else {
		zapLog.Warn("GenAI not configured, using deterministic parser only")
	}

	queryParser := parser.New(assisted, log)
	classifier := intent.NewClassifier(log)

	var recordStore search.RecordStore
	switch cfg.Search.Store {
	case "postgres":
		recordStore = store.NewPostgres(pg.DB, cfg.Search.Table, log)
	default:
		recordStore = store.NewElasticsearch(esClient.Client, cfg.Search.Index, log)
	}
	zapLog.Info("Record store initialized", zap.String("store", cfg.Search.Store))

	engine := search.NewEngine(recordStore, queryParser, search.Config{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		MaxMatchWindow:  cfg.Search.MaxMatchWindow,
	}, log)

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker
	startWorker := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.NewWorker(
			camundaClient.GetClient(), taskType, wcfg.MaxJobsActive,
			config.GetDuration(wcfg.Timeout), handler, zapLog,
		)
		workers = append(workers, w)
	}

	psqHandler := psq.NewHandler(
		&psq.Config{Timeout: config.GetDuration(cfg.Workers[psq.TaskType].Timeout)},
		queryParser, log,
	)
	startWorker(psq.TaskType, psqHandler.Handle)

	cciHandler := cci.NewHandler(
		&cci.Config{Timeout: config.GetDuration(cfg.Workers[cci.TaskType].Timeout)},
		classifier, log,
	)
	startWorker(cci.TaskType, cciHandler.Handle)

	exsHandler := exs.NewHandler(
		&exs.Config{Timeout: config.GetDuration(cfg.Workers[exs.TaskType].Timeout)},
		engine, log,
	)
	startWorker(exs.TaskType, exsHandler.Handle)

	zapLog.Info("All workers registered successfully")

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
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}
	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Search manager stopped gracefully")
}
