package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"doppel/internal/audit"
	"doppel/internal/census"
	"doppel/internal/gemini"
	"doppel/internal/platform/config"
	"doppel/internal/platform/httpserver"
	"doppel/internal/platform/logger"
	"doppel/internal/platform/metrics"
	platformredis "doppel/internal/platform/redis"
	httptransport "doppel/internal/transport/http"
	"doppel/internal/twin/service"
	"doppel/internal/twin/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if cfg.Gemini.APIKey == "" {
		log.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheStore, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error("cache store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	analyzer, err := gemini.New(ctx, gemini.Config{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		MatchCount: cfg.Gemini.MatchCount,
	}, log)
	if err != nil {
		log.Error("gemini client init failed", "error", err)
		os.Exit(1)
	}

	censusClient := census.New(census.Config{
		BaseURL: cfg.Census.BaseURL,
		Vintage: cfg.Census.Vintage,
	}, log)

	recorder, auditCleanup, err := buildRecorder(ctx, cfg, log)
	if err != nil {
		log.Error("audit sink init failed", "error", err)
		os.Exit(1)
	}
	defer auditCleanup()

	m := metrics.New()
	twins := service.NewService(cacheStore, censusClient, analyzer, recorder, m, log)
	router := httptransport.NewRouter(twins, log, cfg.Server.RequestTimeout)

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting doppel", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildStore picks the cache backend from configuration: Redis when
// REDIS_URL is set, Postgres when POSTGRES_URL is set, in-memory otherwise.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (service.CacheStore, func(), error) {
	switch {
	case cfg.Redis.URL != "":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis cache store")
		return store.NewRedis(client.Client), func() { _ = client.Close() }, nil

	case cfg.Postgres.URL != "":
		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("using postgres cache store")
		return pg, func() { _ = db.Close() }, nil

	default:
		log.Warn("no cache backend configured, results will not survive restarts")
		return store.NewInMemory(), func() {}, nil
	}
}

// buildRecorder wires the audit trail. Without brokers the trail stays
// in-process.
func buildRecorder(ctx context.Context, cfg config.Config, log *slog.Logger) (*audit.Recorder, func(), error) {
	var sink audit.Sink
	cleanup := func() {}

	if len(cfg.Audit.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			return nil, nil, err
		}
		sink = kafkaSink
		cleanup = kafkaSink.Close
		log.Info("audit trail publishing to kafka", "topic", cfg.Audit.Topic)
	} else {
		sink = audit.NewMemorySink()
	}

	recorder := audit.NewRecorder(sink, 256, log)
	go func() { _ = recorder.Run(ctx) }()
	return recorder, cleanup, nil
}
