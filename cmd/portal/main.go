// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command portal is the entry point for the NAMSA artist portal server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Start the profile signal relay.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joelnust/namsa/internal/activity"
	"github.com/joelnust/namsa/internal/api"
	"github.com/joelnust/namsa/internal/backend"
	"github.com/joelnust/namsa/internal/platform/config"
	"github.com/joelnust/namsa/internal/platform/constants"
	"github.com/joelnust/namsa/internal/platform/migration"
	pgstore "github.com/joelnust/namsa/internal/platform/postgres"
	redisstore "github.com/joelnust/namsa/internal/platform/redis"
	"github.com/joelnust/namsa/internal/platform/sec"
	"github.com/joelnust/namsa/internal/signal"
	"github.com/joelnust/namsa/internal/workspace"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendURL),
	)

	// Root context for background workers, cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Auth & Registry ────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	registry := backend.New(cfg.BackendURL, cfg.BackendTimeout, log)

	// ── 6. Profile Signals ────────────────────────────────────────────────
	hub := signal.NewHub(log)
	source := signal.NewRedisSource(rdb, cfg.SignalKey, hub, log)
	go func() {
		if err := source.Run(rootCtx); err != nil {
			log.Error("signal_source_failed", slog.Any("error", err))
		}
	}()

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	activityService := activity.NewService(activity.NewPostgresRepository(pool), log)

	store := workspace.NewStore(workspace.Dependencies{
		API:        registry,
		Subscriber: hub,
		Recorder:   activityService,
		Logger:     log,
		FeedSize:   cfg.FeedSize,
	}, cfg.WorkspaceLimit, cfg.WorkspaceTTL)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		CheckRegistry: registry.Ping,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.Handler(),
		Profile:   workspace.NewHandler(store, cfg.MaxUploadBytes),
		Activity:  activity.NewHandler(activityService),
		Signals:   signal.NewHandler(signal.NewRedisPublisher(rdb, cfg.SignalKey)),
	}

	server := api.NewServer(rootCtx, cfg, log, tokenService, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	ossignal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
	}

	// Stop the signal relay and close every open profile page before the
	// pools go away.
	rootCancel()
	store.Close()

	log.Info("server_stopped")
}

// newLogger builds the JSON root logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
