// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

// Command api is the entry point for the Majalla HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect to object storage and the mail relay.
//  7. Wire HTTP handlers and Prometheus collectors.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/majallahq/majalla/internal/api"
	"github.com/majallahq/majalla/internal/core/article"
	"github.com/majallahq/majalla/internal/core/author"
	"github.com/majallahq/majalla/internal/core/category"
	"github.com/majallahq/majalla/internal/formconfig"
	"github.com/majallahq/majalla/internal/mailer"
	"github.com/majallahq/majalla/internal/media"
	"github.com/majallahq/majalla/internal/platform/config"
	"github.com/majallahq/majalla/internal/platform/constants"
	"github.com/majallahq/majalla/internal/platform/metrics"
	"github.com/majallahq/majalla/internal/platform/migration"
	pgstore "github.com/majallahq/majalla/internal/platform/postgres"
	redisstore "github.com/majallahq/majalla/internal/platform/redis"
	"github.com/majallahq/majalla/internal/platform/sec"
	"github.com/majallahq/majalla/internal/submission"
	"github.com/majallahq/majalla/internal/wizard"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Majalla] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verification ─────────────────────────────────────────────
	// The API only verifies tokens; issuing happens in the editorial backend.
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 7. Object Storage ─────────────────────────────────────────────────
	storage, err := media.NewMinIOStorage(cfg)
	must(log, err, "connect to object storage")

	// ── 8. Mailer ─────────────────────────────────────────────────────────
	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(cfg, log)
		must(log, err, "initialize smtp mailer")
		mail = smtpMailer
	} else {
		log.Warn("smtp_not_configured_using_log_mailer")
		mail = mailer.NewLogMailer(log)
	}

	// ── 9. Metrics ────────────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	metrics.RegisterCollectors(registry)

	// ── 10. Health handlers (wired with real dependency checkers) ─────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckStorage: func() error {
			return storage.Ping(context.Background())
		},
	}, log)

	// ── 11. Domain Wiring ─────────────────────────────────────────────────
	authorService := author.NewService(author.NewPostgresRepository(pool), log)
	articleService := article.NewService(article.NewPostgresRepository(pool), log)
	categoryService := category.NewService(category.NewPostgresRepository(pool), log)
	formService := formconfig.NewService(formconfig.NewPostgresRepository(pool), log)

	submissionService := submission.NewService(
		authorService,
		articleService,
		categoryService,
		formService,
		storage,
		mail,
		submission.NewRedisAttemptStore(rdb),
		log,
	)
	wizardService := wizard.NewService(
		wizard.NewRedisSessionStore(rdb),
		submissionService,
		formService,
		categoryService,
		log,
	)

	// ── 12. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Wizard:     wizard.NewHandler(wizardService),
		Submission: submission.NewHandler(submissionService),
		Article:    article.NewHandler(articleService),
		Category:   category.NewHandler(categoryService),
		FormConfig: formconfig.NewHandler(formService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, registry, handlers)

	// ── 13. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
