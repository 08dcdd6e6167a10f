// Package main is the entry point for the gatekeeper API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/rmfarias/gatekeeper/backend/internal/auth"
	"github.com/rmfarias/gatekeeper/backend/internal/authz"
	"github.com/rmfarias/gatekeeper/backend/internal/config"
	"github.com/rmfarias/gatekeeper/backend/internal/handler"
	"github.com/rmfarias/gatekeeper/backend/internal/middleware"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
	"github.com/rmfarias/gatekeeper/backend/internal/service"
	"github.com/rmfarias/gatekeeper/backend/migrations"
)

// maxBodySize caps request bodies at 1 MiB; every payload here is small JSON.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose needs database/sql, not the pgx pool, so open a short-lived
	// *sql.DB just for schema bootstrap.
	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// --- Repos and services ----------------------------------------------
	visitorRepo := repo.NewVisitorRepo(pool)
	tripRepo := repo.NewFleetTripRepo(pool)
	scheduleRepo := repo.NewScheduleRepo(pool)
	observationRepo := repo.NewObservationRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	settingsRepo := repo.NewSettingsRepo(pool)

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	userService := service.NewUserService(userRepo)

	// Seed the default admin so a fresh install is never locked out.
	seeded, err := userService.EnsureAdmin(context.Background(), cfg.AdminPassword)
	if err != nil {
		slog.Error("failed to ensure admin user", "error", err)
		os.Exit(1)
	}
	if seeded {
		slog.Info("default admin user created", "username", "admin")
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		slog.Error("failed to build authorizer", "error", err)
		os.Exit(1)
	}

	srv := handler.NewServer(handler.Deps{
		Auth:      service.NewAuthService(userRepo, tokens),
		Visitors:  service.NewVisitorService(visitorRepo),
		Fleet:     service.NewFleetService(tripRepo),
		Schedules: service.NewScheduleService(scheduleRepo),
		Reports:   service.NewReportService(visitorRepo, tripRepo, scheduleRepo, observationRepo),
		Dashboard: service.NewDashboardService(visitorRepo, tripRepo, scheduleRepo),
		Users:     userService,
		Settings:  settingsRepo,
		Verifier:  tokens,
		Roles:     enforcer,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/api", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout is generous because the export endpoints render documents.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all pending goose migrations from the embedded FS.
func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	_, err = provider.Up(context.Background())
	return err
}
