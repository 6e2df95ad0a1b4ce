package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttakrutt/guildsite/internal/app"
	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/guttakrutt/guildsite/internal/repository"
	"github.com/guttakrutt/guildsite/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	dialect := repository.ResolveDialect(cfg.DBType)
	dsn := cfg.PostgresDSN()
	if dialect == repository.DialectMySQL {
		dsn = cfg.MySQLDSN()
	}
	if err := infra.RunMigrations(string(dialect), dsn, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	store, err := repository.NewStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer store.Close()
	logger.Info("connected to database", "dialect", store.Dialect())

	var pgPool *pgxpool.Pool
	if pooler, ok := store.(interface{ Pool() *pgxpool.Pool }); ok {
		pgPool = pooler.Pool()
	}
	sessions := session.NewStore(ctx, store.Dialect(), pgPool, logger)

	userExpiry, err := time.ParseDuration(cfg.JWTUserExpiry)
	if err != nil {
		return fmt.Errorf("parse user JWT expiry: %w", err)
	}
	adminExpiry, err := time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return fmt.Errorf("parse admin JWT expiry: %w", err)
	}
	retention, err := time.ParseDuration(cfg.WebLogRetention)
	if err != nil {
		return fmt.Errorf("parse web log retention: %w", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, userExpiry, adminExpiry)

	producer := infra.NewAuditProducer(cfg.KafkaBrokers, cfg.AuditTopic, cfg.KafkaEnabled, logger)
	defer producer.Close()

	deps := app.RouterDeps{
		Store:      store,
		Sessions:   sessions,
		JWTMgr:     jwtMgr,
		Producer:   producer,
		Logger:     logger,
		CORSOrigin: cfg.CORSAllowedOrigins,
	}
	svcs := app.NewServices(deps)
	svcs.Audit.StartPruner(ctx, time.Hour, retention)

	r := app.NewRouter(deps, svcs)

	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
