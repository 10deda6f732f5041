package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/application/services"
	"github.com/DanielPopoola/claimpay/internal/config"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/cache"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/metrics"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest/middleware"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the claimpay HTTP API.

Examples:
  claimpay serve
  claimpay serve --migrate`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting claimpay",
		"version", Version,
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if serveMigrate {
		if err := postgres.NewMigrator(db, cfg.Database.MigrationsPath, cfg.Database.Name, logger).Up(); err != nil {
			return err
		}
	}

	var appMetrics application.Metrics = application.NoopMetrics{}
	var promMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		promMetrics = metrics.New()
		appMetrics = promMetrics
	}

	uow := postgres.NewTransactionCoordinator(db)
	deps := handlers.Dependencies{
		Processor: services.NewProcessPaymentService(uow, appMetrics, logger),
		Lifecycle: services.NewLifecycleService(uow, appMetrics, logger),
		Queries:   services.NewQueryService(postgres.NewPaymentStore(db)),
		Database:  db,
	}

	var idempotency *cache.IdempotencyStore
	if cfg.Redis.Enabled() {
		client := cache.NewClient(cfg.Redis)
		defer client.Close()

		idempotency = cache.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL, cache.DefaultLockTTL)
		if err := idempotency.Ping(ctx); err != nil {
			logger.Warn("redis unreachable at startup, idempotent replay degraded", "addr", cfg.Redis.Addr, "error", err)
		}
		deps.Cache = idempotency
	} else {
		logger.Info("redis not configured, idempotent replay disabled")
	}

	router, err := api.NewRouter(ctx)
	if err != nil {
		return fmt.Errorf("load openapi document: %w", err)
	}

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	handlers.NewHandlers(deps, logger).RegisterRoutes(mux)
	if promMetrics != nil {
		mux.Handle("GET "+cfg.Metrics.Path, promMetrics.Handler())
	}

	handler := middleware.OpenAPIValidator(router)(mux)
	if idempotency != nil {
		handler = middleware.Idempotency(idempotency, logger)(handler)
	}
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)
	if promMetrics != nil {
		handler = middleware.Metrics(mux, promMetrics)(handler)
	}
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited")
	return nil
}
