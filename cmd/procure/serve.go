package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Procure/internal/api"
	"github.com/MikeSquared-Agency/Procure/internal/config"
	"github.com/MikeSquared-Agency/Procure/internal/hermes"
	"github.com/MikeSquared-Agency/Procure/internal/metrics"
	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the decision matrix HTTP API",
		Long: `Run the decision matrix HTTP API and the metrics endpoint.

Sessions live in memory and expire after the configured idle TTL. When
hermes.url is set, matrix events are published to NATS JetStream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(os.Stdout, cfg.Logging, opts.debug)

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	scorer, err := scoring.NewScorer(cfg.Matrix, logger)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "criteria", len(cfg.Matrix.Criteria), "contexts", cfg.Matrix.Contexts())

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	store := session.NewMemoryStore()
	defer store.Close()

	manager := session.NewManager(store, scorer, session.Limits{
		MinSuppliers:     cfg.Session.MinSuppliers,
		MaxSuppliers:     cfg.Session.MaxSuppliers,
		DefaultSuppliers: cfg.Session.DefaultSuppliers,
	})

	sweeper := session.NewSweeper(store, hermesClient, cfg.SessionTTL(), cfg.SweepInterval(), logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()
	logger.Info("session sweeper started", "ttl", cfg.SessionTTL(), "interval", cfg.SweepInterval())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mc, err := metrics.New(reg, func() float64 {
		n, err := store.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(n)
	})
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// API server
	router := api.NewRouter(api.Deps{
		Scorer:    scorer,
		Sessions:  manager,
		Hermes:    hermesClient,
		Metrics:   mc,
		RateLimit: cfg.Server.RateLimitPerMin,
		Logger:    logger,
	})
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(reg),
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- fmt.Errorf("API server: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case <-sigCh:
	case <-ctx.Done():
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return runErr
}
