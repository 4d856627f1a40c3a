package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/app"
	"storefront/internal/catalog"
	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP API",
		Long: `Run the HTTP API on APP_PORT.

Order events go to RabbitMQ when RABBITMQ_URL is set, and metrics are
exported over OTLP when OTEL_EXPORTER_OTLP_ENDPOINT is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	cfg, log := c.cfg, c.logger

	// --- Metrics ---
	provider, err := metrics.NewProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics shutdown failed", zap.Error(err))
		}
	}()
	appMetrics, err := metrics.New(provider.Meter(cfg.OTELServiceName))
	if err != nil {
		return err
	}

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, provider)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// --- Catalog ---
	products := catalog.NewGenerator(cfg.CatalogSeed, cfg.CatalogPerCategory).Generate()
	log.Info("catalog generated", zap.Int("products", len(products)))

	// --- RabbitMQ (optional) ---
	var publisher services.OrderEventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Named("rabbitmq"))
		if err != nil {
			log.Warn("RabbitMQ unavailable, order events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	srv, err := app.New(app.Deps{
		Config:    cfg,
		DB:        db,
		Products:  products,
		Publisher: publisher,
		Logger:    log,
		Metrics:   appMetrics,
		AccessLog: true,
	})
	if err != nil {
		return err
	}

	if mqClient != nil {
		if err := mqClient.ConsumeOrderEvents(srv.Orders.HandleOrderEvent); err != nil {
			log.Warn("failed to start order event consumer", zap.Error(err))
		}
	}

	// --- Start HTTP Server ---
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort))
		errCh <- srv.App.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}
