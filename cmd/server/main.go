package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enviro-dashboard/internal/api"
	"enviro-dashboard/internal/config"
	"enviro-dashboard/internal/observability"
	"enviro-dashboard/internal/scheduler"
	"enviro-dashboard/internal/services"
	"enviro-dashboard/internal/store"
	"enviro-dashboard/internal/web"
	"enviro-dashboard/pkg/client"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Environmental Station Dashboard")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Parse embedded dashboard templates
	if err := web.LoadTemplates(); err != nil {
		logger.Fatal("Failed to load dashboard templates", zap.Error(err))
	}

	// Metrics
	metrics := observability.NewMetrics()

	// Initialize station store
	stationStore := store.NewStationStore(logger)
	if cfg.Stations.SeedFile != "" {
		if err := stationStore.SeedFromFile(cfg.Stations.SeedFile); err != nil {
			logger.Fatal("Failed to seed stations from file",
				zap.String("path", cfg.Stations.SeedFile),
				zap.Error(err))
		}
	} else {
		stationStore.Seed(store.DefaultStations())
	}
	metrics.StationsTracked.Set(float64(stationStore.Count()))

	// Initialize advisor
	var fetcher services.SuggestionFetcher
	if cfg.Analysis.EndpointURL != "" {
		clientConfig := client.ClientConfig{
			Timeout:        cfg.Analysis.Timeout,
			MaxRetries:     cfg.Retry.MaxRetries,
			RetryDelay:     cfg.Retry.Delay,
			Multiplier:     cfg.Retry.Multiplier,
			Threshold:      cfg.CircuitBreaker.Threshold,
			BreakerTimeout: cfg.CircuitBreaker.Timeout,
		}
		fetcher = client.NewAdvisorClient(cfg.Analysis.EndpointURL, cfg.Analysis.APIKey, clientConfig, logger)
		logger.Info("Remote analysis client initialized",
			zap.String("endpoint", cfg.Analysis.EndpointURL))
	} else {
		logger.Info("No analysis endpoint configured, using local threshold evaluation only")
	}
	advisor := services.NewAdvisor(fetcher, metrics, logger)

	// Initialize stale-reading sweeper
	sweeper := scheduler.NewSweeper(
		stationStore,
		metrics,
		cfg.Sweeper.Schedule,
		cfg.Stations.ReadingMaxAge,
		logger,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(stationStore, advisor, sweeper, metrics, cfg, logger)
	api.SetupRoutes(app, handler, logger)

	// Start sweeper
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start sweeper", zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop sweeper
	sweeper.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	zap.L().Error("Request failed",
		zap.Int("status", code),
		zap.String("path", c.Path()),
		zap.Error(err))

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
