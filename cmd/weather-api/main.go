package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/cyberagellc-dev/weather/internal/api/http"
	"github.com/cyberagellc-dev/weather/internal/config"
	"github.com/cyberagellc-dev/weather/internal/health"
	"github.com/cyberagellc-dev/weather/internal/weather"
	"github.com/cyberagellc-dev/weather/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	client := openweather.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, logger)

	// Upstream status registry backing the health endpoint.
	registry := health.NewRegistry(weather.UpstreamCurrent, weather.UpstreamForecast, weather.UpstreamUVIndex)

	// Core service aggregating the three upstream endpoints.
	service := weather.NewService(client, registry, logger)

	// Periodic reachability probe against the mandatory upstream.
	monitor := health.NewMonitor(registry, weather.UpstreamCurrent, cfg.ProbeInterval, func(ctx context.Context) error {
		_, err := client.Current(ctx, cfg.ProbeCity, string(weather.UnitsMetric))
		return err
	}, logger)
	if err := monitor.Start(); err != nil {
		log.Fatalf("failed to start health monitor: %v", err)
	}
	defer monitor.Stop()

	app := httpapi.New(service, registry)

	// Start server with graceful shutdown
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
