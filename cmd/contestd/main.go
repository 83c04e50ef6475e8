// Command contestd serves the contest evaluation API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/parkfair/contest-engine/internal/adapter/httpapi"
	kafkaadapter "github.com/parkfair/contest-engine/internal/adapter/kafka"
	"github.com/parkfair/contest-engine/internal/adapter/openmeteo"
	"github.com/parkfair/contest-engine/internal/catalog"
	"github.com/parkfair/contest-engine/internal/config"
	"github.com/parkfair/contest-engine/internal/domain"
	"github.com/parkfair/contest-engine/internal/engine"
	"github.com/parkfair/contest-engine/internal/observability"
)

func main() {
	// Optional .env for local development; environment wins over file values.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	registry, err := catalog.Load(cfg.KitCatalogPath)
	if err != nil {
		logger.Error("failed to load kit catalog", "path", cfg.KitCatalogPath, "error", err)
		os.Exit(1)
	}
	metrics.KitsLoaded.Set(float64(registry.Len()))
	logger.Info("kit catalog loaded", "kits", registry.Len())

	// Weather lookup is feature-flagged; without it evaluations simply carry
	// no weather defense.
	var weather domain.WeatherLookup
	if cfg.WeatherEnabled {
		client := openmeteo.NewClient(cfg.WeatherBaseURL, cfg.CityLat, cfg.CityLon,
			cfg.SnowThresholdInches, cfg.WeatherTimeout, logger)
		weather = openmeteo.NewCachedLookup(client, cfg.WeatherCacheSize, metrics)
		logger.Info("historical weather lookup enabled",
			"lat", cfg.CityLat, "lon", cfg.CityLon, "cache_size", cfg.WeatherCacheSize)
	} else {
		logger.Info("historical weather lookup disabled")
	}

	eng := engine.New(registry, weather, logger, metrics)

	var publisher *kafkaadapter.Publisher
	var outcomes httpapi.OutcomePublisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		outcomes = publisher
		logger.Info("outcome publishing enabled", "topic", cfg.KafkaSinkTopic)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, eng, registry, outcomes, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
