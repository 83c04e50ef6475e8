package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// KitCatalogPath points at a YAML kit catalog; empty means the embedded
	// default catalog.
	KitCatalogPath string

	// Historical weather lookup configuration.
	WeatherEnabled      bool
	WeatherBaseURL      string
	WeatherTimeout      time.Duration
	WeatherCacheSize    int
	CityLat             float64
	CityLon             float64
	SnowThresholdInches float64

	// Evaluation outcome event publishing.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("WEATHER_CACHE_SIZE", 366)
	if err != nil {
		return nil, err
	}

	cityLat, err := parseFloat("CITY_LAT", 41.8781)
	if err != nil {
		return nil, err
	}
	cityLon, err := parseFloat("CITY_LON", -87.6298)
	if err != nil {
		return nil, err
	}

	snowThreshold, err := parseFloat("SNOW_THRESHOLD_IN", 2.0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KitCatalogPath: os.Getenv("KIT_CATALOG_PATH"),

		WeatherEnabled:      envOrDefault("WEATHER_ENABLED", "true") == "true",
		WeatherBaseURL:      envOrDefault("WEATHER_BASE_URL", "https://archive-api.open-meteo.com"),
		WeatherTimeout:      weatherTimeout,
		WeatherCacheSize:    cacheSize,
		CityLat:             cityLat,
		CityLon:             cityLon,
		SnowThresholdInches: snowThreshold,

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "contest-evaluations"),
	}

	if cfg.CityLat < -90 || cfg.CityLat > 90 {
		return nil, errors.New("CITY_LAT must be within [-90, 90]")
	}
	if cfg.CityLon < -180 || cfg.CityLon > 180 {
		return nil, errors.New("CITY_LON must be within [-180, 180]")
	}
	if cfg.SnowThresholdInches <= 0 {
		return nil, errors.New("SNOW_THRESHOLD_IN must be positive")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
