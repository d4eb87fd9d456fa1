package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	Analysis struct {
		EndpointURL string
		APIKey      string
		Timeout     time.Duration
	}

	Stations struct {
		SeedFile      string
		ReadingMaxAge time.Duration
	}

	Sweeper struct {
		Schedule string // cron expression
	}

	Map struct {
		CenterLat float64
		CenterLon float64
		Zoom      int
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("SERVER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("SERVER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// Remote analysis endpoint configuration
	cfg.Analysis.EndpointURL = getEnv("ANALYSIS_ENDPOINT_URL", "")
	cfg.Analysis.APIKey = getEnv("ANALYSIS_API_KEY", "")
	cfg.Analysis.Timeout = parseDuration(getEnv("ANALYSIS_TIMEOUT", "20s"))

	// Station configuration
	cfg.Stations.SeedFile = getEnv("STATIONS_SEED_FILE", "")
	cfg.Stations.ReadingMaxAge = parseDuration(getEnv("READING_MAX_AGE", "1h"))

	// Stale-reading sweeper configuration
	cfg.Sweeper.Schedule = getEnv("SWEEP_SCHEDULE", "*/5 * * * *")

	// Map viewport configuration
	cfg.Map.CenterLat = parseFloat(getEnv("MAP_CENTER_LAT", "28.6139"))
	cfg.Map.CenterLon = parseFloat(getEnv("MAP_CENTER_LON", "77.2090"))
	cfg.Map.Zoom = parseInt(getEnv("MAP_ZOOM", "11"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "2"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
