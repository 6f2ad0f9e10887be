package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	MongoURL        string
	MongoDatabase   string
	MongoCollection string
	LogLevel        string
	HealthSchedule  string
	ShutdownTimeout time.Duration
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables take precedence over it. A .env file that exists but cannot be
// read or parsed is an error.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURL:        getEnv("MONGO_URL", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "user_service"),
		MongoCollection: getEnv("MONGO_COLLECTION", "users"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HealthSchedule:  getEnv("HEALTH_SCHEDULE", "@every 30s"),
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.MongoDatabase == "" {
		return nil, fmt.Errorf("MONGO_DATABASE is required")
	}
	if cfg.MongoCollection == "" {
		return nil, fmt.Errorf("MONGO_COLLECTION is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
