package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Log       LogConfig
	Snapshot  SnapshotConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// SnapshotConfig controls the scheduled refresh of materialized report snapshots.
type SnapshotConfig struct {
	Enabled  bool
	Schedule string // standard 5-field cron expression
}

// AnalyticsConfig bounds the per-book fan-out of overview and snapshot computations.
type AnalyticsConfig struct {
	MaxConcurrency int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	snapshotEnabled, err := getEnvBool("SNAPSHOT_ENABLED", true)
	if err != nil {
		return nil, err
	}

	maxConcurrency, err := getEnvInt("ANALYTICS_MAX_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	if maxConcurrency < 1 {
		return nil, fmt.Errorf("ANALYTICS_MAX_CONCURRENCY must be at least 1, got %d", maxConcurrency)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/author_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Snapshot: SnapshotConfig{
			Enabled:  snapshotEnabled,
			Schedule: getEnv("SNAPSHOT_SCHEDULE", "0 3 * * *"),
		},
		Analytics: AnalyticsConfig{
			MaxConcurrency: maxConcurrency,
		},
	}

	if _, err := cron.ParseStandard(config.Snapshot.Schedule); err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_SCHEDULE %q: %w", config.Snapshot.Schedule, err)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
