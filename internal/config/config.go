package config

import (
	"os"
)

// Config holds the application configuration.
type Config struct {
	StorePath    string // Path to the pipe-delimited customer store
	DatabasePath string // Path to the sqlite audit event database
	LogLevel     string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	return &Config{
		StorePath:    getEnv("CUSTOMERS_FILE", "./customers.txt"),
		DatabasePath: getEnv("DATABASE_PATH", "./carfleet.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
