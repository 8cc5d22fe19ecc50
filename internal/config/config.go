package config

import (
	"os"
	"strconv"

	"fenceline/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	APIPort string
	UIPort  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	File string
}

// AnalysisConfig holds analysis execution settings
type AnalysisConfig struct {
	Workers int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			APIPort: getEnv("PORT", "8080"),
			UIPort:  getEnv("UI_PORT", "8081"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Data: DataConfig{
			File: os.Getenv("DATA_FILE"),
		},
		Analysis: AnalysisConfig{
			Workers: 4,
		},
	}

	if workersStr := os.Getenv("ANALYSIS_WORKERS"); workersStr != "" {
		workers, err := strconv.ParseInt(workersStr, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("ANALYSIS_WORKERS must be an integer")
		}
		if workers < 1 {
			return nil, errors.ConfigInvalid("ANALYSIS_WORKERS must be at least 1")
		}
		config.Analysis.Workers = workers
	}

	return config, nil
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
