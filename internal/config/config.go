package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Chart  ChartConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	MaxUploadMB int
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string
	Development bool
}

// ChartConfig holds server-side PNG chart dimensions
type ChartConfig struct {
	Width  int
	Height int
}

// MaxUploadBytes is the request body limit derived from MaxUploadMB.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// Load reads a .env file when present, then configuration from environment
// variables, and validates it.
func Load() (*Config, error) {
	// A missing .env is normal; the process environment is used as-is
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 10),
		},
		Log: LogConfig{
			Level:       getEnvOrDefault("LOG_LEVEL", "info"),
			Development: getEnvBoolOrDefault("LOG_DEVELOPMENT", false),
		},
		Chart: ChartConfig{
			Width:  getEnvIntOrDefault("CHART_WIDTH", 800),
			Height: getEnvIntOrDefault("CHART_HEIGHT", 500),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.Log.Level)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
