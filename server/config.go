package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// defaultCORSOrigins are the editor's development and hosted origins.
var defaultCORSOrigins = []string{
	"https://sahil-kumar-technical-assessment-2.onrender.com",
	"http://localhost",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Config holds all server configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	BodyLimit     int // bytes
	CORSOrigins   []string

	// Validation history
	DatabaseURL string
	AutoMigrate bool

	// Logging and metrics
	LogLevel      string
	EnableMetrics bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8000"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		BodyLimit:     getEnvInt("BODY_LIMIT", 4*1024*1024),
		CORSOrigins:   getEnvList("CORS_ORIGINS", defaultCORSOrigins),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("BODY_LIMIT must be positive, got %d", c.BodyLimit)
	}
	for _, origin := range c.CORSOrigins {
		// Credentials are allowed, which rules out the wildcard origin.
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must list explicit origins")
		}
	}
	if c.AutoMigrate && c.DatabaseURL == "" {
		return fmt.Errorf("AUTO_MIGRATE requires DATABASE_URL")
	}
	return nil
}

// HistoryEnabled reports whether verdicts are recorded
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank items
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
