// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zapponejosh/hijri-calendar-api/internal/apikey"
	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath         string // Path to SQLite file holding conversion history
	HistoryRetentionDays int    // Days of conversion history to keep; 0 keeps everything

	// Authentication
	APIKey string // API key for the history endpoint, plaintext or Argon2id hash

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar presentation
	DefaultLanguage string // en, ar
	EventCount      int    // Upcoming events returned when no count is given
	YearsPast       int    // Selectable years before the current year
	YearsFuture     int    // Selectable years after the current year
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// MaxEventCount caps how many upcoming events a request may ask for.
const MaxEventCount = 20

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/hijri.db")
	cfg.HistoryRetentionDays = getEnvInt("HISTORY_RETENTION_DAYS", 90)

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Calendar presentation
	cfg.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", "en")
	cfg.EventCount = getEnvInt("EVENT_COUNT", calendar.DefaultEventCount)
	cfg.YearsPast = getEnvInt("YEARS_PAST", 200)
	cfg.YearsFuture = getEnvInt("YEARS_FUTURE", 100)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	if c.HistoryRetentionDays < 0 {
		errs = append(errs, fmt.Errorf("HISTORY_RETENTION_DAYS must not be negative, got %d", c.HistoryRetentionDays))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}
	if apikey.IsHash(c.APIKey) {
		if err := apikey.CheckHash(c.APIKey); err != nil {
			errs = append(errs, fmt.Errorf("API_KEY hash is malformed: %w", err))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	switch c.DefaultLanguage {
	case "en", "ar":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("DEFAULT_LANGUAGE must be one of: en, ar; got %q", c.DefaultLanguage))
	}

	if c.EventCount < 1 || c.EventCount > MaxEventCount {
		errs = append(errs, fmt.Errorf("EVENT_COUNT must be between 1 and %d, got %d", MaxEventCount, c.EventCount))
	}

	if c.YearsPast < 0 {
		errs = append(errs, fmt.Errorf("YEARS_PAST must not be negative, got %d", c.YearsPast))
	}
	if c.YearsFuture < 0 {
		errs = append(errs, fmt.Errorf("YEARS_FUTURE must not be negative, got %d", c.YearsFuture))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
