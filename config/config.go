// Package config reads the ivl settings from the environment and an optional
// .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLedger   = "IVL_LEDGER"
	EnvDatabase = "IVL_DB"
	EnvCurrency = "IVL_CURRENCY"
	EnvLogLevel = "IVL_LOG_LEVEL"
	EnvPort     = "IVL_PORT"
	EnvDevMode  = "IVL_DEV_MODE"
)

// Config holds application configuration
type Config struct {
	LedgerPath   string // JSONL ledger, "sample" for the built-in data
	DatabasePath string // when set, records are read from this SQLite database
	Currency     string
	LogLevel     string
	Port         int
	DevMode      bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LedgerPath:   getEnv(EnvLedger, "transactions.jsonl"),
		DatabasePath: getEnv(EnvDatabase, ""),
		Currency:     getEnv(EnvCurrency, "IDR"),
		LogLevel:     getEnv(EnvLogLevel, "info"),
		Port:         getEnvAsInt(EnvPort, 8080),
		DevMode:      getEnvAsBool(EnvDevMode, false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.LedgerPath == "" && c.DatabasePath == "" {
		return fmt.Errorf("IVL_LEDGER or IVL_DB is required")
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("IVL_CURRENCY must be an ISO 4217 code, got %q", c.Currency)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("IVL_PORT out of range: %d", c.Port)
	}
	return nil
}

// Addr is the address the HTTP server listens on.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
