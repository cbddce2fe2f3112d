package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port             int
	DevMode          bool
	LogLevel         string
	DatabasePath     string  // App database (risk profile estimates)
	HistoryDir       string  // Per-symbol OHLCV history databases
	ProviderURL      string  // Market-data provider base URL
	AccountBalance   float64 // Reference account size for leverage and VaR%
	MonteCarloTrials int     // Trials per Monte Carlo VaR estimate
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8000),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/analytics.db"),
		HistoryDir:       getEnv("HISTORY_DIR", "./data/history"),
		ProviderURL:      getEnv("PROVIDER_URL", "https://query1.finance.yahoo.com"),
		AccountBalance:   getEnvAsFloat("ACCOUNT_BALANCE", 10000),
		MonteCarloTrials: getEnvAsInt("MONTE_CARLO_TRIALS", 10000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.AccountBalance <= 0 {
		return fmt.Errorf("ACCOUNT_BALANCE must be positive")
	}
	if c.MonteCarloTrials <= 0 {
		return fmt.Errorf("MONTE_CARLO_TRIALS must be positive")
	}

	return nil
}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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
