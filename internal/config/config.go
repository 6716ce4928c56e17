// Package config loads application configuration from environment
// variables. The Config is constructed once at startup and handed to the
// components that need it; nothing reads it as ambient global state.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Default outbound timeout for the market-data provider. The upstream
// call must never run without a finite deadline.
const defaultMarketTimeout = 10 * time.Second

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Market data provider (Alpha Vantage)
	MarketBaseURL string
	MarketAPIKey  string
	MarketTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present; plain environment variables work too.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "stockview"),
		DBPassword: getEnv("DB_PASSWORD", "stockview"),
		DBName:     getEnv("DB_NAME", "stockview"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Market data
		MarketBaseURL: getEnv("MARKET_BASE_URL", "https://www.alphavantage.co/query"),
		MarketAPIKey:  os.Getenv("MARKET_API_KEY"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	cfg.JWTExpirationDur = expDur

	timeout, err := parseMarketTimeout(os.Getenv("MARKET_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	cfg.MarketTimeout = timeout

	return cfg, nil
}

// parseMarketTimeout parses the upstream request timeout and rejects
// non-positive values.
func parseMarketTimeout(s string) (time.Duration, error) {
	if s == "" {
		return defaultMarketTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid MARKET_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("MARKET_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
