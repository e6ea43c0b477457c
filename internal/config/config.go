// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DBConnStr  string
	Port       int
	APIToken   string
	LogLevel   string
	SeriesSeed int64 // 0 means derive from the current time
}

// Load reads configuration from the environment, after loading a .env file
// if one is present
func Load() (*Config, error) {
	// A missing .env file is fine; env vars may come from the environment
	_ = godotenv.Load()

	cfg := &Config{
		DBConnStr: os.Getenv("DB_CONN_STR"),
		APIToken:  getEnv("API_TOKEN", "dev-token"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Port:      8080,
	}

	// If an explicit connection string is missing, build it from individual
	// vars (Docker friendly)
	if cfg.DBConnStr == "" {
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		password := getEnv("DB_PASSWORD", "postgres")
		dbname := getEnv("DB_NAME", "trendfolio")

		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", raw, err)
		}
		cfg.Port = port
	}

	if raw := os.Getenv("SERIES_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SERIES_SEED value %q: %w", raw, err)
		}
		cfg.SeriesSeed = seed
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
