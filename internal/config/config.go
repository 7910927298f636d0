package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the cargo entry service
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	RedisURL string
	Entry    EntryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// BackendConfig holds the cargo shipment backend API configuration
type BackendConfig struct {
	BaseURL   string
	AuthToken string
}

// EntryConfig holds entry-workflow defaults
type EntryConfig struct {
	DefaultVATPercent float64
	SearchDebounceMS  int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8090"),
			Env:  getEnv("ENV", "development"),
		},
		Backend: BackendConfig{
			BaseURL:   getEnv("BACKEND_API_URL", ""),
			AuthToken: getEnv("BACKEND_API_TOKEN", ""),
		},
		RedisURL: getEnv("REDIS_URL", ""),
		Entry: EntryConfig{
			DefaultVATPercent: getEnvAsFloat("DEFAULT_VAT_PERCENT", 5),
			SearchDebounceMS:  getEnvAsInt("SEARCH_DEBOUNCE_MS", 300),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_API_URL is required")
	}
	if c.Entry.SearchDebounceMS <= 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must be positive")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets a float environment variable or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
