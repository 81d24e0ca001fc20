package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Required: expected issuer claim on access tokens

	KeyFile             string        // Optional: path to Ed25519 verification key file (default: ./registry.key)
	KeyID               string        // Optional: kid the verification key is registered under (default: registry-key)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./registry.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              os.Getenv("REGISTRY_ISSUER"),
		KeyFile:             getEnvOrDefault("REGISTRY_KEY_FILE", "registry.key"),
		KeyID:               getEnvOrDefault("REGISTRY_KEY_ID", "registry-key"),
		DatabaseFile:        getEnvOrDefault("REGISTRY_DATABASE_FILE", "registry.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "clientreg"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
