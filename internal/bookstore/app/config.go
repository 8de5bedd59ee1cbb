package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/debashispanigrahi/smartbookstore/pkg/jwtx"
)

type Config struct {
	SecretKey    string        // Required: HS256 signing secret, at least 32 bytes
	Issuer       string        // Required: issuer claim for tokens
	Audience     string        // Required: audience claim for tokens
	TokenTTL     time.Duration // Required: session token lifetime, from JWT_EXPIRATION_MINUTES

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./bookstore.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment, consulting a .env
// file first if one exists. A missing or invalid token setting fails startup
// rather than surfacing later on a per-request path.
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // best effort; real env vars win

	cfg := Config{
		SecretKey:           os.Getenv("JWT_SECRET_KEY"),
		Issuer:              os.Getenv("JWT_ISSUER"),
		Audience:            os.Getenv("JWT_AUDIENCE"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "bookstore.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	minutesStr := os.Getenv("JWT_EXPIRATION_MINUTES")
	if minutesStr == "" {
		return Config{}, fmt.Errorf("config: JWT_EXPIRATION_MINUTES is required")
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 {
		return Config{}, fmt.Errorf("config: JWT_EXPIRATION_MINUTES must be a positive integer, got %q", minutesStr)
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("config: JWT_SECRET_KEY is required")
	}
	if len(c.SecretKey) < jwtx.MinSecretBytes {
		return fmt.Errorf("config: JWT_SECRET_KEY must be at least %d bytes", jwtx.MinSecretBytes)
	}
	if c.Issuer == "" {
		return fmt.Errorf("config: JWT_ISSUER is required")
	}
	if c.Audience == "" {
		return fmt.Errorf("config: JWT_AUDIENCE is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: token lifetime must be positive")
	}
	return nil
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
