package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Storage
	Storage    string
	StorageKey string
	DataDir    string
	SQLitePath string

	// Database
	DatabaseURL string

	// Redis
	RedisURL       string
	RedisNamespace string

	// WebDAV
	WebDAVURL      string
	WebDAVUsername string
	WebDAVPassword string

	// Remote storage guard
	StorageTimeout     time.Duration
	BreakerMaxFailures int
	BreakerTimeout     time.Duration

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from a .env file, if present, and the environment.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dataDir := getEnv("TASKDECK_DATA_DIR", defaultDataDir())

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Storage:    getEnv("TASKDECK_STORAGE", "sqlite"),
		StorageKey: getEnv("TASKDECK_STORAGE_KEY", "tasks"),
		DataDir:    dataDir,
		SQLitePath: getEnv("SQLITE_PATH", filepath.Join(dataDir, "taskdeck.db")),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		RedisNamespace: getEnv("REDIS_NAMESPACE", "taskdeck"),

		WebDAVURL:      getEnv("WEBDAV_URL", ""),
		WebDAVUsername: getEnv("WEBDAV_USERNAME", ""),
		WebDAVPassword: getEnv("WEBDAV_PASSWORD", ""),

		StorageTimeout:     getDurationEnv("STORAGE_TIMEOUT", 5*time.Second),
		BreakerMaxFailures: getIntEnv("BREAKER_MAX_FAILURES", 3),
		BreakerTimeout:     getDurationEnv("BREAKER_TIMEOUT", 30*time.Second),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot fall back to a default.
func (c *Config) Validate() error {
	switch c.Storage {
	case "memory", "file", "sqlite", "postgres", "redis", "webdav":
	default:
		return fmt.Errorf("invalid TASKDECK_STORAGE %q", c.Storage)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("TASKDECK_STORAGE_KEY must not be empty")
	}
	if c.BreakerMaxFailures < 1 {
		return fmt.Errorf("BREAKER_MAX_FAILURES must be at least 1")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".taskdeck")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
