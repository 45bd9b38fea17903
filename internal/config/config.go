package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Satellite catalog feed. Credentials are supplied out of band; an empty
	// pair is valid configuration and makes the catalog endpoint serve the
	// fallback dataset.
	CatalogBaseURL  string
	CatalogUser     string
	CatalogPassword string
	CatalogTimeout  time.Duration

	// Close-approach feed.
	NEOBaseURL string
	NEOAPIKey  string
	NEOTimeout time.Duration

	// Upstream response cache.
	CacheTTL  time.Duration
	CacheSize int

	// Result limit defaults and server-side clamp.
	DefaultLimit int
	MaxLimit     int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	catalogTimeout, err := parseDuration("CATALOG_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	neoTimeout, err := parseDuration("NEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("CACHE_TTL", "1h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CatalogBaseURL:  envOrDefault("CATALOG_BASE_URL", "https://www.space-track.org"),
		CatalogUser:     os.Getenv("CATALOG_USER"),
		CatalogPassword: os.Getenv("CATALOG_PASSWORD"),
		CatalogTimeout:  catalogTimeout,

		NEOBaseURL: envOrDefault("NEO_BASE_URL", "https://api.nasa.gov/neo/rest/v1"),
		NEOAPIKey:  envOrDefault("NEO_API_KEY", "DEMO_KEY"),
		NEOTimeout: neoTimeout,

		CacheTTL:  cacheTTL,
		CacheSize: envIntOrDefault("CACHE_SIZE", 256),

		DefaultLimit: envIntOrDefault("DEFAULT_LIMIT", 1000),
		MaxLimit:     envIntOrDefault("MAX_LIMIT", 5000),
	}

	if cfg.CatalogBaseURL == "" {
		return nil, errors.New("CATALOG_BASE_URL is required")
	}
	if cfg.NEOBaseURL == "" {
		return nil, errors.New("NEO_BASE_URL is required")
	}
	if cfg.CacheSize <= 0 {
		return nil, errors.New("CACHE_SIZE must be positive")
	}
	if cfg.DefaultLimit <= 0 || cfg.MaxLimit <= 0 || cfg.DefaultLimit > cfg.MaxLimit {
		return nil, errors.New("DEFAULT_LIMIT and MAX_LIMIT must be positive with DEFAULT_LIMIT <= MAX_LIMIT")
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return defaultVal
}

func parseDuration(key, defaultVal string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, defaultVal))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
