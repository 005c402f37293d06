package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Upstream    UpstreamConfig
	Redis       RedisConfig
	Session     SessionConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Catalog     CatalogConfig
}

// UpstreamConfig points at the core inventory/sales API this gateway consumes.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

type CatalogConfig struct {
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("UPSTREAM_TIMEOUT", "30s")
	viper.SetDefault("SESSION_TTL", "12h")
	viper.SetDefault("CATALOG_CACHE_TTL", "5m")
	viper.SetDefault("RATE_LIMIT_CLEANUP_INTERVAL", "5m")
	viper.SetDefault("RATE_LIMIT_ENTRY_TTL", "10m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	upstreamTimeout, err := time.ParseDuration(getEnvOrViper("UPSTREAM_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getEnvOrViper("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	catalogTTL, err := time.ParseDuration(getEnvOrViper("CATALOG_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnvOrViper("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnvOrViper("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	rateCleanup, err := time.ParseDuration(getEnvOrViper("RATE_LIMIT_CLEANUP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CLEANUP_INTERVAL: %w", err)
	}
	rateEntryTTL, err := time.ParseDuration(getEnvOrViper("RATE_LIMIT_ENTRY_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_ENTRY_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Upstream: UpstreamConfig{
			BaseURL: getEnvOrViper("UPSTREAM_BASE_URL", ""),
			Timeout: upstreamTimeout,
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", ""),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Session: SessionConfig{
			CookieName:   getEnvOrViper("SESSION_COOKIE_NAME", "adminapi_session"),
			TTL:          sessionTTL,
			CookieSecure: getEnvOrViper("ENVIRONMENT", "development") == "production",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnvOrViper("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
			CleanupInterval:   rateCleanup,
			EntryTTL:          rateEntryTTL,
		},
		Catalog: CatalogConfig{
			CacheTTL: catalogTTL,
		},
	}

	// Validate required fields
	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
