package config

import (
	"os"
	"time"
)

type DatabaseConfig struct {
	// Path is the sqlite file used when URL is empty.
	Path string
	// URL selects the postgres backend when set.
	URL            string
	MigrationsPath string
}

type AuthConfig struct {
	TokenSecret string
	// DecoyPassword is hashed once at startup; login compares against the
	// resulting hash when the email does not match any user, so unknown-email
	// and wrong-password attempts cost and answer the same.
	DecoyPassword string
	TokenCacheTTL time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

type AppConfig struct {
	Port        string
	Environment string

	EnforceHTTPS bool

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	CacheEnabled bool
	CacheConfigs map[string]ResponseCacheConfig

	RedisURL string

	Database DatabaseConfig
	Auth     AuthConfig
}

// GetDefaultConfig reads the environment and fills in development defaults.
func GetDefaultConfig() *AppConfig {
	cfg := &AppConfig{
		Port:        envOr("PORT", "8080"),
		Environment: envOr("APP_ENV", "development"),

		EnforceHTTPS: os.Getenv("ENFORCE_HTTPS") == "true",

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /api/auth/register": {
				Requests: 5,
				Window:   time.Minute,
			},
			"POST /api/auth/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"GET /api/todos": {
				Requests: 100,
				Window:   time.Minute,
			},
			"POST /api/todos": {
				Requests: 20,
				Window:   time.Minute,
			},
			"default": {
				Requests: 60,
				Window:   time.Minute,
			},
		},

		CacheEnabled: true,
		CacheConfigs: map[string]ResponseCacheConfig{
			"/api/todos": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
		},

		RedisURL: os.Getenv("REDIS_URL"),

		Database: DatabaseConfig{
			Path:           envOr("DATABASE_PATH", "database.db"),
			URL:            os.Getenv("DATABASE_URL"),
			MigrationsPath: envOr("MIGRATIONS_PATH", defaultMigrationsPath()),
		},

		Auth: AuthConfig{
			TokenSecret:   envOr("TOKEN_SECRET", "local-development-secret"),
			DecoyPassword: envOr("DECOY_PASSWORD", "b9ec1f4cce35ai2c"),
			TokenCacheTTL: 5 * time.Minute,
		},
	}

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	return cfg
}

// defaultMigrationsPath follows the selected backend: the sqlite and
// postgres dialects live in separate directories and their DDL is not
// interchangeable.
func defaultMigrationsPath() string {
	if os.Getenv("DATABASE_URL") != "" {
		return "db/migrations/postgres"
	}

	return "db/migrations"
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
