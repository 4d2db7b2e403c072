package app

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"

	"legacy-peptides/db"
)

// Config holds every setting read from the environment
type Config struct {
	Env  string
	Port string

	Database db.Config

	WebhookURL     string
	WebhookTimeout time.Duration
	WebhookWorkers int

	SessionSecret    string
	SessionCacheSize int
	SecureCookies    bool

	StrengthTablePath string
	ApplyTax          bool
	Currency          string

	UnpaidOrderTTL time.Duration
	ExpirySchedule string

	AdminEnabled bool

	LogLevel string
	LogFile  string
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// LoadConfig reads the configuration from the environment, applying defaults
func LoadConfig() *Config {
	cfg := &Config{
		Env:  env("ENV", "development"),
		Port: strings.TrimPrefix(env("PORT", "8080"), ":"),
		Database: db.Config{
			URL:      env("DATABASE_URL", ""),
			Host:     env("DB_HOST", ""),
			Port:     env("DB_PORT", "5432"),
			User:     env("DB_USER", ""),
			Password: env("DB_PASSWORD", ""),
			Name:     env("DB_NAME", ""),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		WebhookURL:        env("ORDER_WEBHOOK_URL", ""),
		WebhookTimeout:    cast.ToDuration(env("WEBHOOK_TIMEOUT", "10s")),
		WebhookWorkers:    cast.ToInt(env("WEBHOOK_WORKERS", "4")),
		SessionSecret:     env("SESSION_SECRET", ""),
		SessionCacheSize:  cast.ToInt(env("SESSION_CACHE_SIZE", "10000")),
		StrengthTablePath: env("STRENGTH_TABLE_PATH", ""),
		ApplyTax:          cast.ToBool(env("CHECKOUT_APPLY_TAX", "false")),
		Currency:          strings.ToUpper(env("CURRENCY", "USD")),
		UnpaidOrderTTL:    cast.ToDuration(env("UNPAID_ORDER_TTL", "24h")),
		ExpirySchedule:    env("EXPIRY_SCHEDULE", "@every 15m"),
		AdminEnabled:      cast.ToBool(env("ADMIN_ENABLED", "false")),
		LogLevel:          env("LOG_LEVEL", "info"),
		LogFile:           env("LOG_FILE", ""),
	}

	cfg.SecureCookies = cfg.IsProduction()
	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = 10 * time.Second
	}
	if cfg.SessionCacheSize <= 0 {
		cfg.SessionCacheSize = 10000
	}
	if cfg.UnpaidOrderTTL <= 0 {
		cfg.UnpaidOrderTTL = 24 * time.Hour
	}
	return cfg
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address; 0.0.0.0 so containers accept outside connections
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
