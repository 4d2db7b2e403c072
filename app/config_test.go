package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "WEBHOOK_TIMEOUT", "WEBHOOK_WORKERS", "CHECKOUT_APPLY_TAX", "UNPAID_ORDER_TTL", "ADMIN_ENABLED", "CURRENCY", "SESSION_CACHE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, 4, cfg.WebhookWorkers)
	assert.Equal(t, 24*time.Hour, cfg.UnpaidOrderTTL)
	assert.Equal(t, "@every 15m", cfg.ExpirySchedule)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 10000, cfg.SessionCacheSize)
	assert.False(t, cfg.ApplyTax)
	assert.False(t, cfg.AdminEnabled)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("ENV", "production")
	t.Setenv("WEBHOOK_TIMEOUT", "3s")
	t.Setenv("CHECKOUT_APPLY_TAX", "true")
	t.Setenv("UNPAID_ORDER_TTL", "48h")
	t.Setenv("ADMIN_ENABLED", "1")
	t.Setenv("DATABASE_URL", "postgres://lp@db/shop")

	cfg := LoadConfig()
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.WebhookTimeout)
	assert.True(t, cfg.ApplyTax)
	assert.Equal(t, 48*time.Hour, cfg.UnpaidOrderTTL)
	assert.True(t, cfg.AdminEnabled)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, "postgres://lp@db/shop", cfg.Database.URL)
}
