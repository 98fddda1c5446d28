package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.RunMigrations)
	assert.True(t, cfg.AllowPostedCancel)
	assert.True(t, cfg.BalanceTolerance.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_DRIVER", "BOLT")
	v.Set("LEDGER_BALANCE_TOLERANCE", "0.005")
	v.Set("LEDGER_ALLOW_POSTED_CANCEL", false)
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	v.Set("SHUTDOWN_TIMEOUT", "3s")

	cfg := fromViper(v)

	assert.Equal(t, StorageBolt, cfg.StorageDriver)
	assert.True(t, cfg.BalanceTolerance.Equal(decimal.RequireFromString("0.005")))
	assert.False(t, cfg.AllowPostedCancel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromViper_InvalidValuesFallBack(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_DRIVER", "mongo")
	v.Set("LEDGER_BALANCE_TOLERANCE", "-1")
	v.Set("DB_MAX_CONNS", 0)
	v.Set("SHUTDOWN_TIMEOUT", "soon")

	cfg := fromViper(v)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.True(t, cfg.BalanceTolerance.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
