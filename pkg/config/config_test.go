package config

import (
	"testing"
	"time"

	"github.com/lovenest/storefront/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvAppEnv, "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "lovenest_session", cfg.Session.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, time.Hour, cfg.Snapshot.PurgeInterval)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.App.CORSOrigins)

	kind, err := cfg.Snapshot.Kind()
	require.NoError(t, err)
	assert.Equal(t, enums.SnapshotBackendMemory, kind)

	assert.True(t, decimal.NewFromInt(50).Equal(cfg.Checkout.FreeShippingThreshold))
	assert.True(t, decimal.RequireFromString("5.99").Equal(cfg.Checkout.ShippingFee))
	assert.True(t, decimal.RequireFromString("4.99").Equal(cfg.Checkout.GiftWrapFee))
	assert.Equal(t, "LOVE10", cfg.Checkout.PromoCode)
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.Checkout.PromoPercent))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvSnapshotBackend, "file")
	t.Setenv(EnvSnapshotDir, t.TempDir())
	t.Setenv(EnvCheckoutShippingFee, "7.50")
	t.Setenv(EnvSessionIdleTTL, "5m")

	cfg, err := Load()
	require.NoError(t, err)

	kind, err := cfg.Snapshot.Kind()
	require.NoError(t, err)
	assert.Equal(t, enums.SnapshotBackendFile, kind)
	assert.True(t, decimal.RequireFromString("7.5").Equal(cfg.Checkout.ShippingFee))
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTTL)
}

func TestLoad_RedisBackendRequiresRedis(t *testing.T) {
	t.Setenv(EnvSnapshotBackend, "redis")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvRedisAddr, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRedisURL)
}

func TestLoad_DBBackendRequiresDSN(t *testing.T) {
	t.Setenv(EnvSnapshotBackend, "db")
	t.Setenv(EnvDBDSN, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDBDSN)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv(EnvSnapshotBackend, "s3")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsPromoPercentOutOfRange(t *testing.T) {
	t.Setenv(EnvCheckoutPromoPercent, "150")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfigDialect(t *testing.T) {
	cases := map[string]string{
		"":           DBDriverPostgres,
		"postgresql": DBDriverPostgres,
		"SQLite":     DBDriverSQLite,
		"sqlite3":    DBDriverSQLite,
	}
	for input, want := range cases {
		got, err := DBConfig{Driver: input}.Dialect()
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := DBConfig{Driver: "mysql"}.Dialect()
	assert.Error(t, err)
}

func TestAppConfigEnvHelpers(t *testing.T) {
	assert.True(t, AppConfig{Env: "DEV"}.IsDev())
	assert.False(t, AppConfig{Env: "DEV"}.IsProd())
	assert.True(t, AppConfig{Env: "prod"}.IsProd())
}
