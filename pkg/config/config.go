package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/lovenest/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Snapshot     SnapshotConfig
	Session      SessionConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations where the selected snapshot backend has no
// infrastructure configured behind it.
func (c *Config) Validate() error {
	backend, err := c.Snapshot.Kind()
	if err != nil {
		return err
	}
	switch backend {
	case enums.SnapshotBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis snapshot backend", EnvRedisURL, EnvRedisAddr)
		}
	case enums.SnapshotBackendDB:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the db snapshot backend", EnvDBDSN)
		}
	case enums.SnapshotBackendFile:
		if strings.TrimSpace(c.Snapshot.Dir) == "" {
			return fmt.Errorf("%s is required for the file snapshot backend", EnvSnapshotDir)
		}
	}
	if _, err := c.DB.Dialect(); err != nil {
		return err
	}
	if c.Checkout.PromoPercent.IsNegative() || c.Checkout.PromoPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%s must be between 0 and 100", EnvCheckoutPromoPercent)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"LOVENEST_APP_ENV" default:"dev"`
	Port         string `envconfig:"LOVENEST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOVENEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOVENEST_LOG_WARN_STACK" default:"false"`

	// CORSOrigins lists frontend origins allowed to call the API with cookies.
	CORSOrigins []string `envconfig:"LOVENEST_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LOVENEST_DB_DSN"`
	Driver string `envconfig:"LOVENEST_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"LOVENEST_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LOVENEST_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LOVENEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOVENEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Dialect returns the normalized driver name (postgres or sqlite).
func (d DBConfig) Dialect() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(d.Driver))
	switch driver {
	case "", DBDriverPostgres, "postgresql":
		return DBDriverPostgres, nil
	case DBDriverSQLite, "sqlite3":
		return DBDriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported %s %q", EnvDBDriver, d.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"LOVENEST_REDIS_URL"`
	Address      string        `envconfig:"LOVENEST_REDIS_ADDR"`
	Password     string        `envconfig:"LOVENEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOVENEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOVENEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOVENEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOVENEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOVENEST_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LOVENEST_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type SnapshotConfig struct {
	Backend      string        `envconfig:"LOVENEST_SNAPSHOT_BACKEND" default:"memory"`
	Dir          string        `envconfig:"LOVENEST_SNAPSHOT_DIR" default:".data/carts"`
	TTL          time.Duration `envconfig:"LOVENEST_SNAPSHOT_TTL" default:"720h"`
	WriteTimeout time.Duration `envconfig:"LOVENEST_SNAPSHOT_WRITE_TIMEOUT" default:"2s"`

	// PurgeInterval is how often expired snapshots are deleted in bulk from
	// backends that support it (file, db).
	PurgeInterval time.Duration `envconfig:"LOVENEST_SNAPSHOT_PURGE_INTERVAL" default:"1h"`
}

// Kind parses the configured backend name.
func (s SnapshotConfig) Kind() (enums.SnapshotBackend, error) {
	kind, err := enums.ParseSnapshotBackend(s.Backend)
	if err != nil {
		return "", fmt.Errorf("%s: %w", EnvSnapshotBackend, err)
	}
	return kind, nil
}

type SessionConfig struct {
	CookieName    string        `envconfig:"LOVENEST_SESSION_COOKIE" default:"lovenest_session"`
	CookieSecure  bool          `envconfig:"LOVENEST_SESSION_COOKIE_SECURE" default:"false"`
	IdleTTL       time.Duration `envconfig:"LOVENEST_SESSION_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"LOVENEST_SESSION_SWEEP_INTERVAL" default:"1m"`
}

type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"LOVENEST_CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"50"`
	ShippingFee           decimal.Decimal `envconfig:"LOVENEST_CHECKOUT_SHIPPING_FEE" default:"5.99"`
	GiftWrapFee           decimal.Decimal `envconfig:"LOVENEST_CHECKOUT_GIFT_WRAP_FEE" default:"4.99"`
	PromoCode             string          `envconfig:"LOVENEST_CHECKOUT_PROMO_CODE" default:"LOVE10"`
	PromoPercent          decimal.Decimal `envconfig:"LOVENEST_CHECKOUT_PROMO_PERCENT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LOVENEST_AUTO_MIGRATE" default:"false"`
}
