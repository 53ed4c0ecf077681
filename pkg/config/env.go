package config

const (
	EnvPrefix = "LOVENEST"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv   = "LOVENEST_APP_ENV"
	EnvPort     = "LOVENEST_APP_PORT"
	EnvLogLevel = "LOVENEST_LOG_LEVEL"

	EnvDBDSN    = "LOVENEST_DB_DSN"
	EnvDBDriver = "LOVENEST_DB_DRIVER"

	EnvRedisURL  = "LOVENEST_REDIS_URL"
	EnvRedisAddr = "LOVENEST_REDIS_ADDR"

	EnvSnapshotBackend = "LOVENEST_SNAPSHOT_BACKEND"
	EnvSnapshotDir     = "LOVENEST_SNAPSHOT_DIR"
	EnvSnapshotTTL     = "LOVENEST_SNAPSHOT_TTL"

	EnvSessionIdleTTL = "LOVENEST_SESSION_IDLE_TTL"

	EnvCheckoutShippingFee  = "LOVENEST_CHECKOUT_SHIPPING_FEE"
	EnvCheckoutPromoCode    = "LOVENEST_CHECKOUT_PROMO_CODE"
	EnvCheckoutPromoPercent = "LOVENEST_CHECKOUT_PROMO_PERCENT"

	EnvAutoMigrate = "LOVENEST_AUTO_MIGRATE"
)
