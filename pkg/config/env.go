package config

const EnvPrefix = "BURGERSHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreModeMemory   = "memory"
	StoreModeDatabase = "database"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:burgershop.db?cache=shared"
)

const (
	EnvAppEnv   = "BURGERSHOP_APP_ENV"
	EnvPort     = "BURGERSHOP_APP_PORT"
	EnvLogLevel = "BURGERSHOP_LOG_LEVEL"

	EnvStoreMode = "BURGERSHOP_STORE_MODE"

	EnvDBDSN    = "BURGERSHOP_DB_DSN"
	EnvDBDriver = "BURGERSHOP_DB_DRIVER"
	EnvDBHost   = "BURGERSHOP_DB_HOST"
	EnvDBUser   = "BURGERSHOP_DB_USER"
	EnvDBName   = "BURGERSHOP_DB_NAME"

	EnvRedisURL = "BURGERSHOP_REDIS_URL"

	EnvAdminPassword     = "BURGERSHOP_ADMIN_PASSWORD"
	EnvAdminPasswordHash = "BURGERSHOP_ADMIN_PASSWORD_HASH"

	EnvCurrencySymbol       = "BURGERSHOP_CURRENCY_SYMBOL"
	EnvCurrencyUnit         = "BURGERSHOP_CURRENCY_UNIT"
	EnvExtraCheeseSurcharge = "BURGERSHOP_EXTRA_CHEESE_SURCHARGE"

	EnvMenuFile  = "BURGERSHOP_MENU_FILE"
	EnvUseSQLite = "BURGERSHOP_USE_SQLITE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
