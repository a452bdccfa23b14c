package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App            AppConfig
	Store          StoreConfig
	DB             DBConfig
	Redis          RedisConfig
	Session        SessionConfig
	Admin          AdminConfig
	Password       PasswordConfig
	AdminRateLimit AdminRateLimitConfig
	Pricing        PricingConfig
	Menu           MenuConfig
	FeatureFlags   FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if cfg.Store.UsesDatabase() {
		if cfg.FeatureFlags.UseSQLite {
			cfg.DB.Driver = DBDriverSQLite
		}
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Pricing.ExtraCheeseSurcharge.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", EnvExtraCheeseSurcharge)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BURGERSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"BURGERSHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BURGERSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BURGERSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects where the catalog comes from and whether finished orders are written back.
type StoreConfig struct {
	Mode string `envconfig:"BURGERSHOP_STORE_MODE" default:"memory"`
}

func (s StoreConfig) UsesDatabase() bool {
	return strings.EqualFold(strings.TrimSpace(s.Mode), StoreModeDatabase)
}

func (s StoreConfig) validate() error {
	mode := strings.ToLower(strings.TrimSpace(s.Mode))
	if mode != StoreModeMemory && mode != StoreModeDatabase {
		return fmt.Errorf("%s must be %q or %q, got %q", EnvStoreMode, StoreModeMemory, StoreModeDatabase, s.Mode)
	}
	return nil
}

type DBConfig struct {
	DSN    string `envconfig:"BURGERSHOP_DB_DSN"`
	Driver string `envconfig:"BURGERSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BURGERSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"BURGERSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BURGERSHOP_DB_USER"`
	LegacyPassword string `envconfig:"BURGERSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"BURGERSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"BURGERSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BURGERSHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BURGERSHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BURGERSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BURGERSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"BURGERSHOP_REDIS_URL"`
	Address      string        `envconfig:"BURGERSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"BURGERSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"BURGERSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BURGERSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BURGERSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BURGERSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BURGERSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BURGERSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured. Without one the
// terminal sessions live in process memory.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	SnapshotTTL       time.Duration `envconfig:"BURGERSHOP_SESSION_SNAPSHOT_TTL" default:"12h"`
	DefaultTerminalID string        `envconfig:"BURGERSHOP_SESSION_DEFAULT_TERMINAL" default:"counter-1"`
}

// AdminConfig holds the single admin credential. When PasswordHash is set it
// wins over the plain Password.
type AdminConfig struct {
	Password     string `envconfig:"BURGERSHOP_ADMIN_PASSWORD" default:"admin123"`
	PasswordHash string `envconfig:"BURGERSHOP_ADMIN_PASSWORD_HASH"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BURGERSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BURGERSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BURGERSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BURGERSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BURGERSHOP_ARGON_KEY_LEN" default:"32"`
}

type AdminRateLimitConfig struct {
	Window  time.Duration `envconfig:"BURGERSHOP_ADMIN_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"BURGERSHOP_ADMIN_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type PricingConfig struct {
	CurrencySymbol       string          `envconfig:"BURGERSHOP_CURRENCY_SYMBOL" default:"₹"`
	CurrencyUnit         string          `envconfig:"BURGERSHOP_CURRENCY_UNIT" default:"Rupees"`
	DecimalPlaces        int32           `envconfig:"BURGERSHOP_DECIMAL_PLACES" default:"2"`
	ExtraCheeseSurcharge decimal.Decimal `envconfig:"BURGERSHOP_EXTRA_CHEESE_SURCHARGE" default:"50"`
}

type MenuConfig struct {
	File string `envconfig:"BURGERSHOP_MENU_FILE"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BURGERSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BURGERSHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
