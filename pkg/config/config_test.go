package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Store.UsesDatabase() {
		t.Fatalf("expected memory store by default")
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("expected redis to be disabled without url or address")
	}
	if cfg.Admin.Password != "admin123" {
		t.Fatalf("unexpected default admin password %q", cfg.Admin.Password)
	}
	if cfg.Pricing.CurrencySymbol != "₹" || cfg.Pricing.CurrencyUnit != "Rupees" {
		t.Fatalf("unexpected currency defaults %q %q", cfg.Pricing.CurrencySymbol, cfg.Pricing.CurrencyUnit)
	}
	if !cfg.Pricing.ExtraCheeseSurcharge.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected surcharge 50, got %s", cfg.Pricing.ExtraCheeseSurcharge)
	}
	if got := cfg.Session.SnapshotTTL; got != 12*time.Hour {
		t.Fatalf("expected snapshot ttl 12h, got %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_InvalidStoreMode(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreMode, "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown store mode to fail")
	}
}

func TestLoad_DatabaseModeRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreMode, "database")

	_, err := Load()
	if err == nil {
		t.Fatal("expected database mode without dsn to fail")
	}
	if !strings.Contains(err.Error(), EnvDBDSN) {
		t.Fatalf("expected error to mention %s, got %v", EnvDBDSN, err)
	}
}

func TestLoad_DatabaseModeBuildsLegacyDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreMode, "database")
	t.Setenv(EnvDBHost, "db.local")
	t.Setenv(EnvDBUser, "shop")
	t.Setenv(EnvDBName, "burgers")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://shop@db.local:5432/burgers?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", cfg.DB.DSN)
	}
}

func TestLoad_SQLiteFlagDefaultsDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreMode, "database")
	t.Setenv(EnvUseSQLite, "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN != defaultSQLiteDSN {
		t.Fatalf("unexpected sqlite dsn %q", cfg.DB.DSN)
	}
}

func TestLoad_PricingOverrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCurrencySymbol, "$")
	t.Setenv(EnvCurrencyUnit, "Dollars")
	t.Setenv(EnvExtraCheeseSurcharge, "1.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Pricing.CurrencySymbol != "$" || cfg.Pricing.CurrencyUnit != "Dollars" {
		t.Fatalf("unexpected currency %q %q", cfg.Pricing.CurrencySymbol, cfg.Pricing.CurrencyUnit)
	}
	if !cfg.Pricing.ExtraCheeseSurcharge.Equal(decimal.RequireFromString("1.25")) {
		t.Fatalf("unexpected surcharge %s", cfg.Pricing.ExtraCheeseSurcharge)
	}
}

func TestLoad_NegativeSurchargeRejected(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvExtraCheeseSurcharge, "-5")

	if _, err := Load(); err == nil {
		t.Fatal("expected negative surcharge to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvStoreMode, "memory")
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBHost, "")
	t.Setenv(EnvDBUser, "")
	t.Setenv(EnvDBName, "")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvUseSQLite, "false")
	t.Setenv(EnvExtraCheeseSurcharge, "50")
	t.Setenv(EnvCurrencySymbol, "₹")
	t.Setenv(EnvCurrencyUnit, "Rupees")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
