package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/db"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev
// mode and the feature flag is enabled. The SQL files target postgres; a sqlite
// connection is skipped and left to gorm's auto-migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) (bool, error) {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return false, nil
	}

	dialect := client.Dialect()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir, "dialect": dialect})
	if dialect == dialectSQLite {
		logg.Info(ctx, "skipping goose migrations for sqlite")
		return false, nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return false, fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running goose migrations (dev auto-run)")
	if err := Run(ctx, sqlDB, dialect, DefaultDir, "up"); err != nil {
		return false, fmt.Errorf("running goose up: %w", err)
	}
	logg.Info(ctx, "goose migrations completed")
	return true, nil
}
