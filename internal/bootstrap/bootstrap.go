// Package bootstrap assembles the session manager from configuration. The API
// server and the counter console share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/gateway"
	"github.com/angelmondragon/burgershop-backend/internal/menu"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/db"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/metrics"
	"github.com/angelmondragon/burgershop-backend/pkg/migrate"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

// Runtime holds what a binary needs after startup. DB and Gateway are nil in
// memory store mode.
type Runtime struct {
	Manager *session.Manager
	DB      *db.Client
	Gateway *gateway.Repository
}

// Build loads the menu, opens the database when the store mode asks for one
// and returns a ready session manager. reg may be nil. Database failures are
// logged and leave the catalog empty; only a bad menu file or manager options
// fail the build.
func Build(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) (*Runtime, error) {
	m, err := loadMenu(cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{}
	cat := catalog.FromItems(m.Items)

	if cfg.Store.UsesDatabase() {
		rt.openDatabase(ctx, cfg, logg, m.Items)
		var loader catalog.Loader
		if rt.Gateway != nil {
			loader = rt.Gateway
		}
		cat = catalog.Load(ctx, loader, logg)
	}

	opts := session.Options{
		Catalog:         cat,
		AddOns:          m.AddOns,
		Authenticator:   session.NewPasswordAuthenticator(cfg.Admin),
		Formatter:       money.FromConfig(cfg.Pricing),
		CheeseSurcharge: cfg.Pricing.ExtraCheeseSurcharge,
		Logger:          logg,
		Metrics:         metrics.NewOrderMetrics(reg),
	}
	if rt.Gateway != nil {
		opts.Gateway = rt.Gateway
	}

	manager, err := session.NewManager(opts)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("create session manager: %w", err)
	}
	rt.Manager = manager
	return rt, nil
}

func loadMenu(cfg *config.Config) (menu.Menu, error) {
	if cfg.Menu.File == "" {
		return menu.Menu{Items: catalog.NewSeeded().List(), AddOns: burger.DefaultAddOns()}, nil
	}
	m, err := menu.LoadFile(cfg.Menu.File)
	if err != nil {
		return menu.Menu{}, fmt.Errorf("load menu %s: %w", cfg.Menu.File, err)
	}
	return m, nil
}

// openDatabase leaves rt.Gateway nil when the connection cannot be opened.
// Later steps that fail are logged and skipped.
func (rt *Runtime) openDatabase(ctx context.Context, cfg *config.Config, logg *logger.Logger, seed []catalog.Item) {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "bootstrap.database_open_failed", err)
		return
	}
	rt.DB = client

	if _, err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
		logg.Error(ctx, "bootstrap.dev_migrations_failed", err)
	}

	repo, err := gateway.NewRepository(client.DB())
	if err != nil {
		logg.Error(ctx, "bootstrap.gateway_failed", err)
		return
	}
	rt.Gateway = repo

	if cfg.DB.IsSQLite() {
		if err := repo.EnsureSchema(ctx); err != nil {
			logg.Error(ctx, "bootstrap.schema_failed", err)
		}
	}

	var seeded int
	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo, err := gateway.NewRepository(tx)
		if err != nil {
			return err
		}
		seeded, err = txRepo.SeedIfEmpty(ctx, seed)
		return err
	})
	if err != nil {
		logg.Error(ctx, "bootstrap.seed_failed", err)
		return
	}
	if seeded > 0 {
		logg.Info(logg.WithField(ctx, "burgers", seeded), "bootstrap.menu_seeded")
	}
}

// Close releases the database connection, if any.
func (rt *Runtime) Close() error {
	if rt == nil || rt.DB == nil {
		return nil
	}
	return rt.DB.Close()
}
