package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/burgershop-backend/api/controllers"
	"github.com/angelmondragon/burgershop-backend/api/routes"
	"github.com/angelmondragon/burgershop-backend/internal/bootstrap"
	"github.com/angelmondragon/burgershop-backend/internal/terminals"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/metrics"
	"github.com/angelmondragon/burgershop-backend/pkg/redis"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()

	rt, err := bootstrap.Build(ctx, cfg, logg, reg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap session manager", err)
		os.Exit(1)
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	var (
		store       terminals.Store = terminals.NewMemoryStore()
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		store, err = terminals.NewRedisStore(redisClient, cfg.Session.SnapshotTTL)
		if err != nil {
			logg.Error(ctx, "failed to create terminal store", err)
			os.Exit(1)
		}
	}

	terminalService, err := terminals.NewService(rt.Manager, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create terminal service", err)
		os.Exit(1)
	}

	var dbPinger controllers.Pinger
	if rt.DB != nil {
		dbPinger = rt.DB
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbPinger, redisClient, terminalService, metrics.Handler(reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
	}()

	logg.Info(logg.WithFields(ctx, map[string]any{
		"addr":       addr,
		"env":        cfg.App.Env,
		"store_mode": cfg.Store.Mode,
		"redis":      redisClient != nil,
	}), "api server starting")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "api server stopped")
}
