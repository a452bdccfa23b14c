package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/burgershop-backend/api/responses"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

const (
	envHeader    = "X-BurgerShop-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency. Nil entries are skipped so
// memory-only deployments report ready without a database or redis.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		var failed []string
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = append(failed, name)
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"dependency": name, "error": err.Error()}), "health.dependency_down")
				}
				continue
			}
			checks[name] = "up"
		}

		if len(failed) > 0 {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
				WithDetails(map[string]any{"checks": checks}))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
