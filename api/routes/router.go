package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/burgershop-backend/api/controllers"
	"github.com/angelmondragon/burgershop-backend/api/middleware"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/redis"
)

// NewRouter wires the counter API. dbP and redisClient may be nil when the
// service runs with in-memory storage; metricsHandler may be nil to skip /metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	terminalService controllers.TerminalService,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	readyDeps := map[string]controllers.Pinger{}
	if dbP != nil {
		readyDeps["db"] = dbP
	}
	var limiter middleware.RateLimiter
	if redisClient != nil {
		readyDeps["redis"] = redisClient
		limiter = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	adminLimit := middleware.NewRateLimitPolicy("admin", cfg.AdminRateLimit.Window, cfg.AdminRateLimit.IPLimit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Terminal(cfg.Session.DefaultTerminalID, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(terminalService))
			r.Post("/", controllers.CatalogAdd(terminalService, logg))
		})
		r.Get("/add-ons", controllers.AddOnList(terminalService))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionGet(terminalService, logg))
			r.Put("/customer", controllers.SessionSetCustomer(terminalService, logg))
			r.With(middleware.AdminRateLimit(adminLimit, limiter, logg)).
				Post("/admin", controllers.AdminEnter(terminalService, logg))
			r.Delete("/admin", controllers.AdminExit(terminalService, logg))
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", controllers.OrderView(terminalService, logg))
			r.Post("/finish", controllers.OrderFinish(terminalService, logg))
			r.Route("/items", func(r chi.Router) {
				r.Post("/", controllers.OrderSelectItem(terminalService, logg))
				r.Post("/current/add-ons", controllers.OrderAddAddOn(terminalService, logg))
				r.Put("/current/extra-cheese", controllers.OrderExtraCheese(terminalService, logg))
				r.Post("/current/done", controllers.OrderDoneCustomizing(terminalService, logg))
				r.Delete("/{position}", controllers.OrderDeleteItem(terminalService, logg))
			})
		})
	})

	return r
}
