package api

import (
	"io/fs"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Fantasim/netbalance/internal/api/handlers"
	"github.com/Fantasim/netbalance/internal/api/middleware"
	"github.com/Fantasim/netbalance/internal/balance"
	"github.com/Fantasim/netbalance/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(session *balance.Session, view *balance.View, staticFS fs.FS) chi.Router {
	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.HostCheck)
	r.Use(middleware.CORS)
	r.Use(middleware.CSRF)
	r.Use(middleware.BodyLimit(config.MaxRequestBodyBytes))

	slog.Info("router initialized",
		"middleware", []string{"requestLogging", "hostCheck", "cors", "csrf", "bodyLimit"},
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(session, Version))
		r.Get("/networks", handlers.ListNetworks(session))
		r.Get("/session", handlers.GetSession(view))
		r.Put("/session/network", handlers.SwitchNetwork(session, view))
		r.Post("/balance", handlers.QueryBalance(session, view))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/*", handlers.PageHandler(staticFS))

	return r
}
