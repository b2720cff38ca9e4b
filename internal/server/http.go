package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/folio/internal/adapters/api"
	"github.com/philly/folio/internal/adapters/rest"
	"github.com/philly/folio/internal/adapters/rest/middleware"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPServer creates and configures the HTTP server with all routes
func NewHTTPServer(
	config Config,
	server api.ServerInterface,
	sitemap *rest.SitemapHandler,
	log logger.Logger,
) *http.Server {
	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      NewRouter(server, sitemap, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter mounts the API under /api/v1 and the sitemap and metrics at
// the root.
func NewRouter(server api.ServerInterface, sitemap *rest.SitemapHandler, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Observability sits outside Recoverer so recovered panics are logged as 500s
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.Observability(log),
		chimw.Recoverer,
	)
	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Method(http.MethodGet, "/sitemap.xml", sitemap)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	_ = api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseURL:          "/api/v1",
		BaseRouter:       r,
		ErrorHandlerFunc: middleware.ParamErrorHandler,
	})

	return r
}
