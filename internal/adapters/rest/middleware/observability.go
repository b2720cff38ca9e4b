package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/metrics"
)

// unmatchedRoute labels requests no route pattern matched, keeping the
// route label bounded
const unmatchedRoute = "unmatched"

// Observability logs every request and records its prometheus metrics.
// It must be installed with Use on a chi router so the matched route
// pattern is available once the request has been served.
func Observability(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Use chi's response writer wrapper to capture status code and bytes written
			wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrr, r)

			duration := time.Since(start)
			status := wrr.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

			log.Info(r.Context(), "HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", wrr.BytesWritten(),
				"duration_ms", duration.Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
