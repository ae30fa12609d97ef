// Package httptransport assembles the public HTTP surface: the role-specific
// registration entry points, the certificate verification page backend, and
// the operational endpoints.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "caregate/internal/platform/metrics"
	"caregate/internal/platform/middleware"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports readiness of a backing dependency.
type HealthChecker func(ctx context.Context) error

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(logger *slog.Logger, requestTimeout time.Duration,
	health HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(platformmetrics.NewHTTP().Middleware)
	r.Use(middleware.Timeout(requestTimeout))

	for _, h := range handlers {
		h.Register(r)
	}

	r.Get("/healthz", handleHealth(health))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if health != nil {
			if err := health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
