// Package handler exposes the public certificate verification endpoint hit by
// scanned codes. It is anonymous and read-only.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caregate/internal/platform/middleware"
	verifmetrics "caregate/internal/verification/metrics"
	"caregate/internal/verification/models"
)

// Service defines the verification operation the handler depends on.
type Service interface {
	Verify(ctx context.Context, code string) (*models.Result, error)
}

// Handler handles the verification endpoint.
type Handler struct {
	logger       *slog.Logger
	verification Service
	metrics      *verifmetrics.Metrics
}

// New creates a verification Handler.
func New(verification Service, logger *slog.Logger, metrics *verifmetrics.Metrics) *Handler {
	return &Handler{
		logger:       logger,
		verification: verification,
		metrics:      metrics,
	}
}

// Register registers the verification route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/verify/{code}", h.handleVerify)
}

// handleVerify resolves the scanned code. Every verification outcome,
// including not-found, renders as 200 with a result body: an unknown code is
// an answer for the verification page, not an error.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	result, err := h.verification.Verify(ctx, chi.URLParam(r, "code"))
	if err != nil {
		h.logger.ErrorContext(ctx, "certificate verification failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveLookup(start)
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
