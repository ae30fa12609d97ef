// Package handler exposes the role-specific registration entry points. It
// delegates to the registration service and keeps transport concerns out of
// the workflow logic.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caregate/internal/platform/middleware"
	regmetrics "caregate/internal/registration/metrics"
	"caregate/internal/registration/models"
	dErrors "caregate/pkg/domain-errors"
)

// Client-facing strings are part of the API contract: the duplicate and
// internal failure envelopes never vary, and internal causes are only logged.
const (
	msgDuplicate = "User already exists"
	msgInternal  = "Internal server error"
)

// Service defines the registration operations the handler depends on.
type Service interface {
	Register(ctx context.Context, role models.Role, payload *models.Payload) (*models.Result, error)
}

// Handler handles registration endpoints.
type Handler struct {
	logger       *slog.Logger
	registration Service
	metrics      *regmetrics.Metrics
}

// New creates a registration Handler.
func New(registration Service, logger *slog.Logger, metrics *regmetrics.Metrics) *Handler {
	return &Handler{
		logger:       logger,
		registration: registration,
		metrics:      metrics,
	}
}

// Register registers the registration routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/register/insurance", h.handleRegisterInsurance)
	r.Post("/register/intermediary", h.handleRegisterIntermediary)
	r.Post("/register/provider", h.handleRegisterProvider)
}

func (h *Handler) handleRegisterInsurance(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, models.RoleInsurance, "Insurance company registration successful")
}

func (h *Handler) handleRegisterIntermediary(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, models.RoleIntermediary, "Intermediary registration successful")
}

func (h *Handler) handleRegisterProvider(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, models.RoleProvider, "Provider registration successful")
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request, role models.Role, successMessage string) {
	ctx := r.Context()
	start := time.Now()

	var payload models.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(ctx, "malformed registration payload",
			"request_id", middleware.GetRequestID(ctx),
			"role", string(role),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.registration.Register(ctx, role, &payload)
	if err != nil {
		h.writeRegisterError(ctx, w, role, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveRegister(start)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": successMessage,
		"userId":  result.AccountID.String(),
		"status":  result.Status,
	})
}

// writeRegisterError translates service errors into the fixed client
// envelopes. Validation messages name the offending field; everything
// unexpected collapses into the opaque 500 with the cause logged server-side.
func (h *Handler) writeRegisterError(ctx context.Context, w http.ResponseWriter, role models.Role, err error) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeConflict):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msgDuplicate})
	case dErrors.HasCode(err, dErrors.CodeValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": dErrors.Message(err)})
	default:
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", middleware.GetRequestID(ctx),
			"role", string(role),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgInternal})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
