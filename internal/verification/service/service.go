// Package service implements certificate verification: a read-only resolution
// of an opaque verification code to an authenticity result. There is no write
// path and the endpoint is safe to call anonymously at any rate.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"caregate/internal/platform/middleware"
	verifmetrics "caregate/internal/verification/metrics"
	"caregate/internal/verification/models"
	dErrors "caregate/pkg/domain-errors"
	"caregate/pkg/platform/sentinel"
)

// Store resolves verification codes to certificates. Implementations return
// sentinel.ErrNotFound for unknown codes.
type Store interface {
	FindByCode(ctx context.Context, code string) (*models.Certificate, error)
}

// Service verifies certificates by their scanned verification code.
type Service struct {
	store      Store
	signingKey []byte
	logger     *slog.Logger
	metrics    *verifmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *verifmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSigningKey makes the service accept signed verification codes: a signed
// code is an HS256 token whose subject claim carries the raw lookup code, and
// its signature is validated before any lookup. Codes that fail validation
// resolve to not-found, indistinguishable from unknown codes.
func WithSigningKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.signingKey = []byte(key)
		}
	}
}

// New creates a verification Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Verify resolves a verification code to its certificate and authenticity
// status. Unknown or malformed codes yield a not-found result, never an
// error; errors are reserved for infrastructure failures.
func (s *Service) Verify(ctx context.Context, code string) (*models.Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return s.resolved(models.Result{Valid: false, Reason: models.ReasonNotFound}), nil
	}

	if lookup, ok := s.unwrapSignedCode(ctx, code); ok {
		code = lookup
	} else if s.signingKey != nil && looksSigned(code) {
		return s.resolved(models.Result{Valid: false, Reason: models.ReasonNotFound}), nil
	}

	certificate, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.resolved(models.Result{Valid: false, Reason: models.ReasonNotFound}), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "certificate lookup failed")
	}

	now := middleware.Now(ctx)
	summary := certificate.Summarize(now)
	switch summary.Status {
	case models.StatusRevoked:
		return s.resolved(models.Result{Valid: false, Certificate: summary, Reason: models.ReasonRevoked}), nil
	case models.StatusExpired:
		return s.resolved(models.Result{Valid: false, Certificate: summary, Reason: models.ReasonExpired}), nil
	default:
		return s.resolved(models.Result{Valid: true, Certificate: summary}), nil
	}
}

// unwrapSignedCode extracts the raw lookup code from a signed wrapper. Returns
// false when no signing key is configured, the code is not a token, or the
// signature does not validate.
func (s *Service) unwrapSignedCode(ctx context.Context, code string) (string, bool) {
	if s.signingKey == nil || !looksSigned(code) {
		return "", false
	}
	token, err := jwt.Parse(code, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		s.logger.WarnContext(ctx, "signed verification code rejected",
			"request_id", middleware.GetRequestID(ctx),
		)
		return "", false
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", false
	}
	return subject, true
}

// looksSigned reports whether the code has the three-part shape of a token.
// Raw verification codes never contain dots.
func looksSigned(code string) bool {
	return strings.Count(code, ".") == 2
}

func (s *Service) resolved(result models.Result) *models.Result {
	if s.metrics != nil {
		outcome := "valid"
		if !result.Valid {
			outcome = string(result.Reason)
		}
		s.metrics.IncrementLookup(outcome)
	}
	return &result
}
