package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caregate/internal/verification/models"
	"caregate/pkg/testutil"
)

type stubService struct {
	code   string
	result *models.Result
	err    error
}

func (s *stubService) Verify(ctx context.Context, code string) (*models.Result, error) {
	s.code = code
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestHandler(stub *stubService) http.Handler {
	h := New(stub, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestVerifyValidCertificate(t *testing.T) {
	stub := &stubService{result: &models.Result{
		Valid: true,
		Certificate: &models.Summary{
			ProviderName: "Acme Care",
			Status:       models.StatusActive,
			ExpiresAt:    time.Now().Add(time.Hour),
		},
	}}
	router := newTestHandler(stub)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/verify/CODE-1", nil))

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "CODE-1", stub.code)
	result := testutil.UnmarshalResponse[models.Result](t, rr)
	assert.True(t, result.Valid)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, "Acme Care", result.Certificate.ProviderName)
}

func TestVerifyNotFoundIsStillOK(t *testing.T) {
	stub := &stubService{result: &models.Result{Valid: false, Reason: models.ReasonNotFound}}
	router := newTestHandler(stub)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/verify/UNKNOWN", nil))

	// A resolved negative outcome is an answer for the page, not an HTTP error.
	testutil.AssertStatus(t, rr, http.StatusOK)
	result := testutil.UnmarshalResponse[models.Result](t, rr)
	assert.False(t, result.Valid)
	assert.Equal(t, models.ReasonNotFound, result.Reason)
	assert.Nil(t, result.Certificate)
}

func TestVerifyRevokedOutcome(t *testing.T) {
	stub := &stubService{result: &models.Result{
		Valid:  false,
		Reason: models.ReasonRevoked,
		Certificate: &models.Summary{
			ProviderName: "Acme Care",
			Status:       models.StatusRevoked,
		},
	}}
	router := newTestHandler(stub)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/verify/CODE-1", nil))

	testutil.AssertStatus(t, rr, http.StatusOK)
	result := testutil.UnmarshalResponse[models.Result](t, rr)
	assert.Equal(t, models.ReasonRevoked, result.Reason)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, models.StatusRevoked, result.Certificate.Status)
}

func TestVerifyInfrastructureFailure(t *testing.T) {
	stub := &stubService{err: errors.New("connection refused")}
	router := newTestHandler(stub)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/verify/CODE-1", nil))

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	testutil.AssertJSONContains(t, rr, "error", "Internal server error")
}
