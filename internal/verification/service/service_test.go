package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caregate/internal/verification/models"
	"caregate/internal/verification/store"
	id "caregate/pkg/domain"
	dErrors "caregate/pkg/domain-errors"
)

func seedCertificate(code string, expiresAt time.Time, revokedAt *time.Time) (*store.MemoryCertificates, *models.Certificate) {
	certificates := store.NewMemoryCertificates()
	certificate := &models.Certificate{
		ID:                 id.CertificateID(uuid.New()),
		VerificationCode:   code,
		ProviderID:         id.NewAccountID(),
		ProviderName:       "Acme Care",
		ServiceDescription: "general care",
		IssuedAt:           time.Now().Add(-24 * time.Hour),
		ExpiresAt:          expiresAt,
		RevokedAt:          revokedAt,
	}
	certificates.Add(certificate)
	return certificates, certificate
}

func TestVerifyActive(t *testing.T) {
	certificates, certificate := seedCertificate("CODE-1", time.Now().Add(time.Hour), nil)
	svc := New(certificates)

	result, err := svc.Verify(context.Background(), "CODE-1")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, certificate.ID.String(), result.Certificate.ID)
	assert.Equal(t, "Acme Care", result.Certificate.ProviderName)
	assert.Equal(t, models.StatusActive, result.Certificate.Status)
}

func TestVerifyExpired(t *testing.T) {
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(-time.Hour), nil)
	svc := New(certificates)

	result, err := svc.Verify(context.Background(), "CODE-1")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, models.ReasonExpired, result.Reason)
	// Expired certificates still render their metadata on the page.
	require.NotNil(t, result.Certificate)
	assert.Equal(t, models.StatusExpired, result.Certificate.Status)
}

func TestVerifyRevoked(t *testing.T) {
	revokedAt := time.Now().Add(-time.Minute)
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(time.Hour), &revokedAt)
	svc := New(certificates)

	result, err := svc.Verify(context.Background(), "CODE-1")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, models.ReasonRevoked, result.Reason)
}

func TestVerifyRevokedWinsOverExpired(t *testing.T) {
	revokedAt := time.Now().Add(-48 * time.Hour)
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(-time.Hour), &revokedAt)
	svc := New(certificates)

	result, err := svc.Verify(context.Background(), "CODE-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReasonRevoked, result.Reason)
}

func TestVerifyUnknownCode(t *testing.T) {
	svc := New(store.NewMemoryCertificates())

	result, err := svc.Verify(context.Background(), "NO-SUCH-CODE")
	require.NoError(t, err, "an unknown code is an answer, not an error")
	assert.False(t, result.Valid)
	assert.Equal(t, models.ReasonNotFound, result.Reason)
	assert.Nil(t, result.Certificate)
}

func TestVerifyEmptyCode(t *testing.T) {
	svc := New(store.NewMemoryCertificates())

	for _, code := range []string{"", "   "} {
		result, err := svc.Verify(context.Background(), code)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, models.ReasonNotFound, result.Reason)
	}
}

type failingStore struct{ err error }

func (s *failingStore) FindByCode(ctx context.Context, code string) (*models.Certificate, error) {
	return nil, s.err
}

func TestVerifyStoreFailure(t *testing.T) {
	svc := New(&failingStore{err: errors.New("connection refused")})

	_, err := svc.Verify(context.Background(), "CODE-1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func signCode(t *testing.T, key, lookupCode string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: lookupCode})
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestVerifySignedCode(t *testing.T) {
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(time.Hour), nil)
	svc := New(certificates, WithSigningKey("topsecret"))

	result, err := svc.Verify(context.Background(), signCode(t, "topsecret", "CODE-1"))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestVerifySignedCodeBadSignature(t *testing.T) {
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(time.Hour), nil)
	svc := New(certificates, WithSigningKey("topsecret"))

	result, err := svc.Verify(context.Background(), signCode(t, "wrongkey", "CODE-1"))
	require.NoError(t, err)
	// A forged wrapper is indistinguishable from an unknown code.
	assert.False(t, result.Valid)
	assert.Equal(t, models.ReasonNotFound, result.Reason)
}

func TestVerifyRawCodeStillWorksWithSigningKey(t *testing.T) {
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(time.Hour), nil)
	svc := New(certificates, WithSigningKey("topsecret"))

	result, err := svc.Verify(context.Background(), "CODE-1")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestVerifyTokenIgnoredWithoutSigningKey(t *testing.T) {
	certificates, _ := seedCertificate("CODE-1", time.Now().Add(time.Hour), nil)
	svc := New(certificates)

	result, err := svc.Verify(context.Background(), signCode(t, "topsecret", "CODE-1"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, models.ReasonNotFound, result.Reason)
}
