//go:build integration

package store_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	platformredis "caregate/internal/platform/redis"
	"caregate/internal/verification/models"
	"caregate/internal/verification/store"
	id "caregate/pkg/domain"
	"caregate/pkg/platform/sentinel"
	"caregate/pkg/testutil/containers"
)

type CertificateStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	redis    *containers.RedisContainer
	direct   *store.PostgresCertificates
	cached   *store.CachedCertificates
}

func TestCertificateStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CertificateStoreSuite))
}

func (s *CertificateStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.redis = containers.NewRedisContainer(s.T())
	s.direct = store.NewPostgresCertificates(s.postgres.DB)
	s.cached = store.NewCachedCertificates(
		s.direct,
		&platformredis.Client{Client: s.redis.Client},
		time.Minute,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)
}

func (s *CertificateStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "certificates"))
	s.Require().NoError(s.redis.FlushAll(ctx))
}

// seedCertificate inserts a row the way the external issuance workflow would.
func (s *CertificateStoreSuite) seedCertificate(code string, revokedAt *time.Time) id.CertificateID {
	certificateID := id.CertificateID(uuid.New())
	now := time.Now().UTC()
	_, err := s.postgres.DB.ExecContext(context.Background(), `
		INSERT INTO certificates (id, verification_code, provider_id, provider_name,
		                          service_description, issued_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.UUID(certificateID), code, uuid.New(), "Acme Care", "general care",
		now.Add(-24*time.Hour), now.Add(24*time.Hour), revokedAt)
	s.Require().NoError(err)
	return certificateID
}

func (s *CertificateStoreSuite) TestFindByCode() {
	ctx := context.Background()
	certificateID := s.seedCertificate("CODE-1", nil)

	certificate, err := s.direct.FindByCode(ctx, "CODE-1")
	s.Require().NoError(err)
	s.Equal(certificateID, certificate.ID)
	s.Equal("Acme Care", certificate.ProviderName)
	s.Nil(certificate.RevokedAt)
}

func (s *CertificateStoreSuite) TestFindByCodeNotFound() {
	_, err := s.direct.FindByCode(context.Background(), "NO-SUCH-CODE")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CertificateStoreSuite) TestFindByCodeRevoked() {
	ctx := context.Background()
	revokedAt := time.Now().UTC().Add(-time.Hour)
	s.seedCertificate("CODE-1", &revokedAt)

	certificate, err := s.direct.FindByCode(ctx, "CODE-1")
	s.Require().NoError(err)
	s.Require().NotNil(certificate.RevokedAt)
	s.WithinDuration(revokedAt, *certificate.RevokedAt, time.Second)
}

func (s *CertificateStoreSuite) TestCachedLookupServesFromRedis() {
	ctx := context.Background()
	certificateID := s.seedCertificate("CODE-1", nil)

	first, err := s.cached.FindByCode(ctx, "CODE-1")
	s.Require().NoError(err)
	s.Equal(certificateID, first.ID)

	// Remove the row; the cached copy must still answer until the TTL lapses.
	s.Require().NoError(s.postgres.TruncateTables(ctx, "certificates"))

	second, err := s.cached.FindByCode(ctx, "CODE-1")
	s.Require().NoError(err)
	s.Equal(certificateID, second.ID)
	s.Equal(first.ExpiresAt.Unix(), second.ExpiresAt.Unix())
}

func (s *CertificateStoreSuite) TestCachedLookupMissPassesThrough() {
	_, err := s.cached.FindByCode(context.Background(), "NO-SUCH-CODE")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
