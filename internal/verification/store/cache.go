package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	platformredis "caregate/internal/platform/redis"
	verifmetrics "caregate/internal/verification/metrics"
	"caregate/internal/verification/models"
	id "caregate/pkg/domain"
	"caregate/pkg/platform/sentinel"
)

const cacheKeyPrefix = "caregate:cert:"

// cachedCertificate is the JSON shape stored in Redis. IDs are serialized as
// strings so a cache populated by an older build stays readable.
type cachedCertificate struct {
	ID                 string     `json:"id"`
	VerificationCode   string     `json:"verification_code"`
	ProviderID         string     `json:"provider_id"`
	ProviderName       string     `json:"provider_name"`
	ServiceDescription string     `json:"service_description"`
	IssuedAt           time.Time  `json:"issued_at"`
	ExpiresAt          time.Time  `json:"expires_at"`
	RevokedAt          *time.Time `json:"revoked_at,omitempty"`
}

type certificateFinder interface {
	FindByCode(ctx context.Context, code string) (*models.Certificate, error)
}

// CachedCertificates fronts a certificate store with Redis. The public
// verification page is read-heavy and anonymous, so hot codes are served
// without touching the database. Cache failures degrade to direct lookups.
// Revocations become visible once the TTL lapses.
type CachedCertificates struct {
	inner   certificateFinder
	client  *platformredis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *verifmetrics.Metrics
}

// NewCachedCertificates wraps inner with a Redis cache.
func NewCachedCertificates(inner certificateFinder, client *platformredis.Client,
	ttl time.Duration, logger *slog.Logger, metrics *verifmetrics.Metrics) *CachedCertificates {
	return &CachedCertificates{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *CachedCertificates) FindByCode(ctx context.Context, code string) (*models.Certificate, error) {
	key := cacheKeyPrefix + code

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedCertificate
		if err := json.Unmarshal(raw, &cached); err == nil {
			if c.metrics != nil {
				c.metrics.RecordCacheHit()
			}
			return fromCached(&cached)
		}
		// Unreadable entry: fall through and overwrite it below.
	} else if !errors.Is(err, goredis.Nil) {
		c.logger.WarnContext(ctx, "certificate cache read failed", "error", err.Error())
	}
	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}

	certificate, err := c.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(toCached(certificate)); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "certificate cache write failed", "error", err.Error())
		}
	}
	return certificate, nil
}

func toCached(certificate *models.Certificate) *cachedCertificate {
	return &cachedCertificate{
		ID:                 certificate.ID.String(),
		VerificationCode:   certificate.VerificationCode,
		ProviderID:         certificate.ProviderID.String(),
		ProviderName:       certificate.ProviderName,
		ServiceDescription: certificate.ServiceDescription,
		IssuedAt:           certificate.IssuedAt,
		ExpiresAt:          certificate.ExpiresAt,
		RevokedAt:          certificate.RevokedAt,
	}
}

func fromCached(cached *cachedCertificate) (*models.Certificate, error) {
	certificateID, err := id.ParseCertificateID(cached.ID)
	if err != nil {
		return nil, sentinel.ErrNotFound
	}
	providerID, err := id.ParseAccountID(cached.ProviderID)
	if err != nil {
		return nil, sentinel.ErrNotFound
	}
	return &models.Certificate{
		ID:                 certificateID,
		VerificationCode:   cached.VerificationCode,
		ProviderID:         providerID,
		ProviderName:       cached.ProviderName,
		ServiceDescription: cached.ServiceDescription,
		IssuedAt:           cached.IssuedAt,
		ExpiresAt:          cached.ExpiresAt,
		RevokedAt:          cached.RevokedAt,
	}, nil
}
