// Package store provides certificate lookup backends: PostgreSQL as the
// source of truth, an optional Redis cache in front of it, and an in-memory
// store for tests.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"caregate/internal/verification/models"
	id "caregate/pkg/domain"
	"caregate/pkg/platform/sentinel"
)

// PostgresCertificates reads issued certificates. There is no write path; rows
// come from the external issuance workflow.
type PostgresCertificates struct {
	db *sql.DB
}

func NewPostgresCertificates(db *sql.DB) *PostgresCertificates {
	return &PostgresCertificates{db: db}
}

func (s *PostgresCertificates) FindByCode(ctx context.Context, code string) (*models.Certificate, error) {
	query := `
		SELECT id, verification_code, provider_id, provider_name,
		       service_description, issued_at, expires_at, revoked_at
		FROM certificates
		WHERE verification_code = $1
	`
	var (
		certificate models.Certificate
		rawID       uuid.UUID
		providerID  uuid.UUID
		revokedAt   sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&rawID,
		&certificate.VerificationCode,
		&providerID,
		&certificate.ProviderName,
		&certificate.ServiceDescription,
		&certificate.IssuedAt,
		&certificate.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate by code: %w", err)
	}
	certificate.ID = id.CertificateID(rawID)
	certificate.ProviderID = id.AccountID(providerID)
	if revokedAt.Valid {
		t := revokedAt.Time
		certificate.RevokedAt = &t
	}
	return &certificate, nil
}
