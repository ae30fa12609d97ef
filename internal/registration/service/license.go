package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"caregate/internal/registration/models"
	id "caregate/pkg/domain"
	dErrors "caregate/pkg/domain-errors"
)

// createLicense writes zero or one credential record. Absence of a document
// reference is valid: the registration proceeds without a license. The expiry
// was already parsed during validation, so nothing here can fail mid-sequence
// except the store itself.
func (s *Service) createLicense(ctx context.Context, accountID id.AccountID,
	p *models.Payload, parsed *parsedPayload, now time.Time) error {
	if p.LicenseDocument == "" {
		return nil
	}
	license := &models.License{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         p.LicenseType,
		DocumentPath: p.LicenseDocument,
		ExpiryDate:   parsed.licenseExpiry,
		CreatedAt:    now,
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "license creation failed")
	}
	return nil
}
