package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"caregate/internal/registration/models"
	id "caregate/pkg/domain"
	dErrors "caregate/pkg/domain-errors"
)

// createGuarantor writes zero or one financial-guarantee record, only for
// roles that carry financial backing and only when a guarantor name was
// supplied. The amount was validated as non-negative decimal text up front.
func (s *Service) createGuarantor(ctx context.Context, accountID id.AccountID,
	role models.Role, p *models.Payload, parsed *parsedPayload, now time.Time) error {
	name := strings.TrimSpace(p.GuarantorName)
	if !role.RequiresGuarantor() || name == "" {
		return nil
	}
	guarantor := &models.Guarantor{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      name,
		ContactInfo: models.ContactInfo{
			"email": p.GuarantorEmail,
			"phone": p.GuarantorPhone,
		},
		GuaranteeAmount: parsed.guaranteeAmount,
		CreatedAt:       now,
	}
	if p.GuarantorDocument != "" {
		guarantor.ContactInfo["documentPath"] = p.GuarantorDocument
	}
	if err := s.guarantors.Create(ctx, guarantor); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "guarantor creation failed")
	}
	return nil
}
