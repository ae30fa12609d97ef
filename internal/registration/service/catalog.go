package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"caregate/internal/registration/models"
	id "caregate/pkg/domain"
	dErrors "caregate/pkg/domain-errors"
)

// basePriceUnpriced is the base price of every service unit at registration.
// Actual pricing happens in a later workflow.
const basePriceUnpriced = "0"

// ExpandServiceUnits turns a list of ICD-11 classification codes into one
// service unit per code, in input order, without deduplication. Codes are
// opaque strings at this layer; an empty or absent list is valid and produces
// zero units.
func ExpandServiceUnits(accountID id.AccountID, organizationName string,
	codes []string, description string, now time.Time) []*models.ServiceUnit {
	units := make([]*models.ServiceUnit, 0, len(codes))
	for _, code := range codes {
		units = append(units, &models.ServiceUnit{
			ID:          uuid.New(),
			AccountID:   accountID,
			Name:        fmt.Sprintf("%s - %s", organizationName, code),
			Description: description,
			ICD11Code:   code,
			BasePrice:   basePriceUnpriced,
			CreatedAt:   now,
		})
	}
	return units
}

// createServiceUnits expands and persists the provider's service catalog.
// Non-provider roles never reach the store.
func (s *Service) createServiceUnits(ctx context.Context, accountID id.AccountID,
	role models.Role, p *models.Payload, now time.Time) error {
	if role != models.RoleProvider || len(p.ICD11Codes) == 0 {
		return nil
	}
	units := ExpandServiceUnits(accountID, p.OrganizationName, p.ICD11Codes, p.ServiceDescription, now)
	if err := s.units.CreateBatch(ctx, units); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "service unit creation failed")
	}
	return nil
}
