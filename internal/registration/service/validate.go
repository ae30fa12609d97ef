package service

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"caregate/internal/registration/models"
	dErrors "caregate/pkg/domain-errors"
)

// parsedPayload carries values that validation already parsed so the write
// path never re-parses (and can never fail parsing mid-sequence).
type parsedPayload struct {
	email           string
	licenseExpiry   time.Time
	guaranteeAmount string
	experienceYears int
}

// validatePayload checks the shared and role-specific input constraints.
// Everything here runs before any write: a failure leaves zero records behind.
func validatePayload(role models.Role, p *models.Payload) (*parsedPayload, error) {
	parsed := &parsedPayload{email: strings.ToLower(strings.TrimSpace(p.ContactEmail))}

	if parsed.email == "" || !govalidator.IsEmail(parsed.email) || !govalidator.StringLength(parsed.email, "3", "255") {
		return nil, dErrors.New(dErrors.CodeValidation, "contactEmail must be a valid email address")
	}

	switch role {
	case models.RoleInsurance:
		if strings.TrimSpace(p.CompanyName) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "companyName is required")
		}
	case models.RoleIntermediary:
		if p.IsCompany && strings.TrimSpace(p.CompanyName) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "companyName is required for company intermediaries")
		}
		if !p.IsCompany && strings.TrimSpace(p.FullName) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "fullName is required")
		}
	case models.RoleProvider:
		if strings.TrimSpace(p.OrganizationName) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "organizationName is required")
		}
	}

	// Credential record: expiry must parse whenever a document was supplied.
	// An unparseable date aborts the whole registration.
	if p.LicenseDocument != "" {
		expiry, err := parseExpiry(p.ExpiryDate)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "expiryDate must be a parseable date")
		}
		parsed.licenseExpiry = expiry
	}

	// Guarantor: amount must be a non-negative exact decimal when a guarantor
	// name was supplied for a role that carries financial backing.
	if role.RequiresGuarantor() && strings.TrimSpace(p.GuarantorName) != "" {
		amount, err := normalizeAmount(p.GuaranteeAmount.String())
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "guaranteeAmount must be a non-negative decimal")
		}
		parsed.guaranteeAmount = amount
	}

	if role == models.RoleInsurance && p.MaxCoverageAmount.String() != "" {
		if _, err := normalizeAmount(p.MaxCoverageAmount.String()); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "maxCoverageAmount must be a non-negative decimal")
		}
	}

	if role == models.RoleIntermediary && p.ExperienceYears.String() != "" {
		years, err := parseYears(p.ExperienceYears.String())
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "experienceYears must be a non-negative integer")
		}
		parsed.experienceYears = years
	}

	return parsed, nil
}

// expiryLayouts are the date shapes accepted from registration forms.
var expiryLayouts = []string{"2006-01-02", time.RFC3339}

func parseExpiry(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
