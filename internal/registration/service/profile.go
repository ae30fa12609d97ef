package service

import (
	"strings"

	"caregate/internal/registration/models"
)

// BuildProfile maps a role-specific payload into a normalized profile record.
// Pure and deterministic: no I/O, no identifiers, no clock. The caller assigns
// ID, AccountID, and CreatedAt before persisting.
//
// The contact-info bundle always carries the common fields (email, phone,
// registrationNumber, taxId); role-specific extensions are additive only.
// The address is normalized to the fixed 5-field shape; omitted fields stay
// empty and never fail the mapping.
func BuildProfile(role models.Role, p *models.Payload) models.Profile {
	contact := models.ContactInfo{
		"email":              strings.ToLower(strings.TrimSpace(p.ContactEmail)),
		"phone":              p.ContactPhone,
		"registrationNumber": p.RegistrationNumber,
		"taxId":              p.TaxID,
	}

	var displayName string
	switch role {
	case models.RoleInsurance:
		displayName = p.CompanyName
		if len(p.CoverageTypes) > 0 {
			contact["coverageTypes"] = p.CoverageTypes
		}
		if p.MaxCoverageAmount.String() != "" {
			contact["maxCoverageAmount"] = p.MaxCoverageAmount.String()
		}
	case models.RoleIntermediary:
		if p.IsCompany {
			displayName = p.CompanyName
		} else {
			displayName = p.FullName
		}
		contact["isCompany"] = p.IsCompany
		contact["activityType"] = p.ActivityType
		if p.ExperienceYears.String() != "" {
			if years, err := parseYears(p.ExperienceYears.String()); err == nil {
				contact["experienceYears"] = years
			}
		}
		contact["serviceDescription"] = p.ServiceDescription
	case models.RoleProvider:
		displayName = p.OrganizationName
		if len(p.Specialties) > 0 {
			contact["specialties"] = p.Specialties
		}
	}

	return models.Profile{
		DisplayName: strings.TrimSpace(displayName),
		ContactInfo: contact,
		Address: models.Address{
			Street:     p.Address.Street,
			City:       p.Address.City,
			State:      p.Address.State,
			PostalCode: p.Address.PostalCode,
			Country:    p.Address.Country,
		},
	}
}
