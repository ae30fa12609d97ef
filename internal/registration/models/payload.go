package models

import "encoding/json"

// Payload is the inbound application payload shared by all registration entry
// points. Each role reads its own slice of the fields; unknown fields for a
// role are ignored. Numeric fields arrive as json.Number so exact decimal text
// survives from wire to store without a float round trip.
type Payload struct {
	// Common fields.
	ContactEmail       string      `json:"contactEmail"`
	ContactPhone       string      `json:"contactPhone"`
	RegistrationNumber string      `json:"registrationNumber"`
	TaxID              string      `json:"taxId"`
	Address            Address     `json:"address"`
	LicenseNumber      string      `json:"licenseNumber"`
	LicenseType        string      `json:"licenseType"`
	IssuingAuthority   string      `json:"issuingAuthority"`
	ExpiryDate         string      `json:"expiryDate"`
	LicenseDocument    string      `json:"licenseDocument,omitempty"`
	Password           string      `json:"password,omitempty"`

	// Insurance.
	CompanyName       string      `json:"companyName,omitempty"`
	CoverageTypes     []string    `json:"coverageTypes,omitempty"`
	MaxCoverageAmount json.Number `json:"maxCoverageAmount,omitempty"`

	// Guarantor (insurance and provider roles).
	GuarantorName     string      `json:"guarantorName,omitempty"`
	GuarantorEmail    string      `json:"guarantorEmail,omitempty"`
	GuarantorPhone    string      `json:"guarantorPhone,omitempty"`
	GuaranteeAmount   json.Number `json:"guaranteeAmount,omitempty"`
	GuarantorDocument string      `json:"guarantorDocument,omitempty"`

	// Intermediary.
	IsCompany       bool        `json:"isCompany,omitempty"`
	FullName        string      `json:"fullName,omitempty"`
	ActivityType    string      `json:"activityType,omitempty"`
	ExperienceYears json.Number `json:"experienceYears,omitempty"`

	// Provider (ServiceDescription is shared with intermediary).
	OrganizationName   string   `json:"organizationName,omitempty"`
	ICD11Codes         []string `json:"icd11Codes,omitempty"`
	Specialties        []string `json:"specialties,omitempty"`
	ServiceDescription string   `json:"serviceDescription,omitempty"`
}
