// Package models holds the registration domain records: the account aggregate
// root and its dependent profile, license, guarantor, and service unit records.
package models

import (
	"time"

	id "caregate/pkg/domain"

	"github.com/google/uuid"
)

// Role tags an account with its class of healthcare-ecosystem actor.
type Role string

const (
	RoleInsurance    Role = "insurance"
	RoleIntermediary Role = "intermediary"
	RoleProvider     Role = "provider"
)

// Valid reports whether the role is one this service registers.
func (r Role) Valid() bool {
	switch r {
	case RoleInsurance, RoleIntermediary, RoleProvider:
		return true
	}
	return false
}

// RequiresGuarantor reports whether the role may carry a financial guarantor.
// Intermediaries act on behalf of others and carry no guarantee of their own.
func (r Role) RequiresGuarantor() bool {
	return r == RoleInsurance || r == RoleProvider
}

// StatusPendingVerification is the initial status of every newly created
// account. Later status transitions belong to the external review workflow.
const StatusPendingVerification = "pending_verification"

// Account is the aggregate root created once per successful registration.
//
// Invariants:
//   - Email is globally unique across all roles
//   - PasswordHash is always a bcrypt hash, never plaintext
//   - Status is StatusPendingVerification at creation
type Account struct {
	ID           id.AccountID
	Email        string
	PasswordHash string
	Role         Role
	Status       string
	CreatedAt    time.Time
}

// Address is the fixed 5-field shape every profile address normalizes to.
// Missing fields stay empty; they never fail a registration.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ContactInfo is an open field bundle. Email and phone are always present;
// roles extend it additively without breaking existing consumers.
type ContactInfo map[string]any

// Profile is the descriptive record owned 1:1 by an account.
type Profile struct {
	ID          uuid.UUID
	AccountID   id.AccountID
	DisplayName string
	ContactInfo ContactInfo
	Address     Address
	CreatedAt   time.Time
}

// License evidences regulatory authorization. Zero or one per registration;
// created only when a supporting document reference was supplied.
type License struct {
	ID           uuid.UUID
	AccountID    id.AccountID
	Type         string
	DocumentPath string
	ExpiryDate   time.Time
	CreatedAt    time.Time
}

// Guarantor financially backs an account up to GuaranteeAmount. The amount is
// exact decimal text, never floating point.
type Guarantor struct {
	ID              uuid.UUID
	AccountID       id.AccountID
	Name            string
	ContactInfo     ContactInfo
	GuaranteeAmount string
	CreatedAt       time.Time
}

// ServiceUnit is one offered service classified under a single ICD-11 code,
// owned by a provider account. BasePrice starts at "0" pending the external
// pricing workflow.
type ServiceUnit struct {
	ID          uuid.UUID
	AccountID   id.AccountID
	Name        string
	Description string
	ICD11Code   string
	BasePrice   string
	CreatedAt   time.Time
}

// Result is the orchestrator's reply for a successful registration.
type Result struct {
	AccountID id.AccountID
	Status    string
}
