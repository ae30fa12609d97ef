// Package domain holds identifier types shared across modules. IDs are typed
// UUIDs so an AccountID can never be passed where a CertificateID is expected.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "caregate/pkg/domain-errors"
)

// AccountID identifies an authenticatable account.
type AccountID uuid.UUID

// CertificateID identifies an issued service certificate.
type CertificateID uuid.UUID

func (id AccountID) String() string     { return uuid.UUID(id).String() }
func (id AccountID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id CertificateID) String() string { return uuid.UUID(id).String() }
func (id CertificateID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewAccountID returns a fresh random account identifier.
func NewAccountID() AccountID {
	return AccountID(uuid.New())
}

// ParseAccountID parses a string into an AccountID. Empty strings, malformed
// input, and the nil UUID are all rejected at this trust boundary.
func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID(u), nil
}

// ParseCertificateID parses a string into a CertificateID.
func ParseCertificateID(s string) (CertificateID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return CertificateID{}, err
	}
	return CertificateID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid id %q", s))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "id must not be the nil uuid")
	}
	return u, nil
}
