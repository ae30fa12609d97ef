// Package models holds the certificate records resolved by the public
// verification endpoint. Certificates are written by the external issuance
// workflow; this service only reads them.
package models

import (
	"time"

	id "caregate/pkg/domain"
)

// Status is the lifecycle state of an issued certificate. Expired and revoked
// are terminal; only active certificates verify as authentic.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// Reason explains a failed verification to the caller.
type Reason string

const (
	ReasonNotFound Reason = "not_found"
	ReasonExpired  Reason = "expired"
	ReasonRevoked  Reason = "revoked"
)

// Certificate is an issued service certificate keyed by the opaque
// verification code embedded in its scannable symbol.
type Certificate struct {
	ID                 id.CertificateID
	VerificationCode   string
	ProviderID         id.AccountID
	ProviderName       string
	ServiceDescription string
	IssuedAt           time.Time
	ExpiresAt          time.Time
	RevokedAt          *time.Time
}

// StatusAt evaluates the certificate state machine at the given instant.
// Revocation wins over expiry: a revoked certificate stays revoked even past
// its expiry date.
func (c *Certificate) StatusAt(now time.Time) Status {
	if c.RevokedAt != nil {
		return StatusRevoked
	}
	if now.After(c.ExpiresAt) {
		return StatusExpired
	}
	return StatusActive
}

// Summary is the certificate metadata rendered on the verification page.
type Summary struct {
	ID                 string    `json:"id"`
	ProviderName       string    `json:"providerName"`
	ServiceDescription string    `json:"serviceDescription"`
	IssuedAt           time.Time `json:"issuedAt"`
	ExpiresAt          time.Time `json:"expiresAt"`
	Status             Status    `json:"status"`
}

// Summarize builds the caller-facing summary for the certificate.
func (c *Certificate) Summarize(now time.Time) *Summary {
	return &Summary{
		ID:                 c.ID.String(),
		ProviderName:       c.ProviderName,
		ServiceDescription: c.ServiceDescription,
		IssuedAt:           c.IssuedAt,
		ExpiresAt:          c.ExpiresAt,
		Status:             c.StatusAt(now),
	}
}

// Result is the verification outcome returned to the caller. Valid is true
// only for active certificates; every other outcome carries a reason.
type Result struct {
	Valid       bool     `json:"valid"`
	Certificate *Summary `json:"certificate,omitempty"`
	Reason      Reason   `json:"reason,omitempty"`
}
