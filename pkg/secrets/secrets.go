// Package secrets handles account credential material: random generation for
// registrations that arrive without a password, and bcrypt hashing so plaintext
// never reaches a store.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "caregate/pkg/domain-errors"
)

// hashCost is the bcrypt work factor for account credentials.
const hashCost = 12

// Generate creates a cryptographically secure random credential. Used when a
// registration payload omits the password: the account still gets a usable
// hashed credential and the caller completes setup through account recovery.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate credential: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash creates a bcrypt hash of the provided credential.
func Hash(credential string) (string, error) {
	if credential == "" {
		return "", dErrors.New(dErrors.CodeValidation, "credential cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "credential is too long")
		}
		return "", fmt.Errorf("could not hash credential: %w", err)
	}
	return string(hashed), nil
}

// Verify checks if a plaintext credential matches a bcrypt hash.
func Verify(credential, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeValidation, "invalid credential")
		}
		return fmt.Errorf("could not verify credential: %w", err)
	}
	return nil
}
