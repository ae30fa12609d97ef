package store

import (
	"context"
	"sync"

	"caregate/internal/verification/models"
	"caregate/pkg/platform/sentinel"
)

// MemoryCertificates is an in-memory certificate store for tests and local
// development. Add stands in for the external issuance workflow.
type MemoryCertificates struct {
	mu     sync.RWMutex
	byCode map[string]*models.Certificate
}

func NewMemoryCertificates() *MemoryCertificates {
	return &MemoryCertificates{byCode: make(map[string]*models.Certificate)}
}

// Add seeds a certificate.
func (s *MemoryCertificates) Add(certificate *models.Certificate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *certificate
	s.byCode[certificate.VerificationCode] = &copied
}

func (s *MemoryCertificates) FindByCode(ctx context.Context, code string) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	certificate, ok := s.byCode[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *certificate
	return &copied, nil
}
