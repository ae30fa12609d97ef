package store

import (
	"context"
	"sync"

	"caregate/internal/registration/models"
	"caregate/pkg/platform/sentinel"
)

// In-memory stores back unit tests and local development without a database.
// They mirror the sentinel-error contract of the postgres stores.

// MemoryAccounts is an in-memory AccountStore keyed by email.
type MemoryAccounts struct {
	mu      sync.RWMutex
	byEmail map[string]*models.Account

	// FailCreate, when set, makes Create return the given error. Tests use it
	// to simulate infrastructure failures.
	FailCreate error
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{byEmail: make(map[string]*models.Account)}
}

func (s *MemoryAccounts) Create(ctx context.Context, account *models.Account) error {
	if s.FailCreate != nil {
		return s.FailCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[account.Email]; exists {
		return sentinel.ErrConflict
	}
	copied := *account
	s.byEmail[account.Email] = &copied
	return nil
}

func (s *MemoryAccounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

// All returns every stored account, for test assertions.
func (s *MemoryAccounts) All() []*models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]*models.Account, 0, len(s.byEmail))
	for _, a := range s.byEmail {
		copied := *a
		accounts = append(accounts, &copied)
	}
	return accounts
}

// MemoryProfiles is an in-memory ProfileStore.
type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles []*models.Profile

	FailCreate error
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{}
}

func (s *MemoryProfiles) Create(ctx context.Context, profile *models.Profile) error {
	if s.FailCreate != nil {
		return s.FailCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *profile
	s.profiles = append(s.profiles, &copied)
	return nil
}

func (s *MemoryProfiles) All() []*models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Profile(nil), s.profiles...)
}

// MemoryLicenses is an in-memory LicenseStore.
type MemoryLicenses struct {
	mu       sync.RWMutex
	licenses []*models.License
}

func NewMemoryLicenses() *MemoryLicenses {
	return &MemoryLicenses{}
}

func (s *MemoryLicenses) Create(ctx context.Context, license *models.License) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *license
	s.licenses = append(s.licenses, &copied)
	return nil
}

func (s *MemoryLicenses) All() []*models.License {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.License(nil), s.licenses...)
}

// MemoryGuarantors is an in-memory GuarantorStore.
type MemoryGuarantors struct {
	mu         sync.RWMutex
	guarantors []*models.Guarantor
}

func NewMemoryGuarantors() *MemoryGuarantors {
	return &MemoryGuarantors{}
}

func (s *MemoryGuarantors) Create(ctx context.Context, guarantor *models.Guarantor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *guarantor
	s.guarantors = append(s.guarantors, &copied)
	return nil
}

func (s *MemoryGuarantors) All() []*models.Guarantor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Guarantor(nil), s.guarantors...)
}

// MemoryServiceUnits is an in-memory ServiceUnitStore.
type MemoryServiceUnits struct {
	mu    sync.RWMutex
	units []*models.ServiceUnit
}

func NewMemoryServiceUnits() *MemoryServiceUnits {
	return &MemoryServiceUnits{}
}

func (s *MemoryServiceUnits) CreateBatch(ctx context.Context, units []*models.ServiceUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, unit := range units {
		copied := *unit
		s.units = append(s.units, &copied)
	}
	return nil
}

func (s *MemoryServiceUnits) All() []*models.ServiceUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.ServiceUnit(nil), s.units...)
}

// MemoryTx serializes registrations with a coarse lock. In-memory stores have
// no rollback; transactional all-or-nothing semantics are a property of the
// postgres implementation.
type MemoryTx struct {
	mu sync.Mutex
}

func NewMemoryTx() *MemoryTx {
	return &MemoryTx{}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
