// Package service implements the registration workflow: one role-tagged
// application payload in, one consistent set of linked records out.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"caregate/internal/platform/middleware"
	regmetrics "caregate/internal/registration/metrics"
	"caregate/internal/registration/models"
	id "caregate/pkg/domain"
	dErrors "caregate/pkg/domain-errors"
	"caregate/pkg/platform/sentinel"
	"caregate/pkg/secrets"
)

// Store interfaces are defined here, next to their consumer, so persistence
// can be swapped (postgres, in-memory) without touching workflow logic.
// Stores return sentinel errors; this service translates them.

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
}

type LicenseStore interface {
	Create(ctx context.Context, license *models.License) error
}

type GuarantorStore interface {
	Create(ctx context.Context, guarantor *models.Guarantor) error
}

type ServiceUnitStore interface {
	CreateBatch(ctx context.Context, units []*models.ServiceUnit) error
}

// StoreTx scopes a function to one transaction. Every store call made with the
// ctx passed to fn joins that transaction, so a failure anywhere in the write
// sequence rolls back the whole registration.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service orchestrates registrations for every role.
type Service struct {
	accounts   AccountStore
	profiles   ProfileStore
	licenses   LicenseStore
	guarantors GuarantorStore
	units      ServiceUnitStore
	tx         StoreTx
	logger     *slog.Logger
	metrics    *regmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *regmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a registration Service.
func New(accounts AccountStore, profiles ProfileStore, licenses LicenseStore,
	guarantors GuarantorStore, units ServiceUnitStore, tx StoreTx, opts ...Option) *Service {
	s := &Service{
		accounts:   accounts,
		profiles:   profiles,
		licenses:   licenses,
		guarantors: guarantors,
		units:      units,
		tx:         tx,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Register validates the payload, checks email uniqueness, and creates the
// account plus its dependent records in a single transaction. Validation
// failures abort before any write; the unique index on email remains the
// authoritative duplicate guard for races past the pre-check.
func (s *Service) Register(ctx context.Context, role models.Role, payload *models.Payload) (*models.Result, error) {
	if !role.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported role")
	}
	if payload == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "payload is required")
	}

	parsed, err := validatePayload(role, payload)
	if err != nil {
		s.observeFailure(role, "validation")
		return nil, err
	}

	// Early exit only; two racing registrations can both pass this check and
	// the later of the two account writes loses on the unique index.
	if _, err := s.accounts.FindByEmail(ctx, parsed.email); err == nil {
		s.observeFailure(role, "duplicate")
		return nil, dErrors.New(dErrors.CodeConflict, "account already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "account lookup failed")
	}

	hash, err := s.hashCredential(payload.Password)
	if err != nil {
		return nil, err
	}

	now := middleware.Now(ctx)
	account := &models.Account{
		ID:           id.NewAccountID(),
		Email:        parsed.email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusPendingVerification,
		CreatedAt:    now,
	}

	profile := BuildProfile(role, payload)
	profile.ID = uuid.New()
	profile.AccountID = account.ID
	profile.CreatedAt = now

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.accounts.Create(txCtx, account); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "account already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "account creation failed")
		}
		if err := s.profiles.Create(txCtx, &profile); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "profile creation failed")
		}
		if err := s.createLicense(txCtx, account.ID, payload, parsed, now); err != nil {
			return err
		}
		if err := s.createGuarantor(txCtx, account.ID, role, payload, parsed, now); err != nil {
			return err
		}
		if err := s.createServiceUnits(txCtx, account.ID, role, payload, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			s.observeFailure(role, "duplicate")
			return nil, err
		}
		s.observeFailure(role, "persistence")
		s.logger.ErrorContext(ctx, "registration failed",
			"request_id", middleware.GetRequestID(ctx),
			"role", string(role),
			"error", err.Error(),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "account registered",
		"request_id", middleware.GetRequestID(ctx),
		"event", "account_registered",
		"account_id", account.ID.String(),
		"role", string(role),
	)
	if s.metrics != nil {
		s.metrics.IncrementRegistered(string(role))
	}

	return &models.Result{AccountID: account.ID, Status: account.Status}, nil
}

// hashCredential hashes the supplied password, or a freshly generated random
// credential when the payload omitted one. The account stays registrable and
// usable through credential recovery; a fixed default password is never used.
func (s *Service) hashCredential(password string) (string, error) {
	if password == "" {
		generated, err := secrets.Generate()
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "credential generation failed")
		}
		password = generated
	}
	hash, err := secrets.Hash(password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return "", err
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "credential hashing failed")
	}
	return hash, nil
}

func (s *Service) observeFailure(role models.Role, reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejected(string(role), reason)
	}
}
