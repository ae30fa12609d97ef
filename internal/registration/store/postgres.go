// Package store provides PostgreSQL and in-memory persistence for the
// registration module. Postgres stores join a caller-scoped transaction when
// one is present in the context.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"caregate/internal/registration/models"
	id "caregate/pkg/domain"
	"caregate/pkg/platform/sentinel"
	txcontext "caregate/pkg/platform/tx"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint hits.
const pgUniqueViolation = "23505"

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func execer(ctx context.Context, db *sql.DB) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return db
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// PostgresAccounts persists accounts in PostgreSQL. The unique index on email
// is the authoritative duplicate guard; violations surface as
// sentinel.ErrConflict.
type PostgresAccounts struct {
	db *sql.DB
}

func NewPostgresAccounts(db *sql.DB) *PostgresAccounts {
	return &PostgresAccounts{db: db}
}

func (s *PostgresAccounts) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := execer(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(account.ID),
		account.Email,
		account.PasswordHash,
		string(account.Role),
		account.Status,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresAccounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, role, status, created_at
		FROM accounts
		WHERE email = $1
	`
	var (
		account models.Account
		rawID   uuid.UUID
		role    string
	)
	err := execer(ctx, s.db).QueryRowContext(ctx, query, email).Scan(
		&rawID,
		&account.Email,
		&account.PasswordHash,
		&role,
		&account.Status,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	account.ID = id.AccountID(rawID)
	account.Role = models.Role(role)
	return &account, nil
}

// PostgresProfiles persists profile records.
type PostgresProfiles struct {
	db *sql.DB
}

func NewPostgresProfiles(db *sql.DB) *PostgresProfiles {
	return &PostgresProfiles{db: db}
}

func (s *PostgresProfiles) Create(ctx context.Context, profile *models.Profile) error {
	contactInfo, err := json.Marshal(profile.ContactInfo)
	if err != nil {
		return fmt.Errorf("marshal contact info: %w", err)
	}
	address, err := json.Marshal(profile.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	query := `
		INSERT INTO profiles (id, account_id, display_name, contact_info, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = execer(ctx, s.db).ExecContext(ctx, query,
		profile.ID,
		uuid.UUID(profile.AccountID),
		profile.DisplayName,
		contactInfo,
		address,
		profile.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// PostgresLicenses persists credential records.
type PostgresLicenses struct {
	db *sql.DB
}

func NewPostgresLicenses(db *sql.DB) *PostgresLicenses {
	return &PostgresLicenses{db: db}
}

func (s *PostgresLicenses) Create(ctx context.Context, license *models.License) error {
	query := `
		INSERT INTO licenses (id, account_id, type, document_path, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := execer(ctx, s.db).ExecContext(ctx, query,
		license.ID,
		uuid.UUID(license.AccountID),
		license.Type,
		license.DocumentPath,
		license.ExpiryDate,
		license.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert license: %w", err)
	}
	return nil
}

// PostgresGuarantors persists financial-guarantee records.
type PostgresGuarantors struct {
	db *sql.DB
}

func NewPostgresGuarantors(db *sql.DB) *PostgresGuarantors {
	return &PostgresGuarantors{db: db}
}

func (s *PostgresGuarantors) Create(ctx context.Context, guarantor *models.Guarantor) error {
	contactInfo, err := json.Marshal(guarantor.ContactInfo)
	if err != nil {
		return fmt.Errorf("marshal guarantor contact info: %w", err)
	}
	query := `
		INSERT INTO guarantors (id, account_id, name, contact_info, guarantee_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = execer(ctx, s.db).ExecContext(ctx, query,
		guarantor.ID,
		uuid.UUID(guarantor.AccountID),
		guarantor.Name,
		contactInfo,
		guarantor.GuaranteeAmount,
		guarantor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert guarantor: %w", err)
	}
	return nil
}

// PostgresServiceUnits persists the provider service catalog.
type PostgresServiceUnits struct {
	db *sql.DB
}

func NewPostgresServiceUnits(db *sql.DB) *PostgresServiceUnits {
	return &PostgresServiceUnits{db: db}
}

func (s *PostgresServiceUnits) CreateBatch(ctx context.Context, units []*models.ServiceUnit) error {
	if len(units) == 0 {
		return nil
	}
	query := `
		INSERT INTO service_units (id, account_id, name, description, icd11_code, base_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	ex := execer(ctx, s.db)
	for _, unit := range units {
		_, err := ex.ExecContext(ctx, query,
			unit.ID,
			uuid.UUID(unit.AccountID),
			unit.Name,
			unit.Description,
			unit.ICD11Code,
			unit.BasePrice,
			unit.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert service unit %s: %w", unit.ICD11Code, err)
		}
	}
	return nil
}
