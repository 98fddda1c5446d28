package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, organization_id, code, name, account_type, parent_account_id, currency_code,
	is_active, is_system, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var (
		a           domain.Account
		accountType string
		parentID    *string
	)
	err := row.Scan(
		&a.AccountID,
		&a.OrganizationID,
		&a.Code,
		&a.Name,
		&accountType,
		&parentID,
		&a.CurrencyCode,
		&a.IsActive,
		&a.IsSystem,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	a.AccountType = domain.AccountType(accountType)
	a.ParentAccountID = derefString(parentID)
	return a, err
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = $2;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("account %s", accountID), nil)
	}
	return &account, nil
}

// FindAccountsByIDs retrieves the existing accounts among accountIDs in one round trip.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the accounts of an organization ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	var accountType *string
	if filter.AccountType != nil {
		t := string(*filter.AccountType)
		accountType = &t
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1
			AND ($2::text IS NULL OR account_type = $2)
			AND ($3::boolean IS NULL OR is_active = $3)
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountType, filter.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account. The parent, when set, must belong to the same organization.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if account.ParentAccountID != "" {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE organization_id = $1 AND account_id = $2);`,
			account.OrganizationID, account.ParentAccountID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check parent account: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, account.ParentAccountID)
		}
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		account.AccountID,
		account.OrganizationID,
		account.Code,
		account.Name,
		string(account.AccountType),
		nullString(account.ParentAccountID),
		account.CurrencyCode,
		account.IsActive,
		account.IsSystem,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("account code %s", account.Code), apperrors.ErrValidation)
	}
	return r.Commit(ctx, tx)
}

// UpdateAccount updates the name and active flag of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.OrganizationID,
		account.AccountID,
		account.Name,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteAccount removes an account. Foreign keys from entry lines and child accounts block the delete.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, organizationID, accountID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM accounts WHERE organization_id = $1 AND account_id = $2;`,
		organizationID, accountID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("account %s", accountID), apperrors.ErrInUse)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}
