package repositories

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Every lookup is scoped to an organization; ids from other organizations are not found.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts that exist among accountIDs, keyed by id.
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the accounts matching filter, ordered by code.
	ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A code already used in the organization yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates the mutable fields (name, active) of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Accounts referenced by entry lines or child accounts yield apperrors.ErrInUse.
	DeleteAccount(ctx context.Context, organizationID, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
