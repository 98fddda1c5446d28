package services

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, organizationID, accountID, userID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts matching the exact-match filter.
	ListAccounts(ctx context.Context, organizationID, userID string, filter domain.AccountFilter) ([]domain.Account, error)

	// GetAccountHierarchy returns every account sorted by code ascending.
	GetAccountHierarchy(ctx context.Context, organizationID, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount changes the name and/or active flag of a non-system account.
	UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes a non-system account nothing references.
	DeleteAccount(ctx context.Context, organizationID, accountID, userID string) error

	// ImportTemplate creates the accounts of a starter chart, skipping existing codes.
	// It returns the number of accounts created.
	ImportTemplate(ctx context.Context, organizationID string, template domain.ChartTemplate, currencyCode, userID string) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
