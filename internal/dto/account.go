package dto

import (
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,alphanum,max=20"`
	Name            string             `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType `json:"type" binding:"required,oneof=asset liability equity revenue expense"`
	ParentAccountID *string            `json:"parentId"` // Optional, use pointer for nullability
	CurrencyCode    string             `json:"currency" binding:"required,iso4217"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"active"`
}

// ListAccountsQuery holds the exact-match filters accepted by the account listing.
type ListAccountsQuery struct {
	AccountType string `form:"type" binding:"omitempty,oneof=asset liability equity revenue expense"`
	IsActive    *bool  `form:"active"`
}

// ToFilter converts the query into a domain filter.
func (q ListAccountsQuery) ToFilter() domain.AccountFilter {
	f := domain.AccountFilter{IsActive: q.IsActive}
	if q.AccountType != "" {
		t := domain.AccountType(q.AccountType)
		f.AccountType = &t
	}
	return f
}

// ImportTemplateRequest optionally overrides the currency of imported accounts.
type ImportTemplateRequest struct {
	CurrencyCode string `json:"currency" binding:"omitempty,iso4217"`
}

// ImportTemplateResponse reports how many template accounts were created.
type ImportTemplateResponse struct {
	Template string `json:"template"`
	Created  int    `json:"created"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"id"`
	OrganizationID  string             `json:"organizationId"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"type"`
	ParentAccountID *string            `json:"parentId"`
	CurrencyCode    string             `json:"currency"`
	IsActive        bool               `json:"active"`
	IsSystem        bool               `json:"system"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		OrganizationID:  acc.OrganizationID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: optionalString(acc.ParentAccountID),
		CurrencyCode:    acc.CurrencyCode,
		IsActive:        acc.IsActive,
		IsSystem:        acc.IsSystem,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
