package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase the balance of accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a node in an organization's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountId"`
	OrganizationID  string      `json:"organizationId"`
	Code            string      `json:"code"` // unique per organization
	Name            string      `json:"name"`
	AccountType     AccountType `json:"type"` // immutable after creation
	ParentAccountID string      `json:"parentId"`
	CurrencyCode    string      `json:"currency"`
	IsActive        bool        `json:"active"`
	IsSystem        bool        `json:"system"` // system accounts cannot be edited or deleted
	AuditFields
}

// AccountFilter narrows account listings. Nil fields do not filter.
type AccountFilter struct {
	AccountType *AccountType
	IsActive    *bool
}

// Matches applies the filter with exact-match semantics.
func (f AccountFilter) Matches(a Account) bool {
	if f.AccountType != nil && a.AccountType != *f.AccountType {
		return false
	}
	if f.IsActive != nil && a.IsActive != *f.IsActive {
		return false
	}
	return true
}

// ChartTemplate names a predefined starter chart of accounts.
type ChartTemplate string

const (
	TemplateFrench    ChartTemplate = "french"
	TemplateSYSCOHADA ChartTemplate = "syscohada"
)
