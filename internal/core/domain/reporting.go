package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the aggregated posted debit and credit of one account.
type AccountActivity struct {
	AccountID   string          `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// ActivityQuery selects the posted activity to aggregate. A nil From means all time.
type ActivityQuery struct {
	From         *time.Time
	To           time.Time
	AccountIDs   []string
	AccountTypes []AccountType
}

// LedgerLine is one posted line of an account together with its entry header.
type LedgerLine struct {
	EntryID          string          `json:"entryId"`
	LineID           string          `json:"lineId"`
	EntryDate        time.Time       `json:"date"`
	Reference        string          `json:"reference"`
	EntryDescription string          `json:"entryDescription"`
	Label            string          `json:"label"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
}

// GeneralLedgerRow is one line of the general ledger with its running balance.
type GeneralLedgerRow struct {
	EntryID        string          `json:"entryId"`
	Date           time.Time       `json:"date"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is the chronological detail of one account.
type GeneralLedgerReport struct {
	Account        Account            `json:"account"`
	Period         DateRange          `json:"period"`
	Rows           []GeneralLedgerRow `json:"rows"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`
	TotalCredit    decimal.Decimal    `json:"totalCredit"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// TrialBalanceQuery selects the period and optional account subset of a trial balance.
type TrialBalanceQuery struct {
	Period     DateRange
	AccountIDs []string
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceReport lists every account with activity in the period.
type TrialBalanceReport struct {
	Period      DateRange         `json:"period"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// BalanceSheetLine holds an account balance split into its debit or credit slot.
type BalanceSheetLine struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// BalanceSheetReport represents a point-in-time balance sheet.
type BalanceSheetReport struct {
	AsOf             time.Time          `json:"asOfDate"`
	Assets           []BalanceSheetLine `json:"assets"`
	Liabilities      []BalanceSheetLine `json:"liabilities"`
	Equity           []BalanceSheetLine `json:"equity"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal    `json:"totalEquity"`
	CurrentEarnings  decimal.Decimal    `json:"currentEarnings"`
}

// IncomeStatementLine is the net amount of one revenue or expense account.
type IncomeStatementLine struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementReport represents a profit and loss statement for a period.
type IncomeStatementReport struct {
	Period        DateRange             `json:"period"`
	Revenue       []IncomeStatementLine `json:"revenue"`
	Expenses      []IncomeStatementLine `json:"expenses"`
	TotalRevenue  decimal.Decimal       `json:"totalRevenue"`
	TotalExpenses decimal.Decimal       `json:"totalExpenses"`
	NetIncome     decimal.Decimal       `json:"netIncome"`
}
