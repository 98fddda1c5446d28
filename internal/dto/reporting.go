package dto

import (
	"fmt"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRangeRequest is the inclusive period of a report.
type DateRangeRequest struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// ToDateRange parses the period and rejects a start after the end.
func (r DateRangeRequest) ToDateRange() (domain.DateRange, error) {
	from, err := ParseDate("startDate", r.StartDate)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := ParseDate("endDate", r.EndDate)
	if err != nil {
		return domain.DateRange{}, err
	}
	if from.After(to) {
		return domain.DateRange{}, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}
	return domain.DateRange{From: from, To: to}, nil
}

// TrialBalanceRequest selects the period and optional accounts of a trial balance.
type TrialBalanceRequest struct {
	DateRangeRequest
	AccountIDs []string `json:"accountIds"`
}

// BalanceSheetRequest selects the snapshot date of a balance sheet.
type BalanceSheetRequest struct {
	AsOfDate string `json:"asOfDate" binding:"required,datetime=2006-01-02"`
}

// GeneralLedgerRowResponse is one line of the general ledger.
type GeneralLedgerRowResponse struct {
	EntryID        string          `json:"entryId"`
	Date           string          `json:"date"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerResponse represents the general ledger of one account.
type GeneralLedgerResponse struct {
	AccountID      string                     `json:"accountId"`
	AccountCode    string                     `json:"accountCode"`
	AccountName    string                     `json:"accountName"`
	AccountType    domain.AccountType         `json:"accountType"`
	StartDate      string                     `json:"startDate"`
	EndDate        string                     `json:"endDate"`
	Rows           []GeneralLedgerRowResponse `json:"rows"`
	TotalDebit     decimal.Decimal            `json:"totalDebit"`
	TotalCredit    decimal.Decimal            `json:"totalCredit"`
	ClosingBalance decimal.Decimal            `json:"closingBalance"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountId"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"type"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
	Balance     decimal.Decimal    `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	StartDate   string                    `json:"startDate"`
	EndDate     string                    `json:"endDate"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// BalanceSheetLineResponse is one account of a balance sheet bucket.
type BalanceSheetLineResponse struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOfDate         string                     `json:"asOfDate"`
	Assets           []BalanceSheetLineResponse `json:"assets"`
	Liabilities      []BalanceSheetLineResponse `json:"liabilities"`
	Equity           []BalanceSheetLineResponse `json:"equity"`
	TotalAssets      decimal.Decimal            `json:"totalAssets"`
	TotalLiabilities decimal.Decimal            `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal            `json:"totalEquity"`
	CurrentEarnings  decimal.Decimal            `json:"currentEarnings"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	StartDate     string                  `json:"startDate"`
	EndDate       string                  `json:"endDate"`
	Revenue       []AccountAmountResponse `json:"revenue"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	NetIncome     decimal.Decimal         `json:"netIncome"`
}

// ToGeneralLedgerResponse converts the domain report.
func ToGeneralLedgerResponse(r *domain.GeneralLedgerReport) GeneralLedgerResponse {
	rows := make([]GeneralLedgerRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = GeneralLedgerRowResponse{
			EntryID:        row.EntryID,
			Date:           FormatDate(row.Date),
			Reference:      row.Reference,
			Description:    row.Description,
			Debit:          row.Debit,
			Credit:         row.Credit,
			RunningBalance: row.RunningBalance,
		}
	}
	return GeneralLedgerResponse{
		AccountID:      r.Account.AccountID,
		AccountCode:    r.Account.Code,
		AccountName:    r.Account.Name,
		AccountType:    r.Account.AccountType,
		StartDate:      FormatDate(r.Period.From),
		EndDate:        FormatDate(r.Period.To),
		Rows:           rows,
		TotalDebit:     r.TotalDebit,
		TotalCredit:    r.TotalCredit,
		ClosingBalance: r.ClosingBalance,
	}
}

// ToTrialBalanceResponse converts the domain report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse(row)
	}
	return TrialBalanceResponse{
		StartDate:   FormatDate(r.Period.From),
		EndDate:     FormatDate(r.Period.To),
		Rows:        rows,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
	}
}

// ToBalanceSheetResponse converts the domain report.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOfDate:         FormatDate(r.AsOf),
		Assets:           toBalanceSheetLines(r.Assets),
		Liabilities:      toBalanceSheetLines(r.Liabilities),
		Equity:           toBalanceSheetLines(r.Equity),
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		TotalEquity:      r.TotalEquity,
		CurrentEarnings:  r.CurrentEarnings,
	}
}

// ToIncomeStatementResponse converts the domain report.
func ToIncomeStatementResponse(r *domain.IncomeStatementReport) IncomeStatementResponse {
	return IncomeStatementResponse{
		StartDate:     FormatDate(r.Period.From),
		EndDate:       FormatDate(r.Period.To),
		Revenue:       toAccountAmounts(r.Revenue),
		Expenses:      toAccountAmounts(r.Expenses),
		TotalRevenue:  r.TotalRevenue,
		TotalExpenses: r.TotalExpenses,
		NetIncome:     r.NetIncome,
	}
}

func toBalanceSheetLines(lines []domain.BalanceSheetLine) []BalanceSheetLineResponse {
	out := make([]BalanceSheetLineResponse, len(lines))
	for i, l := range lines {
		out[i] = BalanceSheetLineResponse(l)
	}
	return out
}

func toAccountAmounts(lines []domain.IncomeStatementLine) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(lines))
	for i, l := range lines {
		out[i] = AccountAmountResponse(l)
	}
	return out
}
