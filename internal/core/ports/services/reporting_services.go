package services

import (
	"context"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// ReportingService derives financial statements from posted entries.
type ReportingService interface {
	GetGeneralLedger(ctx context.Context, organizationID, accountID, userID string, period domain.DateRange) (*domain.GeneralLedgerReport, error)
	GetTrialBalance(ctx context.Context, organizationID, userID string, query domain.TrialBalanceQuery) (*domain.TrialBalanceReport, error)
	GetBalanceSheet(ctx context.Context, organizationID, userID string, asOf time.Time) (*domain.BalanceSheetReport, error)
	GetIncomeStatement(ctx context.Context, organizationID, userID string, period domain.DateRange) (*domain.IncomeStatementReport, error)
}
