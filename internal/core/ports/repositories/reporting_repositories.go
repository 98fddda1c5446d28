package repositories

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// ReportingRepository exposes the aggregated reads the report engine is built on.
// Only posted entries and active accounts are considered.
type ReportingRepository interface {
	// SumActivityByAccount aggregates posted debits and credits per account in a single query,
	// ordered by account code. Accounts without activity are absent.
	SumActivityByAccount(ctx context.Context, organizationID string, query domain.ActivityQuery) ([]domain.AccountActivity, error)

	// ListLedgerLines returns the posted lines of one account within period, in ledger order
	// (entry date, entry creation, entry id, line order).
	ListLedgerLines(ctx context.Context, organizationID, accountID string, period domain.DateRange) ([]domain.LedgerLine, error)
}
