package accounting

import (
	"fmt"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// DefaultTolerance is the largest debit/credit difference still treated as balanced.
// Differences equal to or above it are rejected.
var DefaultTolerance = decimal.RequireFromString("0.01")

// MinEntryLines is the minimum number of lines a journal entry must carry.
const MinEntryLines = 2

// SignedBalance applies the normal-balance convention of accountType to a debit/credit pair.
// Asset and expense accounts grow with debits; liability, equity and revenue accounts grow with credits.
func SignedBalance(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// IsBalanced reports whether debit and credit differ by less than tolerance.
func IsBalanced(debit, credit, tolerance decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThan(tolerance)
}

// IsNegligible reports whether amount is below the reporting threshold of tolerance.
func IsNegligible(amount, tolerance decimal.Decimal) bool {
	return amount.Abs().LessThan(tolerance)
}

// ValidateLines checks the structural rules of an entry's lines and that they balance.
// Every violation is reported, wrapped in apperrors.ErrValidation.
func ValidateLines(lines []domain.JournalEntryLine, tolerance decimal.Decimal) error {
	var errs error
	if len(lines) < MinEntryLines {
		errs = multierr.Append(errs, fmt.Errorf("entry must have at least %d lines, got %d", MinEntryLines, len(lines)))
	}

	for i, l := range lines {
		if l.AccountID == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: account is required", i+1))
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("line %d: amounts must not be negative", i+1))
			continue
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			errs = multierr.Append(errs, fmt.Errorf("line %d: a debit or credit amount is required", i+1))
		}
	}

	debit, credit := domain.SumLines(lines)
	if !IsBalanced(debit, credit, tolerance) {
		errs = multierr.Append(errs, fmt.Errorf("entry is not balanced: total debit %s, total credit %s", debit.String(), credit.String()))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, errs)
	}
	return nil
}

// SwapLines returns copies of lines with debit and credit exchanged, for reversals.
func SwapLines(lines []domain.JournalEntryLine) []domain.JournalEntryLine {
	swapped := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		swapped[i] = domain.JournalEntryLine{
			AccountID: l.AccountID,
			Label:     l.Label,
			Debit:     l.Credit,
			Credit:    l.Debit,
			LineOrder: l.LineOrder,
		}
	}
	return swapped
}
