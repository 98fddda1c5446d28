package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) *reportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumActivityByAccount aggregates posted lines per active account in a single grouped query.
func (r *reportingRepository) SumActivityByAccount(ctx context.Context, organizationID string, q domain.ActivityQuery) ([]domain.AccountActivity, error) {
	var from *time.Time
	if q.From != nil {
		d := domain.NormalizeDate(*q.From)
		from = &d
	}
	var accountIDs, accountTypes []string
	if len(q.AccountIDs) > 0 {
		accountIDs = q.AccountIDs
	}
	for _, t := range q.AccountTypes {
		accountTypes = append(accountTypes, string(t))
	}

	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.organization_id = $1
			AND e.organization_id = $1
			AND a.is_active
			AND e.status = $2
			AND e.entry_date <= $3
			AND ($4::date IS NULL OR e.entry_date >= $4)
			AND ($5::text[] IS NULL OR a.account_id = ANY($5))
			AND ($6::text[] IS NULL OR a.account_type = ANY($6))
		GROUP BY a.account_id, a.code, a.name, a.account_type
		HAVING SUM(l.debit) <> 0 OR SUM(l.credit) <> 0
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query,
		organizationID,
		string(domain.EntryPosted),
		domain.NormalizeDate(q.To),
		from,
		accountIDs,
		accountTypes,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var (
			row         domain.AccountActivity
			accountType string
		)
		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}

// ListLedgerLines returns the posted lines of one account within period in ledger order.
func (r *reportingRepository) ListLedgerLines(ctx context.Context, organizationID, accountID string, period domain.DateRange) ([]domain.LedgerLine, error) {
	query := `
		SELECT
			e.entry_id,
			l.line_id,
			e.entry_date,
			e.reference,
			e.description,
			l.label,
			l.debit,
			l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.organization_id = $1
			AND l.account_id = $2
			AND e.status = $3
			AND e.entry_date BETWEEN $4 AND $5
		ORDER BY e.entry_date, e.created_at, e.entry_id, l.line_order;
	`
	rows, err := r.Pool.Query(ctx, query,
		organizationID,
		accountID,
		string(domain.EntryPosted),
		domain.NormalizeDate(period.From),
		domain.NormalizeDate(period.To),
	)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(
			&l.EntryID,
			&l.LineID,
			&l.EntryDate,
			&l.Reference,
			&l.EntryDescription,
			&l.Label,
			&l.Debit,
			&l.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return lines, nil
}
