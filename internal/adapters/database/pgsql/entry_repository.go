package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/erp_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, organization_id, journal_id, reference, entry_date, description, status,
	total_debit, total_credit, reversal_of_id, posted_at, posted_by, cancelled_at, cancelled_by,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, label, debit, credit, reconciled, reconciled_at, line_order`

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var (
		e          domain.JournalEntry
		status     string
		reversalOf *string
	)
	err := row.Scan(
		&e.EntryID,
		&e.OrganizationID,
		&e.JournalID,
		&e.Reference,
		&e.EntryDate,
		&e.Description,
		&status,
		&e.TotalDebit,
		&e.TotalCredit,
		&reversalOf,
		&e.PostedAt,
		&e.PostedBy,
		&e.CancelledAt,
		&e.CancelledBy,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	e.Status = domain.EntryStatus(status)
	e.ReversalOfID = derefString(reversalOf)
	return e, err
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, organizationID, entryID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("entry %s", entryID), nil)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT `+lineColumns+` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_order;`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	entry.Lines = []domain.JournalEntryLine{}
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Label,
			&l.Debit,
			&l.Credit,
			&l.Reconciled,
			&l.ReconciledAt,
			&l.LineOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry line: %w", err)
		}
		entry.Lines = append(entry.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry lines: %w", err)
	}
	return &entry, nil
}

func (r *PgxEntryRepository) ListEntries(ctx context.Context, organizationID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	var from, to *time.Time
	if filter.From != nil {
		d := domain.NormalizeDate(*filter.From)
		from = &d
	}
	if filter.To != nil {
		d := domain.NormalizeDate(*filter.To)
		to = &d
	}
	limit, offset := pagination.Normalize(filter.Limit, filter.Offset)

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1
			AND ($2::text IS NULL OR journal_id = $2)
			AND ($3::text IS NULL OR status = $3)
			AND ($4::date IS NULL OR entry_date >= $4)
			AND ($5::date IS NULL OR entry_date <= $5)
			AND ($6::text IS NULL OR reversal_of_id = $6)
		ORDER BY entry_date DESC, created_at DESC, entry_id
		LIMIT $7 OFFSET $8;
	`
	rows, err := r.Pool.Query(ctx, query,
		organizationID,
		nullString(filter.JournalID),
		status,
		from,
		to,
		nullString(filter.ReversalOfID),
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxEntryRepository) IsAccountReferenced(ctx context.Context, organizationID, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.organization_id = $1 AND l.account_id = $2
		);
	`
	var referenced bool
	if err := r.Pool.QueryRow(ctx, query, organizationID, accountID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check references to account %s: %w", accountID, err)
	}
	return referenced, nil
}

func (r *PgxEntryRepository) IsJournalReferenced(ctx context.Context, organizationID, journalID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE organization_id = $1 AND journal_id = $2);`

	var referenced bool
	if err := r.Pool.QueryRow(ctx, query, organizationID, journalID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check references to journal %s: %w", journalID, err)
	}
	return referenced, nil
}

// SaveEntry inserts the entry header and its lines in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := checkEntryReferences(ctx, tx, entry); err != nil {
		return err
	}

	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		entry.EntryID,
		entry.OrganizationID,
		entry.JournalID,
		entry.Reference,
		domain.NormalizeDate(entry.EntryDate),
		entry.Description,
		string(entry.Status),
		entry.TotalDebit,
		entry.TotalCredit,
		nullString(entry.ReversalOfID),
		entry.PostedAt,
		entry.PostedBy,
		entry.CancelledAt,
		entry.CancelledBy,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("entry %s", entry.EntryID), apperrors.ErrNotFound)
	}

	if err := insertLines(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceDraftEntry rewrites header and lines of a draft while holding its row lock.
func (r *PgxEntryRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE organization_id = $1 AND entry_id = $2 FOR UPDATE;`,
		entry.OrganizationID, entry.EntryID,
	).Scan(&status)
	if err != nil {
		return translateError(err, fmt.Sprintf("entry %s", entry.EntryID), nil)
	}
	if domain.EntryStatus(status) != domain.EntryDraft {
		return fmt.Errorf("entry is %s: %w", status, apperrors.ErrInvalidState)
	}
	if err := checkEntryReferences(ctx, tx, entry); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET journal_id = $3, reference = $4, entry_date = $5, description = $6,
			total_debit = $7, total_credit = $8, last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $1 AND entry_id = $2;
	`
	_, err = tx.Exec(ctx, query,
		entry.OrganizationID,
		entry.EntryID,
		entry.JournalID,
		entry.Reference,
		domain.NormalizeDate(entry.EntryDate),
		entry.Description,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("entry %s", entry.EntryID), apperrors.ErrNotFound)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines of entry %s: %w", entry.EntryID, err)
	}
	if err := insertLines(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxEntryRepository) MarkEntryPosted(ctx context.Context, organizationID, entryID, userID string, postedAt time.Time, entryDate *time.Time) error {
	var date *time.Time
	if entryDate != nil {
		d := domain.NormalizeDate(*entryDate)
		date = &d
	}

	query := `
		UPDATE journal_entries
		SET status = $3, posted_at = $4, posted_by = $5, entry_date = COALESCE($6::date, entry_date),
			last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND entry_id = $2 AND status = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		organizationID,
		entryID,
		string(domain.EntryPosted),
		postedAt,
		userID,
		date,
		string(domain.EntryDraft),
	)
	if err != nil {
		return fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionRejected(ctx, organizationID, entryID)
	}
	return nil
}

func (r *PgxEntryRepository) MarkEntryCancelled(ctx context.Context, organizationID, entryID, userID string, cancelledAt time.Time, from []domain.EntryStatus) error {
	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = string(s)
	}

	query := `
		UPDATE journal_entries
		SET status = $3, cancelled_at = $4, cancelled_by = $5, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND entry_id = $2 AND status = ANY($6);
	`
	tag, err := r.Pool.Exec(ctx, query,
		organizationID,
		entryID,
		string(domain.EntryCancelled),
		cancelledAt,
		userID,
		fromStatuses,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionRejected(ctx, organizationID, entryID)
	}
	return nil
}

// DeleteDraftEntry removes a draft; its lines go with it through the cascading foreign key.
func (r *PgxEntryRepository) DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM journal_entries WHERE organization_id = $1 AND entry_id = $2 AND status = $3;`,
		organizationID, entryID, string(domain.EntryDraft),
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("entry %s", entryID), apperrors.ErrInUse)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionRejected(ctx, organizationID, entryID)
	}
	return nil
}

// transitionRejected explains why a conditional update matched no row.
func (r *PgxEntryRepository) transitionRejected(ctx context.Context, organizationID, entryID string) error {
	var status string
	err := r.Pool.QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`,
		organizationID, entryID,
	).Scan(&status)
	if err != nil {
		return translateError(err, fmt.Sprintf("entry %s", entryID), nil)
	}
	return fmt.Errorf("entry is %s: %w", status, apperrors.ErrInvalidState)
}

// checkEntryReferences verifies that the journal and every account belong to the entry's organization.
func checkEntryReferences(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	var journalExists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journals WHERE organization_id = $1 AND journal_id = $2);`,
		entry.OrganizationID, entry.JournalID,
	).Scan(&journalExists)
	if err != nil {
		return fmt.Errorf("failed to check journal %s: %w", entry.JournalID, err)
	}
	if !journalExists {
		return fmt.Errorf("journal %s: %w", entry.JournalID, apperrors.ErrNotFound)
	}

	accountIDs := entry.AccountIDs()
	rows, err := tx.Query(ctx,
		`SELECT account_id FROM accounts WHERE organization_id = $1 AND account_id = ANY($2);`,
		entry.OrganizationID, accountIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to check entry accounts: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to check entry accounts: %w", err)
	}

	known := make(map[string]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	for _, id := range accountIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	query := `INSERT INTO journal_entry_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	batch := &pgx.Batch{}
	for _, l := range entry.Lines {
		batch.Queue(query,
			l.LineID,
			entry.EntryID,
			l.AccountID,
			l.Label,
			l.Debit,
			l.Credit,
			l.Reconciled,
			l.ReconciledAt,
			l.LineOrder,
		)
	}

	br := tx.SendBatch(ctx, batch)
	// Close the batch results, checking for errors during execution
	if err := br.Close(); err != nil {
		return translateError(err, fmt.Sprintf("lines of entry %s", entry.EntryID), apperrors.ErrNotFound)
	}
	return nil
}
