package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, organization_id, code, name, journal_type, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (domain.Journal, error) {
	var (
		j           domain.Journal
		journalType string
	)
	err := row.Scan(
		&j.JournalID,
		&j.OrganizationID,
		&j.Code,
		&j.Name,
		&journalType,
		&j.IsActive,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	j.JournalType = domain.JournalType(journalType)
	return j, err
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, organizationID, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE organization_id = $1 AND journal_id = $2;`

	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, organizationID, journalID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("journal %s", journalID), nil)
	}
	return &journal, nil
}

func (r *PgxJournalRepository) ListJournals(ctx context.Context, organizationID string, filter domain.JournalFilter) ([]domain.Journal, error) {
	var journalType *string
	if filter.JournalType != nil {
		t := string(*filter.JournalType)
		journalType = &t
	}

	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE organization_id = $1
			AND ($2::text IS NULL OR journal_type = $2)
			AND ($3::boolean IS NULL OR is_active = $3)
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, journalType, filter.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		journal.JournalID,
		journal.OrganizationID,
		journal.Code,
		journal.Name,
		string(journal.JournalType),
		journal.IsActive,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("journal code %s", journal.Code), nil)
	}
	return nil
}

func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		UPDATE journals
		SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND journal_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		journal.OrganizationID,
		journal.JournalID,
		journal.Name,
		journal.IsActive,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal %s: %w", journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal %s: %w", journal.JournalID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, organizationID, journalID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM journals WHERE organization_id = $1 AND journal_id = $2;`,
		organizationID, journalID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("journal %s", journalID), apperrors.ErrInUse)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}
	return nil
}
