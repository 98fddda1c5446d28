package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors onto the application sentinels.
// onForeignKey is the sentinel a foreign key violation stands for in the calling statement.
func translateError(err error, subject string, onForeignKey error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", subject, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", subject, apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			if onForeignKey != nil {
				return fmt.Errorf("%s (%s): %w", subject, pgErr.ConstraintName, onForeignKey)
			}
		}
	}
	return fmt.Errorf("%s: %w", subject, err)
}
