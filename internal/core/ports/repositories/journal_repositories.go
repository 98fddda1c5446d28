package repositories

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, organizationID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves the journals matching filter, ordered by code.
	ListJournals(ctx context.Context, organizationID string, filter domain.JournalFilter) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a new journal. A code already used in the organization yields apperrors.ErrDuplicate.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournal updates the mutable fields (name, active) of an existing journal.
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// DeleteJournal removes a journal. Journals referenced by entries yield apperrors.ErrInUse.
	DeleteJournal(ctx context.Context, organizationID, journalID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
