package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// EntryReader defines read operations for journal entries and their lines.
type EntryReader interface {
	// FindEntryByID retrieves an entry together with its lines ordered by line order.
	FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers (without lines) ordered by date descending.
	ListEntries(ctx context.Context, organizationID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error)

	// IsAccountReferenced reports whether any entry line posts to the account.
	IsAccountReferenced(ctx context.Context, organizationID, accountID string) (bool, error)

	// IsJournalReferenced reports whether any entry is filed under the journal.
	IsJournalReferenced(ctx context.Context, organizationID, journalID string) (bool, error)
}

// EntryWriter defines write operations for journal entries.
// Status transitions are conditional updates: they succeed only when the stored status
// is one of the expected ones and otherwise return apperrors.ErrInvalidState.
type EntryWriter interface {
	// SaveEntry persists an entry and all of its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceDraftEntry overwrites the header and lines of a draft entry atomically.
	ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkEntryPosted moves a draft entry to posted, stamping postedAt/postedBy.
	// A non-nil entryDate replaces the entry date in the same update.
	MarkEntryPosted(ctx context.Context, organizationID, entryID, userID string, postedAt time.Time, entryDate *time.Time) error

	// MarkEntryCancelled moves an entry whose status is in from to cancelled.
	MarkEntryCancelled(ctx context.Context, organizationID, entryID, userID string, cancelledAt time.Time, from []domain.EntryStatus) error

	// DeleteDraftEntry removes a draft entry and its lines.
	DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
