package services

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	GetEntryByID(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, organizationID, userID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error)
}

// EntryWriterSvc defines the lifecycle operations of journal entries.
type EntryWriterSvc interface {
	// CreateEntry validates and stores a balanced draft entry with its lines.
	CreateEntry(ctx context.Context, organizationID string, req dto.EntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry replaces the header and lines of a draft entry.
	UpdateDraftEntry(ctx context.Context, organizationID, entryID string, req dto.EntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry freezes a draft entry.
	PostEntry(ctx context.Context, organizationID, entryID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error)

	// CancelEntry marks an entry cancelled, removing it from every report.
	CancelEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates a new draft entry negating a posted one.
	ReverseEntry(ctx context.Context, organizationID, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, organizationID, entryID, userID string) error
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
