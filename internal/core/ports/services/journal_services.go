package services

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journals
type JournalReaderSvc interface {
	GetJournalByID(ctx context.Context, organizationID, journalID, userID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, organizationID, userID string, filter domain.JournalFilter) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journals
type JournalWriterSvc interface {
	CreateJournal(ctx context.Context, organizationID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)
	UpdateJournal(ctx context.Context, organizationID, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)
	DeleteJournal(ctx context.Context, organizationID, journalID, userID string) error

	// CreateDefaultJournals creates one journal per journal type, skipping codes that exist.
	CreateDefaultJournals(ctx context.Context, organizationID, userID string) (int, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
