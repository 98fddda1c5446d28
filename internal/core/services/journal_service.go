package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/google/uuid"
)

// defaultJournals are created by CreateDefaultJournals, one per journal type.
var defaultJournals = []struct {
	code        string
	name        string
	journalType domain.JournalType
}{
	{code: "GEN", name: "General journal", journalType: domain.GeneralJournal},
	{code: "SAL", name: "Sales journal", journalType: domain.SalesJournal},
	{code: "PUR", name: "Purchases journal", journalType: domain.PurchaseJournal},
	{code: "BNK", name: "Bank journal", journalType: domain.BankJournal},
	{code: "CSH", name: "Cash journal", journalType: domain.CashJournal},
}

// journalService manages the journals entries are filed under.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	entryReader portsrepo.EntryReader
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalAuthorizer sets the organization authorizer
func WithJournalAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, entryReader portsrepo.EntryReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		entryReader: entryReader,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, organizationID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return nil, err
	}
	if !req.JournalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown journal type %q", apperrors.ErrValidation, req.JournalType)
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: journal code is required", apperrors.ErrValidation)
	}

	journal := newJournal(organizationID, code, req.Name, req.JournalType, userID)
	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("journal code %s already exists: %w", code, err)
		}
		s.LogError(ctx, err, "Failed to save journal", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created successfully",
		slog.String("journal_id", journal.JournalID),
		slog.String("code", journal.Code))
	return &journal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, organizationID, journalID, userID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, organizationID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, organizationID, userID string, filter domain.JournalFilter) ([]domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	journals, err := s.journalRepo.ListJournals(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, fmt.Errorf("failed to list journals for organization %s: %w", organizationID, err)
	}
	if journals == nil {
		return []domain.Journal{}, nil
	}
	return journals, nil
}

func (s *journalService) UpdateJournal(ctx context.Context, organizationID, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, organizationID, journalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: journal name cannot be empty", apperrors.ErrValidation)
		}
		journal.Name = name
	}
	if req.IsActive != nil {
		journal.IsActive = *req.IsActive
	}
	journal.LastUpdatedAt = time.Now().UTC()
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		s.LogError(ctx, err, "Failed to update journal", slog.String("journal_id", journalID))
		return nil, err
	}
	return journal, nil
}

func (s *journalService) DeleteJournal(ctx context.Context, organizationID, journalID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, organizationID, journalID)
	if err != nil {
		return err
	}

	referenced, err := s.entryReader.IsJournalReferenced(ctx, organizationID, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal references", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to check journal references: %w", err)
	}
	if referenced {
		return fmt.Errorf("journal %s has entries: %w", journal.Code, apperrors.ErrInUse)
	}

	if err := s.journalRepo.DeleteJournal(ctx, organizationID, journalID); err != nil {
		if !errors.Is(err, apperrors.ErrInUse) {
			s.LogError(ctx, err, "Failed to delete journal", slog.String("journal_id", journalID))
		}
		return err
	}
	s.LogInfo(ctx, "Journal deleted", slog.String("journal_id", journalID), slog.String("code", journal.Code))
	return nil
}

func (s *journalService) CreateDefaultJournals(ctx context.Context, organizationID, userID string) (int, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return 0, err
	}

	existing, err := s.journalRepo.ListJournals(ctx, organizationID, domain.JournalFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list existing journals: %w", err)
	}
	codes := make(map[string]struct{}, len(existing))
	for _, j := range existing {
		codes[j.Code] = struct{}{}
	}

	created := 0
	for _, def := range defaultJournals {
		if _, ok := codes[def.code]; ok {
			continue
		}
		journal := newJournal(organizationID, def.code, def.name, def.journalType, userID)
		if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			s.LogError(ctx, err, "Failed to create default journal", slog.String("code", def.code))
			return created, fmt.Errorf("failed to create journal %s: %w", def.code, err)
		}
		created++
	}

	s.LogInfo(ctx, "Default journals created", slog.Int("created", created))
	return created, nil
}

func newJournal(organizationID, code, name string, journalType domain.JournalType, userID string) domain.Journal {
	now := time.Now().UTC()
	return domain.Journal{
		JournalID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           code,
		Name:           name,
		JournalType:    journalType,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
