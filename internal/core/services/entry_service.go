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
	"github.com/SscSPs/erp_ledger/internal/platform/metrics"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
	"github.com/SscSPs/erp_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reversalPrefix = "REV-"

// entryService drives the journal entry lifecycle: draft, posted, cancelled, reversed.
type entryService struct {
	BaseService
	entryRepo         portsrepo.EntryRepositoryFacade
	journalRepo       portsrepo.JournalReader
	accountRepo       portsrepo.AccountReader
	tolerance         decimal.Decimal
	allowPostedCancel bool
	metrics           *metrics.LedgerMetrics
	now               func() time.Time
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithEntryAuthorizer sets the organization authorizer
func WithEntryAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) EntryServiceOption {
	return func(s *entryService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithBalanceTolerance sets the largest debit/credit difference that is still rejected.
func WithBalanceTolerance(tolerance decimal.Decimal) EntryServiceOption {
	return func(s *entryService) {
		if tolerance.IsPositive() {
			s.tolerance = tolerance
		}
	}
}

// WithPostedCancellation controls whether posted entries may be cancelled instead of reversed.
func WithPostedCancellation(allowed bool) EntryServiceOption {
	return func(s *entryService) {
		s.allowPostedCancel = allowed
	}
}

// WithLedgerMetrics records lifecycle events.
func WithLedgerMetrics(m *metrics.LedgerMetrics) EntryServiceOption {
	return func(s *entryService) {
		s.metrics = m
	}
}

// WithEntryClock overrides the clock used for posting stamps and default reversal dates.
func WithEntryClock(now func() time.Time) EntryServiceOption {
	return func(s *entryService) {
		s.now = now
	}
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountReader, options ...EntryServiceOption) portssvc.EntrySvcFacade {
	svc := &entryService{
		entryRepo:         entryRepo,
		journalRepo:       journalRepo,
		accountRepo:       accountRepo,
		tolerance:         accounting.DefaultTolerance,
		allowPostedCancel: true,
		now:               func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) CreateEntry(ctx context.Context, organizationID string, req dto.EntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return nil, err
	}

	entry, err := s.prepareEntry(ctx, organizationID, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry.EntryID = uuid.NewString()
	entry.OrganizationID = organizationID
	entry.Status = domain.EntryDraft
	entry.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	assignLineIDs(&entry)

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("journal_id", entry.JournalID))
		return nil, err
	}
	s.metrics.IncEntryEvent(metrics.EventCreated)

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int("lines", len(entry.Lines)),
		slog.String("total", entry.TotalDebit.String()))
	return &entry, nil
}

func (s *entryService) UpdateDraftEntry(ctx context.Context, organizationID, entryID string, req dto.EntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return nil, err
	}

	current, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.EntryDraft {
		return nil, fmt.Errorf("entry is %s, only drafts can be edited: %w", current.Status, apperrors.ErrInvalidState)
	}

	entry, err := s.prepareEntry(ctx, organizationID, req)
	if err != nil {
		return nil, err
	}
	entry.EntryID = current.EntryID
	entry.OrganizationID = organizationID
	entry.Status = domain.EntryDraft
	entry.ReversalOfID = current.ReversalOfID
	entry.AuditFields = current.AuditFields
	entry.LastUpdatedAt = s.now()
	entry.LastUpdatedBy = userID
	assignLineIDs(&entry)

	if err := s.entryRepo.ReplaceDraftEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.metrics.IncStateConflict()
		} else {
			s.LogError(ctx, err, "Failed to replace draft entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	s.metrics.IncEntryEvent(metrics.EventUpdated)
	return &entry, nil
}

func (s *entryService) PostEntry(ctx context.Context, organizationID, entryID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingPost); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("entry is already %s: %w", entry.Status, apperrors.ErrInvalidState)
	}

	postDate, err := dto.ParseOptionalDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if postDate != nil {
		d := domain.NormalizeDate(*postDate)
		postDate = &d
	}

	if err := accounting.ValidateLines(entry.Lines, s.tolerance); err != nil {
		return nil, fmt.Errorf("entry %s cannot be posted: %w", entryID, err)
	}

	if err := s.entryRepo.MarkEntryPosted(ctx, organizationID, entryID, userID, s.now(), postDate); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.metrics.IncStateConflict()
			s.LogDebug(ctx, "Entry was posted concurrently", slog.String("entry_id", entryID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	s.metrics.IncEntryEvent(metrics.EventPosted)

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID))
	return s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
}

func (s *entryService) CancelEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingPost); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	from := []domain.EntryStatus{domain.EntryDraft}
	if s.allowPostedCancel {
		from = append(from, domain.EntryPosted)
	}
	switch {
	case entry.Status == domain.EntryCancelled:
		return nil, fmt.Errorf("entry is already cancelled: %w", apperrors.ErrInvalidState)
	case entry.Status == domain.EntryPosted && !s.allowPostedCancel:
		return nil, fmt.Errorf("posted entries must be reversed, not cancelled: %w", apperrors.ErrInvalidState)
	}

	if err := s.entryRepo.MarkEntryCancelled(ctx, organizationID, entryID, userID, s.now(), from); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.metrics.IncStateConflict()
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to cancel entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	s.metrics.IncEntryEvent(metrics.EventCancelled)

	s.LogInfo(ctx, "Journal entry cancelled",
		slog.String("entry_id", entryID),
		slog.String("previous_status", string(entry.Status)))
	return s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
}

func (s *entryService) ReverseEntry(ctx context.Context, organizationID, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingPost); err != nil {
		return nil, err
	}

	original, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("only posted entries can be reversed, entry is %s: %w", original.Status, apperrors.ErrInvalidState)
	}

	reversals, err := s.entryRepo.ListEntries(ctx, organizationID, domain.EntryListFilter{ReversalOfID: entryID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing reversals: %w", err)
	}
	for _, r := range reversals {
		if r.Status != domain.EntryCancelled {
			return nil, fmt.Errorf("entry already reversed by %s: %w", r.EntryID, apperrors.ErrInvalidState)
		}
	}

	reversalDate, err := dto.ParseOptionalDate("reversalDate", req.ReversalDate)
	if err != nil {
		return nil, err
	}
	date := domain.NormalizeDate(s.now())
	if reversalDate != nil {
		date = domain.NormalizeDate(*reversalDate)
	}

	now := s.now()
	reversal := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		JournalID:      original.JournalID,
		Reference:      reversalReference(*original),
		EntryDate:      date,
		Description:    "Reversal of " + reversalSubject(*original),
		Status:         domain.EntryDraft,
		TotalDebit:     original.TotalCredit,
		TotalCredit:    original.TotalDebit,
		ReversalOfID:   original.EntryID,
		Lines:          accounting.SwapLines(original.Lines),
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	assignLineIDs(&reversal)

	if err := s.entryRepo.SaveEntry(ctx, reversal); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	s.metrics.IncEntryEvent(metrics.EventReversed)

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_id", reversal.EntryID))
	return &reversal, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, organizationID, entryID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("only draft entries can be deleted, entry is %s: %w", entry.Status, apperrors.ErrInvalidState)
	}

	if err := s.entryRepo.DeleteDraftEntry(ctx, organizationID, entryID); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.metrics.IncStateConflict()
		}
		return err
	}
	s.metrics.IncEntryEvent(metrics.EventDeleted)
	s.LogInfo(ctx, "Draft entry deleted", slog.String("entry_id", entryID))
	return nil
}

func (s *entryService) GetEntryByID(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListEntries(ctx context.Context, organizationID, userID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *filter.Status)
	}
	filter.Limit, filter.Offset = pagination.Normalize(filter.Limit, filter.Offset)

	entries, err := s.entryRepo.ListEntries(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// prepareEntry validates a request and resolves it into an unsaved entry header with lines.
// Nothing is persisted when validation fails.
func (s *entryService) prepareEntry(ctx context.Context, organizationID string, req dto.EntryRequest) (domain.JournalEntry, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	lines := req.ToLines()
	if err := accounting.ValidateLines(lines, s.tolerance); err != nil {
		return domain.JournalEntry{}, err
	}

	entry := domain.JournalEntry{
		JournalID:   req.JournalID,
		Reference:   strings.TrimSpace(req.Reference),
		EntryDate:   domain.NormalizeDate(date),
		Description: req.Description,
		Lines:       lines,
	}
	entry.TotalDebit, entry.TotalCredit = domain.SumLines(lines)

	if err := s.checkReferences(ctx, organizationID, entry); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry, nil
}

// checkReferences requires the journal and every line account to exist in the organization and be active.
func (s *entryService) checkReferences(ctx context.Context, organizationID string, entry domain.JournalEntry) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, organizationID, entry.JournalID)
	if err != nil {
		return fmt.Errorf("journal %s: %w", entry.JournalID, err)
	}
	if !journal.IsActive {
		return fmt.Errorf("%w: journal %s is inactive", apperrors.ErrValidation, journal.Code)
	}

	ids := entry.AccountIDs()
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, organizationID, ids)
	if err != nil {
		return fmt.Errorf("failed to load line accounts: %w", err)
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
		}
	}
	return nil
}

func assignLineIDs(entry *domain.JournalEntry) {
	for i := range entry.Lines {
		entry.Lines[i].LineID = uuid.NewString()
		entry.Lines[i].EntryID = entry.EntryID
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func reversalReference(original domain.JournalEntry) string {
	if original.Reference != "" {
		return reversalPrefix + original.Reference
	}
	return reversalPrefix + shortID(original.EntryID)
}

func reversalSubject(original domain.JournalEntry) string {
	switch {
	case original.Reference != "":
		return original.Reference
	case original.Description != "":
		return original.Description
	default:
		return shortID(original.EntryID)
	}
}
