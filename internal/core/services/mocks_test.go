package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockAccountRepository) DeleteAccount(ctx context.Context, organizationID, accountID string) error {
	return m.Called(ctx, organizationID, accountID).Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, organizationID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, organizationID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalRepository) ListJournals(ctx context.Context, organizationID string, filter domain.JournalFilter) ([]domain.Journal, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}
func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	return m.Called(ctx, journal).Error(0)
}
func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	return m.Called(ctx, journal).Error(0)
}
func (m *MockJournalRepository) DeleteJournal(ctx context.Context, organizationID, journalID string) error {
	return m.Called(ctx, organizationID, journalID).Error(0)
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryRepository) ListEntries(ctx context.Context, organizationID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockEntryRepository) IsAccountReferenced(ctx context.Context, organizationID, accountID string) (bool, error) {
	args := m.Called(ctx, organizationID, accountID)
	return args.Bool(0), args.Error(1)
}
func (m *MockEntryRepository) IsJournalReferenced(ctx context.Context, organizationID, journalID string) (bool, error) {
	args := m.Called(ctx, organizationID, journalID)
	return args.Bool(0), args.Error(1)
}
func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockEntryRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockEntryRepository) MarkEntryPosted(ctx context.Context, organizationID, entryID, userID string, postedAt time.Time, entryDate *time.Time) error {
	return m.Called(ctx, organizationID, entryID, userID, postedAt, entryDate).Error(0)
}
func (m *MockEntryRepository) MarkEntryCancelled(ctx context.Context, organizationID, entryID, userID string, cancelledAt time.Time, from []domain.EntryStatus) error {
	return m.Called(ctx, organizationID, entryID, userID, cancelledAt, from).Error(0)
}
func (m *MockEntryRepository) DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error {
	return m.Called(ctx, organizationID, entryID).Error(0)
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumActivityByAccount(ctx context.Context, organizationID string, query domain.ActivityQuery) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, organizationID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}
func (m *MockReportingRepository) ListLedgerLines(ctx context.Context, organizationID, accountID string, period domain.DateRange) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, organizationID, accountID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// --- Mock Authorizer ---
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID, organizationID string, capability domain.Capability) error {
	return m.Called(ctx, userID, organizationID, capability).Error(0)
}
