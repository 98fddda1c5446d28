package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID, accountID, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID, userID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountHierarchy(ctx context.Context, organizationID, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, organizationID, accountID, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}
func (m *MockAccountService) ImportTemplate(ctx context.Context, organizationID string, template domain.ChartTemplate, currencyCode, userID string) (int, error) {
	args := m.Called(ctx, organizationID, template, currencyCode, userID)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, organizationID, journalID, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, organizationID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, organizationID, userID string, filter domain.JournalFilter) ([]domain.Journal, error) {
	args := m.Called(ctx, organizationID, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}
func (m *MockJournalService) CreateJournal(ctx context.Context, organizationID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) UpdateJournal(ctx context.Context, organizationID, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, organizationID, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) DeleteJournal(ctx context.Context, organizationID, journalID, userID string) error {
	args := m.Called(ctx, organizationID, journalID, userID)
	return args.Error(0)
}
func (m *MockJournalService) CreateDefaultJournals(ctx context.Context, organizationID, userID string) (int, error) {
	args := m.Called(ctx, organizationID, userID)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, organizationID, entryID, userID))
}
func (m *MockEntryService) ListEntries(ctx context.Context, organizationID, userID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) CreateEntry(ctx context.Context, organizationID string, req dto.EntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, organizationID, req, userID))
}
func (m *MockEntryService) UpdateDraftEntry(ctx context.Context, organizationID, entryID string, req dto.EntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, organizationID, entryID, req, userID))
}
func (m *MockEntryService) PostEntry(ctx context.Context, organizationID, entryID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, organizationID, entryID, req, userID))
}
func (m *MockEntryService) CancelEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, organizationID, entryID, userID))
}
func (m *MockEntryService) ReverseEntry(ctx context.Context, organizationID, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, organizationID, entryID, req, userID))
}
func (m *MockEntryService) DeleteEntry(ctx context.Context, organizationID, entryID, userID string) error {
	args := m.Called(ctx, organizationID, entryID, userID)
	return args.Error(0)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetGeneralLedger(ctx context.Context, organizationID, accountID, userID string, period domain.DateRange) (*domain.GeneralLedgerReport, error) {
	args := m.Called(ctx, organizationID, accountID, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedgerReport), args.Error(1)
}
func (m *MockReportingService) GetTrialBalance(ctx context.Context, organizationID, userID string, query domain.TrialBalanceQuery) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, organizationID, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) GetBalanceSheet(ctx context.Context, organizationID, userID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, organizationID, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) GetIncomeStatement(ctx context.Context, organizationID, userID string, period domain.DateRange) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, organizationID, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
