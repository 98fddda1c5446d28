package boltdb_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/erp_ledger/internal/adapters/database/boltdb"
	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testOrg = "org-1"

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *boltdb.Store
	repos portsrepo.RepositoryProvider

	cash    domain.Account
	sales   domain.Account
	journal domain.Journal
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := boltdb.Open(filepath.Join(s.T().TempDir(), "ledger.db"))
	s.Require().NoError(err)
	s.store = store
	s.repos = boltdb.NewRepositoryProvider(store)

	s.cash = s.account("a-cash", "512", domain.Asset)
	s.sales = s.account("a-sales", "706", domain.Revenue)
	s.journal = domain.Journal{JournalID: "j-gen", OrganizationID: testOrg, Code: "GEN", Name: "General", JournalType: domain.GeneralJournal, IsActive: true}
	s.Require().NoError(s.repos.JournalRepo.SaveJournal(s.ctx, s.journal))
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreTestSuite) account(id, code string, t domain.AccountType) domain.Account {
	a := domain.Account{AccountID: id, OrganizationID: testOrg, Code: code, Name: code, AccountType: t, CurrencyCode: "EUR", IsActive: true}
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, a))
	return a
}

func (s *StoreTestSuite) entry(id string, date time.Time, amount string, status domain.EntryStatus) domain.JournalEntry {
	amt := decimal.RequireFromString(amount)
	e := domain.JournalEntry{
		EntryID:        id,
		OrganizationID: testOrg,
		JournalID:      s.journal.JournalID,
		Reference:      id,
		EntryDate:      date,
		Status:         status,
		TotalDebit:     amt,
		TotalCredit:    amt,
		Lines: []domain.JournalEntryLine{
			{LineID: id + "-2", EntryID: id, AccountID: s.sales.AccountID, Credit: amt, Debit: decimal.Zero, LineOrder: 2},
			{LineID: id + "-1", EntryID: id, AccountID: s.cash.AccountID, Debit: amt, Credit: decimal.Zero, LineOrder: 1},
		},
		AuditFields: domain.AuditFields{CreatedAt: time.Now().UTC()},
	}
	s.Require().NoError(s.repos.EntryRepo.SaveEntry(s.ctx, e))
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) TestSaveAccount_DuplicateCode() {
	dup := domain.Account{AccountID: "other", OrganizationID: testOrg, Code: "512", AccountType: domain.Asset, IsActive: true}
	err := s.repos.AccountRepo.SaveAccount(s.ctx, dup)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	// same code in another organization is fine
	dup.OrganizationID = "org-2"
	s.NoError(s.repos.AccountRepo.SaveAccount(s.ctx, dup))
}

func (s *StoreTestSuite) TestFindAccount_ScopedToOrganization() {
	_, err := s.repos.AccountRepo.FindAccountByID(s.ctx, "org-2", s.cash.AccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	found, err := s.repos.AccountRepo.FindAccountsByIDs(s.ctx, testOrg, []string{s.cash.AccountID, "missing"})
	s.Require().NoError(err)
	s.Len(found, 1)
}

func (s *StoreTestSuite) TestListAccounts_FilterAndOrder() {
	s.account("a-bank", "411", domain.Asset)
	assetType := domain.Asset

	accounts, err := s.repos.AccountRepo.ListAccounts(s.ctx, testOrg, domain.AccountFilter{AccountType: &assetType})
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal("411", accounts[0].Code)
	s.Equal("512", accounts[1].Code)
}

func (s *StoreTestSuite) TestDeleteAccount_BlockedWhenReferenced() {
	s.entry("e1", day(2024, 1, 10), "100", domain.EntryDraft)

	err := s.repos.AccountRepo.DeleteAccount(s.ctx, testOrg, s.cash.AccountID)
	s.ErrorIs(err, apperrors.ErrInUse)

	err = s.repos.JournalRepo.DeleteJournal(s.ctx, testOrg, s.journal.JournalID)
	s.ErrorIs(err, apperrors.ErrInUse)

	s.Require().NoError(s.repos.EntryRepo.DeleteDraftEntry(s.ctx, testOrg, "e1"))
	s.NoError(s.repos.AccountRepo.DeleteAccount(s.ctx, testOrg, s.cash.AccountID))

	// the code becomes available again
	s.account("a-cash-2", "512", domain.Asset)
}

func (s *StoreTestSuite) TestDeleteAccount_BlockedByChild() {
	child := domain.Account{AccountID: "a-child", OrganizationID: testOrg, Code: "5121", AccountType: domain.Asset, ParentAccountID: s.cash.AccountID, IsActive: true}
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, child))

	err := s.repos.AccountRepo.DeleteAccount(s.ctx, testOrg, s.cash.AccountID)
	s.ErrorIs(err, apperrors.ErrInUse)
}

func (s *StoreTestSuite) TestFindEntry_LinesInOrder() {
	s.entry("e1", day(2024, 1, 10), "100", domain.EntryDraft)

	got, err := s.repos.EntryRepo.FindEntryByID(s.ctx, testOrg, "e1")
	s.Require().NoError(err)
	s.Require().Len(got.Lines, 2)
	s.Equal(1, got.Lines[0].LineOrder)
	s.True(got.TotalDebit.Equal(decimal.NewFromInt(100)))
}

func (s *StoreTestSuite) TestMarkEntryPosted_OnlyOnce() {
	s.entry("e1", day(2024, 1, 10), "100", domain.EntryDraft)
	postDate := day(2024, 1, 12)

	s.Require().NoError(s.repos.EntryRepo.MarkEntryPosted(s.ctx, testOrg, "e1", "u1", time.Now().UTC(), &postDate))
	err := s.repos.EntryRepo.MarkEntryPosted(s.ctx, testOrg, "e1", "u2", time.Now().UTC(), nil)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	got, err := s.repos.EntryRepo.FindEntryByID(s.ctx, testOrg, "e1")
	s.Require().NoError(err)
	s.Equal(domain.EntryPosted, got.Status)
	s.Equal("u1", got.PostedBy)
	s.True(got.EntryDate.Equal(postDate))

	s.ErrorIs(s.repos.EntryRepo.DeleteDraftEntry(s.ctx, testOrg, "e1"), apperrors.ErrInvalidState)
	s.ErrorIs(s.repos.EntryRepo.ReplaceDraftEntry(s.ctx, *got), apperrors.ErrInvalidState)
}

func (s *StoreTestSuite) TestMarkEntryCancelled_RespectsAllowedStatuses() {
	s.entry("e1", day(2024, 1, 10), "100", domain.EntryPosted)

	err := s.repos.EntryRepo.MarkEntryCancelled(s.ctx, testOrg, "e1", "u1", time.Now().UTC(), []domain.EntryStatus{domain.EntryDraft})
	s.ErrorIs(err, apperrors.ErrInvalidState)

	err = s.repos.EntryRepo.MarkEntryCancelled(s.ctx, testOrg, "e1", "u1", time.Now().UTC(), []domain.EntryStatus{domain.EntryDraft, domain.EntryPosted})
	s.NoError(err)

	err = s.repos.EntryRepo.MarkEntryCancelled(s.ctx, testOrg, "missing", "u1", time.Now().UTC(), []domain.EntryStatus{domain.EntryDraft})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveEntry_UnknownAccount() {
	e := domain.JournalEntry{
		EntryID: "bad", OrganizationID: testOrg, JournalID: s.journal.JournalID, Status: domain.EntryDraft,
		Lines: []domain.JournalEntryLine{{AccountID: "nope"}},
	}
	s.ErrorIs(s.repos.EntryRepo.SaveEntry(s.ctx, e), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestListEntries_FilterOrderAndPage() {
	s.entry("e1", day(2024, 1, 10), "100", domain.EntryPosted)
	s.entry("e2", day(2024, 2, 10), "50", domain.EntryDraft)
	s.entry("e3", day(2024, 3, 10), "25", domain.EntryPosted)

	all, err := s.repos.EntryRepo.ListEntries(s.ctx, testOrg, domain.EntryListFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("e3", all[0].EntryID)
	s.Nil(all[0].Lines)

	posted := domain.EntryPosted
	from := day(2024, 1, 1)
	to := day(2024, 1, 31)
	filtered, err := s.repos.EntryRepo.ListEntries(s.ctx, testOrg, domain.EntryListFilter{Status: &posted, From: &from, To: &to})
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal("e1", filtered[0].EntryID)

	page, err := s.repos.EntryRepo.ListEntries(s.ctx, testOrg, domain.EntryListFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("e2", page[0].EntryID)
}

func (s *StoreTestSuite) TestSumActivity_PostedActiveOnly() {
	s.entry("e1", day(2024, 1, 10), "100", domain.EntryPosted)
	s.entry("e2", day(2024, 1, 11), "40", domain.EntryDraft)
	s.entry("e3", day(2024, 1, 12), "30", domain.EntryCancelled)
	s.entry("e4", day(2024, 2, 1), "7", domain.EntryPosted)

	from := day(2024, 1, 1)
	activity, err := s.repos.ReportingRepo.SumActivityByAccount(s.ctx, testOrg, domain.ActivityQuery{From: &from, To: day(2024, 1, 31)})
	s.Require().NoError(err)
	s.Require().Len(activity, 2)
	s.Equal("512", activity[0].Code)
	s.True(activity[0].Debit.Equal(decimal.NewFromInt(100)))
	s.True(activity[1].Credit.Equal(decimal.NewFromInt(100)))

	// deactivated accounts disappear from reports
	s.cash.IsActive = false
	s.Require().NoError(s.repos.AccountRepo.UpdateAccount(s.ctx, s.cash))
	activity, err = s.repos.ReportingRepo.SumActivityByAccount(s.ctx, testOrg, domain.ActivityQuery{To: day(2024, 12, 31)})
	s.Require().NoError(err)
	s.Require().Len(activity, 1)
	s.True(activity[0].Credit.Equal(decimal.NewFromInt(107)))
}

func (s *StoreTestSuite) TestListLedgerLines_LedgerOrder() {
	s.entry("e2", day(2024, 1, 12), "20", domain.EntryPosted)
	s.entry("e1", day(2024, 1, 10), "10", domain.EntryPosted)
	s.entry("e3", day(2024, 1, 11), "99", domain.EntryDraft)

	lines, err := s.repos.ReportingRepo.ListLedgerLines(s.ctx, testOrg, s.cash.AccountID, domain.DateRange{From: day(2024, 1, 1), To: day(2024, 1, 31)})
	s.Require().NoError(err)
	s.Require().Len(lines, 2)
	s.Equal("e1", lines[0].EntryID)
	s.Equal("e2", lines[1].EntryID)
}

func (s *StoreTestSuite) TestPing() {
	s.NoError(s.repos.Ping(s.ctx))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
