package services_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/erp_ledger/internal/adapters/database/boltdb"
	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/core/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/SscSPs/erp_ledger/internal/platform/config"
	"github.com/SscSPs/erp_ledger/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerScenarioTestSuite runs the services against the embedded store with token grants in context.
type LedgerScenarioTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *boltdb.Store
	registry *prometheus.Registry
	svc      *portssvc.ServiceContainer

	receivable domain.Account
	sales      domain.Account
	bank       domain.Account
	capital    domain.Account
	rent       domain.Account
	journal    domain.Journal
}

func (s *LedgerScenarioTestSuite) SetupTest() {
	s.ctx = middleware.WithGrants(context.Background(), userID, domain.Grants{
		Organizations: []string{orgID},
		Capabilities:  []string{string(domain.CapAccountingRead), string(domain.CapAccountingWrite), string(domain.CapAccountingPost)},
	})

	store, err := boltdb.Open(filepath.Join(s.T().TempDir(), "ledger.db"))
	s.Require().NoError(err)
	s.store = store
	s.registry = prometheus.NewRegistry()
	s.svc = s.container(true, s.registry)

	s.receivable = s.createAccount("411", domain.Asset)
	s.sales = s.createAccount("701", domain.Revenue)
	s.bank = s.createAccount("512", domain.Asset)
	s.capital = s.createAccount("101", domain.Equity)
	s.rent = s.createAccount("613", domain.Expense)

	journal, err := s.svc.Journal.CreateJournal(s.ctx, orgID, dto.CreateJournalRequest{Code: "od", Name: "Operations", JournalType: domain.GeneralJournal}, userID)
	s.Require().NoError(err)
	s.journal = *journal
}

func (s *LedgerScenarioTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *LedgerScenarioTestSuite) container(allowPostedCancel bool, reg prometheus.Registerer) *portssvc.ServiceContainer {
	cfg := &config.Config{AllowPostedCancel: allowPostedCancel}
	return services.NewServiceContainer(cfg, boltdb.NewRepositoryProvider(s.store), metrics.NewLedgerMetrics(reg))
}

func (s *LedgerScenarioTestSuite) createAccount(code string, t domain.AccountType) domain.Account {
	a, err := s.svc.Account.CreateAccount(s.ctx, orgID, dto.CreateAccountRequest{Code: code, Name: "Account " + code, AccountType: t, CurrencyCode: "eur"}, userID)
	s.Require().NoError(err)
	return *a
}

type line struct {
	account domain.Account
	debit   string
	credit  string
}

func (s *LedgerScenarioTestSuite) draft(date, reference string, lines ...line) (*domain.JournalEntry, error) {
	req := dto.EntryRequest{JournalID: s.journal.JournalID, Reference: reference, Date: date}
	for _, l := range lines {
		req.Lines = append(req.Lines, dto.EntryLineRequest{
			AccountID: l.account.AccountID,
			Debit:     decimal.RequireFromString(l.debit),
			Credit:    decimal.RequireFromString(l.credit),
		})
	}
	return s.svc.Entry.CreateEntry(s.ctx, orgID, req, userID)
}

func (s *LedgerScenarioTestSuite) posted(date, reference string, lines ...line) *domain.JournalEntry {
	e, err := s.draft(date, reference, lines...)
	s.Require().NoError(err)
	e, err = s.svc.Entry.PostEntry(s.ctx, orgID, e.EntryID, dto.PostEntryRequest{}, userID)
	s.Require().NoError(err)
	return e
}

func period(from, to string) domain.DateRange {
	f, _ := time.Parse(domain.DateLayout, from)
	t, _ := time.Parse(domain.DateLayout, to)
	return domain.DateRange{From: f, To: t}
}

func (s *LedgerScenarioTestSuite) trialBalance(from, to string) *domain.TrialBalanceReport {
	tb, err := s.svc.Reporting.GetTrialBalance(s.ctx, orgID, userID, domain.TrialBalanceQuery{Period: period(from, to)})
	s.Require().NoError(err)
	return tb
}

func (s *LedgerScenarioTestSuite) TestSaleAppearsInReports() {
	s.posted("2024-01-15", "INV-001", line{s.receivable, "100", "0"}, line{s.sales, "0", "100"})

	is, err := s.svc.Reporting.GetIncomeStatement(s.ctx, orgID, userID, period("2024-01-01", "2024-01-31"))
	s.Require().NoError(err)
	s.Require().Len(is.Revenue, 1)
	s.True(is.Revenue[0].Amount.Equal(decimal.NewFromInt(100)))
	s.True(is.TotalRevenue.Equal(decimal.NewFromInt(100)))
	s.True(is.NetIncome.Equal(decimal.NewFromInt(100)))

	tb := s.trialBalance("2024-01-01", "2024-01-31")
	s.True(tb.TotalDebit.Equal(decimal.NewFromInt(100)))
	s.True(tb.TotalCredit.Equal(decimal.NewFromInt(100)))
	s.Require().Len(tb.Rows, 2)
	s.Equal("411", tb.Rows[0].Code)
	s.True(tb.Rows[0].Balance.Equal(decimal.NewFromInt(100)))
	s.True(tb.Rows[1].Balance.Equal(decimal.NewFromInt(100)))

	bs, err := s.svc.Reporting.GetBalanceSheet(s.ctx, orgID, userID, period("2024-01-31", "2024-01-31").To)
	s.Require().NoError(err)
	s.True(bs.TotalAssets.Equal(decimal.NewFromInt(100)))
	s.True(bs.CurrentEarnings.Equal(decimal.NewFromInt(100)))
	s.True(bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.CurrentEarnings)))
}

func (s *LedgerScenarioTestSuite) TestUnbalancedEntryStoresNothing() {
	_, err := s.draft("2024-01-15", "BAD", line{s.receivable, "100", "0"}, line{s.sales, "0", "90"})
	s.ErrorIs(err, apperrors.ErrValidation)

	entries, err := s.svc.Entry.ListEntries(s.ctx, orgID, userID, domain.EntryListFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *LedgerScenarioTestSuite) TestReversalNetsToZero() {
	original := s.posted("2024-02-01", "INV-002", line{s.receivable, "250.50", "0"}, line{s.sales, "0", "250.50"})

	date := "2024-02-10"
	reversal, err := s.svc.Entry.ReverseEntry(s.ctx, orgID, original.EntryID, dto.ReverseEntryRequest{ReversalDate: &date}, userID)
	s.Require().NoError(err)
	s.Equal("REV-INV-002", reversal.Reference)
	_, err = s.svc.Entry.PostEntry(s.ctx, orgID, reversal.EntryID, dto.PostEntryRequest{}, userID)
	s.Require().NoError(err)

	tb := s.trialBalance("2024-02-01", "2024-02-28")
	s.True(tb.TotalDebit.Equal(tb.TotalCredit))
	for _, row := range tb.Rows {
		s.True(row.Balance.IsZero(), "account %s balance %s", row.Code, row.Balance)
	}

	_, err = s.svc.Entry.ReverseEntry(s.ctx, orgID, original.EntryID, dto.ReverseEntryRequest{}, userID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	reversals, err := s.svc.Entry.ListEntries(s.ctx, orgID, userID, domain.EntryListFilter{ReversalOfID: original.EntryID})
	s.Require().NoError(err)
	s.Len(reversals, 1)
}

func (s *LedgerScenarioTestSuite) TestConcurrentPostSucceedsOnce() {
	e, err := s.draft("2024-03-01", "RACE", line{s.bank, "10", "0"}, line{s.capital, "0", "10"})
	s.Require().NoError(err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Entry.PostEntry(s.ctx, orgID, e.EntryID, dto.PostEntryRequest{}, userID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperrors.CodeOf(err) == apperrors.CodeInvalidState:
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(workers-1, conflicts)
}

func (s *LedgerScenarioTestSuite) TestEmptyBalanceSheet() {
	s.draft("2024-01-02", "DRAFT-ONLY", line{s.bank, "5", "0"}, line{s.capital, "0", "5"})

	bs, err := s.svc.Reporting.GetBalanceSheet(s.ctx, orgID, userID, period("2024-12-31", "2024-12-31").To)
	s.Require().NoError(err)
	s.Empty(bs.Assets)
	s.Empty(bs.Liabilities)
	s.Empty(bs.Equity)
	s.True(bs.TotalAssets.IsZero())
	s.True(bs.TotalLiabilities.IsZero())
	s.True(bs.TotalEquity.IsZero())
	s.True(bs.CurrentEarnings.IsZero())
}

func (s *LedgerScenarioTestSuite) TestTrialBalanceSumsToZeroAndMatchesLedger() {
	s.posted("2024-04-01", "CAP", line{s.bank, "1000", "0"}, line{s.capital, "0", "1000"})
	s.posted("2024-04-05", "RENT", line{s.rent, "300", "0"}, line{s.bank, "0", "300"})
	s.posted("2024-04-09", "CASH", line{s.bank, "120", "0"}, line{s.receivable, "30", "0"}, line{s.sales, "0", "150"})

	tb := s.trialBalance("2024-04-01", "2024-04-30")
	net := decimal.Zero
	for _, row := range tb.Rows {
		net = net.Add(row.Debit.Sub(row.Credit))
	}
	s.True(net.IsZero())
	s.True(tb.TotalDebit.Equal(decimal.NewFromInt(1450)))

	gl, err := s.svc.Reporting.GetGeneralLedger(s.ctx, orgID, s.bank.AccountID, userID, period("2024-04-01", "2024-04-30"))
	s.Require().NoError(err)
	s.Require().Len(gl.Rows, 3)
	s.True(gl.Rows[0].RunningBalance.Equal(decimal.NewFromInt(1000)))
	s.True(gl.Rows[1].RunningBalance.Equal(decimal.NewFromInt(700)))
	s.True(gl.Rows[2].RunningBalance.Equal(decimal.NewFromInt(820)))
	for _, row := range tb.Rows {
		if row.AccountID == s.bank.AccountID {
			s.True(row.Balance.Equal(gl.ClosingBalance))
		}
	}

	bs, err := s.svc.Reporting.GetBalanceSheet(s.ctx, orgID, userID, period("2024-04-30", "2024-04-30").To)
	s.Require().NoError(err)
	s.True(bs.CurrentEarnings.Equal(decimal.NewFromInt(-150)))
	s.True(bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.CurrentEarnings)))
}

func (s *LedgerScenarioTestSuite) TestCancelledAndInactiveAreExcluded() {
	e := s.posted("2024-05-01", "VOID", line{s.bank, "40", "0"}, line{s.sales, "0", "40"})
	_, err := s.svc.Entry.CancelEntry(s.ctx, orgID, e.EntryID, userID)
	s.Require().NoError(err)
	s.Empty(s.trialBalance("2024-05-01", "2024-05-31").Rows)

	s.posted("2024-05-02", "KEEP", line{s.bank, "60", "0"}, line{s.sales, "0", "60"})
	inactive := false
	_, err = s.svc.Account.UpdateAccount(s.ctx, orgID, s.sales.AccountID, dto.UpdateAccountRequest{IsActive: &inactive}, userID)
	s.Require().NoError(err)

	tb := s.trialBalance("2024-05-01", "2024-05-31")
	s.Require().Len(tb.Rows, 1)
	s.Equal(s.bank.AccountID, tb.Rows[0].AccountID)

	_, err = s.draft("2024-05-03", "LATE", line{s.bank, "1", "0"}, line{s.sales, "0", "1"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioTestSuite) TestPostedCancellationPolicy() {
	strict := s.container(false, nil)
	e := s.posted("2024-06-01", "P", line{s.bank, "1", "0"}, line{s.capital, "0", "1"})

	_, err := strict.Entry.CancelEntry(s.ctx, orgID, e.EntryID, userID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	cancelled, err := s.svc.Entry.CancelEntry(s.ctx, orgID, e.EntryID, userID)
	s.Require().NoError(err)
	s.Equal(domain.EntryCancelled, cancelled.Status)
	s.Equal(userID, cancelled.CancelledBy)

	_, err = s.svc.Entry.CancelEntry(s.ctx, orgID, e.EntryID, userID)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *LedgerScenarioTestSuite) TestReferencedRecordsCannotBeDeleted() {
	s.posted("2024-07-01", "REF", line{s.bank, "1", "0"}, line{s.capital, "0", "1"})

	s.ErrorIs(s.svc.Account.DeleteAccount(s.ctx, orgID, s.bank.AccountID, userID), apperrors.ErrInUse)
	s.ErrorIs(s.svc.Journal.DeleteJournal(s.ctx, orgID, s.journal.JournalID, userID), apperrors.ErrInUse)
	s.NoError(s.svc.Account.DeleteAccount(s.ctx, orgID, s.rent.AccountID, userID))
}

func (s *LedgerScenarioTestSuite) TestTemplateImportIsIdempotent() {
	created, err := s.svc.Account.ImportTemplate(s.ctx, orgID, domain.TemplateSYSCOHADA, "", userID)
	s.Require().NoError(err)
	s.Positive(created)

	again, err := s.svc.Account.ImportTemplate(s.ctx, orgID, domain.TemplateSYSCOHADA, "", userID)
	s.Require().NoError(err)
	s.Zero(again)

	hierarchy, err := s.svc.Account.GetAccountHierarchy(s.ctx, orgID, userID)
	s.Require().NoError(err)
	for i := 1; i < len(hierarchy); i++ {
		s.LessOrEqual(hierarchy[i-1].Code, hierarchy[i].Code)
	}
}

func (s *LedgerScenarioTestSuite) TestReportsRejectInvertedPeriod() {
	_, err := s.svc.Reporting.GetIncomeStatement(s.ctx, orgID, userID, period("2024-12-31", "2024-01-01"))
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.svc.Reporting.GetTrialBalance(s.ctx, orgID, userID, domain.TrialBalanceQuery{Period: period("2024-12-31", "2024-01-01")})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioTestSuite) TestOrganizationsAreIsolated() {
	other := middleware.WithGrants(context.Background(), userID, domain.Grants{
		Organizations: []string{"org-2"},
		Capabilities:  []string{domain.Wildcard},
	})

	_, err := s.svc.Account.GetAccountByID(other, "org-2", s.bank.AccountID, userID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Account.ListAccounts(other, orgID, userID, domain.AccountFilter{})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerScenarioTestSuite) TestLifecycleIsCounted() {
	s.posted("2024-08-01", "M", line{s.bank, "1", "0"}, line{s.capital, "0", "1"})

	count, err := testutil.GatherAndCount(s.registry, "ledger_journal_entry_events_total")
	s.Require().NoError(err)
	s.GreaterOrEqual(count, 2)
}

func TestLedgerScenarios(t *testing.T) {
	suite.Run(t, new(LedgerScenarioTestSuite))
}
