package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/platform/metrics"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	metrics       *metrics.LedgerMetrics
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer sets the organization authorizer for the reporting service.
func WithReportingAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithReportingMetrics records report latency.
func WithReportingMetrics(m *metrics.LedgerMetrics) ReportingServiceOption {
	return func(s *reportingService) {
		s.metrics = m
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) observe(report string, start time.Time) {
	s.metrics.ObserveReport(report, time.Since(start))
}

// GetGeneralLedger lists the posted lines of one account with a running balance starting at zero.
func (s *reportingService) GetGeneralLedger(ctx context.Context, organizationID, accountID, userID string, period domain.DateRange) (*domain.GeneralLedgerReport, error) {
	defer s.observe("general_ledger", time.Now())
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	period, err := normalizePeriod(period)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.ListLedgerLines(ctx, organizationID, accountID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}

	report := &domain.GeneralLedgerReport{
		Account:        *account,
		Period:         period,
		Rows:           make([]domain.GeneralLedgerRow, 0, len(lines)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		ClosingBalance: decimal.Zero,
	}
	running := decimal.Zero
	for _, l := range lines {
		running = running.Add(accounting.SignedBalance(account.AccountType, l.Debit, l.Credit))
		description := l.Label
		if description == "" {
			description = l.EntryDescription
		}
		report.Rows = append(report.Rows, domain.GeneralLedgerRow{
			EntryID:        l.EntryID,
			Date:           domain.NormalizeDate(l.EntryDate),
			Reference:      l.Reference,
			Description:    description,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: running,
		})
		report.TotalDebit = report.TotalDebit.Add(l.Debit)
		report.TotalCredit = report.TotalCredit.Add(l.Credit)
	}
	report.ClosingBalance = running

	s.LogInfo(ctx, "General ledger generated",
		slog.String("account_id", accountID),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// GetTrialBalance sums posted activity per account within the period, omitting accounts without activity.
func (s *reportingService) GetTrialBalance(ctx context.Context, organizationID, userID string, query domain.TrialBalanceQuery) (*domain.TrialBalanceReport, error) {
	defer s.observe("trial_balance", time.Now())
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	period, err := normalizePeriod(query.Period)
	if err != nil {
		return nil, err
	}

	activity, err := s.reportingRepo.SumActivityByAccount(ctx, organizationID, domain.ActivityQuery{
		From:       &period.From,
		To:         period.To,
		AccountIDs: query.AccountIDs,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data")
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		Period:      period,
		Rows:        make([]domain.TrialBalanceRow, 0, len(activity)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range activity {
		if a.Debit.IsZero() && a.Credit.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.AccountType,
			Debit:       a.Debit,
			Credit:      a.Credit,
			Balance:     accounting.SignedBalance(a.AccountType, a.Debit, a.Credit),
		})
		report.TotalDebit = report.TotalDebit.Add(a.Debit)
		report.TotalCredit = report.TotalCredit.Add(a.Credit)
	}
	sort.SliceStable(report.Rows, func(i, j int) bool { return report.Rows[i].Code < report.Rows[j].Code })

	s.LogInfo(ctx, "Trial balance generated", slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// GetBalanceSheet builds the cumulative position of asset, liability and equity accounts at asOf.
func (s *reportingService) GetBalanceSheet(ctx context.Context, organizationID, userID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	defer s.observe("balance_sheet", time.Now())
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	asOf = domain.NormalizeDate(asOf)

	activity, err := s.reportingRepo.SumActivityByAccount(ctx, organizationID, domain.ActivityQuery{To: asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("as_of", asOf.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.BalanceSheetLine{},
		Liabilities:      []domain.BalanceSheetLine{},
		Equity:           []domain.BalanceSheetLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		CurrentEarnings:  decimal.Zero,
	}
	for _, a := range activity {
		switch a.AccountType {
		case domain.Revenue, domain.Expense:
			report.CurrentEarnings = report.CurrentEarnings.Sub(a.Debit.Sub(a.Credit))
			continue
		}

		balance := a.Debit.Sub(a.Credit)
		if accounting.IsNegligible(balance, accounting.DefaultTolerance) {
			continue
		}
		line := domain.BalanceSheetLine{AccountID: a.AccountID, Code: a.Code, Name: a.Name, Debit: decimal.Zero, Credit: decimal.Zero}
		if balance.IsPositive() {
			line.Debit = balance
		} else {
			line.Credit = balance.Neg()
		}

		switch a.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(line.Debit.Sub(line.Credit))
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(line.Credit.Sub(line.Debit))
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(line.Credit.Sub(line.Debit))
		}
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("as_of", asOf.Format(domain.DateLayout)),
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return report, nil
}

// GetIncomeStatement nets revenue against expenses for the period.
func (s *reportingService) GetIncomeStatement(ctx context.Context, organizationID, userID string, period domain.DateRange) (*domain.IncomeStatementReport, error) {
	defer s.observe("income_statement", time.Now())
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}
	period, err := normalizePeriod(period)
	if err != nil {
		return nil, err
	}

	activity, err := s.reportingRepo.SumActivityByAccount(ctx, organizationID, domain.ActivityQuery{
		From:         &period.From,
		To:           period.To,
		AccountTypes: []domain.AccountType{domain.Revenue, domain.Expense},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement data")
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		Period:        period,
		Revenue:       []domain.IncomeStatementLine{},
		Expenses:      []domain.IncomeStatementLine{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, a := range activity {
		if a.AccountType != domain.Revenue && a.AccountType != domain.Expense {
			continue
		}
		amount := accounting.SignedBalance(a.AccountType, a.Debit, a.Credit)
		if accounting.IsNegligible(amount, accounting.DefaultTolerance) {
			continue
		}
		line := domain.IncomeStatementLine{AccountID: a.AccountID, Code: a.Code, Name: a.Name, Amount: amount}
		if a.AccountType == domain.Revenue {
			report.Revenue = append(report.Revenue, line)
			report.TotalRevenue = report.TotalRevenue.Add(amount)
		} else {
			report.Expenses = append(report.Expenses, line)
			report.TotalExpenses = report.TotalExpenses.Add(amount)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Income statement generated",
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

func normalizePeriod(period domain.DateRange) (domain.DateRange, error) {
	from, to := domain.NormalizeDate(period.From), domain.NormalizeDate(period.To)
	if from.After(to) {
		return period, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}
	return domain.DateRange{From: from, To: to}, nil
}
