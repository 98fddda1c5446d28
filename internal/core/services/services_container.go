package services

import (
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/platform/config"
	"github.com/SscSPs/erp_ledger/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ledgerMetrics *metrics.LedgerMetrics) *portssvc.ServiceContainer {
	authorizer := NewClaimsAuthorizer()

	container := &portssvc.ServiceContainer{Authorizer: authorizer}

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.EntryRepo,
		WithAccountAuthorizer(authorizer),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.EntryRepo,
		WithJournalAuthorizer(authorizer),
	)

	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.JournalRepo,
		repos.AccountRepo,
		WithEntryAuthorizer(authorizer),
		WithBalanceTolerance(cfg.BalanceTolerance),
		WithPostedCancellation(cfg.AllowPostedCancel),
		WithLedgerMetrics(ledgerMetrics),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.AccountRepo,
		WithReportingAuthorizer(authorizer),
		WithReportingMetrics(ledgerMetrics),
	)

	return container
}
