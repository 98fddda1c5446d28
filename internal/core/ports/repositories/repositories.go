package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
// Each storage adapter builds one over its own handle.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	EntryRepo     EntryRepositoryFacade
	ReportingRepo ReportingRepository
	// Ping checks that the underlying storage is reachable.
	Ping func(ctx context.Context) error
}
