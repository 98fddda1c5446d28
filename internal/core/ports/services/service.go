package services

// ServiceContainer holds instances of all the application services.
// Handlers depend on it rather than on concrete implementations.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Journal    JournalSvcFacade
	Entry      EntrySvcFacade
	Reporting  ReportingService
	Authorizer OrganizationAuthorizerSvc
}
