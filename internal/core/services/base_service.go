package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	OrganizationAuthorizer portssvc.OrganizationAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user holds the capability within the organization.
// Without an authorizer every action is allowed, which is how the services run in tests and tools.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, organizationID string, capability domain.Capability) error {
	if s.OrganizationAuthorizer != nil {
		if err := s.OrganizationAuthorizer.AuthorizeUserAction(ctx, userID, organizationID, capability); err != nil {
			s.GetLogger(ctx).Warn("Authorization failed",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID),
				slog.String("capability", string(capability)))
			return err
		}
		return nil
	}
	s.LogDebug(ctx, "No organization authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("organization_id", organizationID),
		slog.String("capability", string(capability)))
	return nil
}
