package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/middleware"
)

// claimsAuthorizer authorizes against the grants the auth middleware extracted from the caller's token.
type claimsAuthorizer struct{}

// NewClaimsAuthorizer creates an authorizer backed by token grants stored in the request context.
func NewClaimsAuthorizer() portssvc.OrganizationAuthorizerSvc {
	return claimsAuthorizer{}
}

var _ portssvc.OrganizationAuthorizerSvc = claimsAuthorizer{}

func (claimsAuthorizer) AuthorizeUserAction(ctx context.Context, userID, organizationID string, capability domain.Capability) error {
	grants, ok := middleware.GrantsFromCtx(ctx)
	if !ok {
		return fmt.Errorf("%w: no grants for user %s", apperrors.ErrForbidden, userID)
	}
	if ctxUser, ok := middleware.UserIDFromCtx(ctx); ok && ctxUser != userID {
		return fmt.Errorf("%w: grants belong to another user", apperrors.ErrForbidden)
	}
	if !grants.Allows(organizationID, capability) {
		return fmt.Errorf("%w: %s not granted in organization %s", apperrors.ErrForbidden, capability, organizationID)
	}
	return nil
}
