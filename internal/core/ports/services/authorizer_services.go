package services

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// OrganizationAuthorizerSvc decides whether a user may exercise a capability within an organization.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrForbidden when the user lacks the capability.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, capability domain.Capability) error
}
