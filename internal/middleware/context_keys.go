package middleware

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey         = contextKey("userID")
	organizationIDKey = contextKey("organizationID")
	grantsKey         = contextKey("grants")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin request.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated user ID from a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetOrganizationIDFromContext retrieves the organization selected by the X-Organization-ID header.
func GetOrganizationIDFromContext(c *gin.Context) (string, bool) {
	orgID, ok := c.Request.Context().Value(organizationIDKey).(string)
	return orgID, ok && orgID != ""
}

// WithGrants returns a copy of ctx carrying the caller's identity and grants.
func WithGrants(ctx context.Context, userID string, grants domain.Grants) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, grantsKey, grants)
}

// GrantsFromCtx returns the grants stored by AuthMiddleware.
func GrantsFromCtx(ctx context.Context) (domain.Grants, bool) {
	grants, ok := ctx.Value(grantsKey).(domain.Grants)
	return grants, ok
}
