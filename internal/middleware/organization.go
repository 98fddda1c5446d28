package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// OrganizationHeader selects the tenant of every /api/v1 request.
const OrganizationHeader = "X-Organization-ID"

const maxOrganizationIDLength = 64

// OrganizationMiddleware requires the X-Organization-ID header and stores its value in the request context.
func OrganizationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := strings.TrimSpace(c.GetHeader(OrganizationHeader))
		if orgID == "" {
			abortWithCode(c, apperrors.CodeValidation, OrganizationHeader+" header is required")
			return
		}
		if len(orgID) > maxOrganizationIDLength {
			abortWithCode(c, apperrors.CodeValidation, OrganizationHeader+" header is too long")
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), organizationIDKey, orgID))
		enrichLogger(c, slog.String("organization_id", orgID))
		c.Next()
	}
}
