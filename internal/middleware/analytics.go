package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/erp_ledger/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

// AnalyticsMiddleware sends one product event per successful mutation.
// Reads are not tracked.
func AnalyticsMiddleware(client *analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if c.Request.Method == http.MethodGet || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/journal-entries/:id/post" -> "api_v1_journal-entries_:id_post"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if orgID, ok := GetOrganizationIDFromContext(c); ok {
			props["organization_id"] = orgID
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		client.Enqueue(userID, eventName, props)
	}
}
