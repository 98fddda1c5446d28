package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates HS256 bearer tokens.
// When issuer is non-empty the token's iss claim must match it.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortWithCode(c, apperrors.CodeUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			abortWithCode(c, apperrors.CodeUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret, issuer)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			abortWithCode(c, apperrors.CodeUnauthorized, msg)
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			abortWithCode(c, apperrors.CodeUnauthorized, "Invalid token claims")
			return
		}

		grants := domain.Grants{Organizations: claims.Organizations, Capabilities: claims.Permissions}
		c.Request = c.Request.WithContext(WithGrants(c.Request.Context(), claims.Subject, grants))
		enrichLogger(c, slog.String("user_id", claims.Subject))

		c.Next()
	}
}
