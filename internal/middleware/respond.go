package middleware

import (
	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// abortWithCode stops the chain and writes the error envelope for code.
func abortWithCode(c *gin.Context, code apperrors.Code, message string) {
	meta := apperrors.MetadataFor(code)
	if message == "" {
		message = meta.PublicMessage
	}
	c.AbortWithStatusJSON(meta.HTTPStatus, dto.NewErrorEnvelope(string(code), message))
}
