package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// responder writes the response envelopes shared by every handler.
type responder struct {
	production bool
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dto.DataEnvelope{Data: data})
}

// respondError classifies err and writes the error envelope.
// Outside production the underlying message is always returned.
func (r responder) respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := apperrors.CodeOf(err)
	meta := apperrors.MetadataFor(code)

	message := meta.PublicMessage
	if meta.DetailsAllowed || !r.production {
		message = err.Error()
	}

	if meta.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", string(code)), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", string(code)), slog.String("error", err.Error()))
	}
	c.JSON(meta.HTTPStatus, dto.NewErrorEnvelope(string(code), message))
}

// bindJSON decodes the body into req, answering 400 on failure.
// With optional set an empty body is accepted.
func (r responder) bindJSON(c *gin.Context, req any, optional bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	r.respondError(c, fmt.Errorf("%w: %s", apperrors.ErrValidation, describeValidationError(err)))
	return false
}

func (r responder) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		r.respondError(c, fmt.Errorf("%w: %s", apperrors.ErrValidation, describeValidationError(err)))
		return false
	}
	return true
}

// identity returns the organization and user of the request, answering 401 when absent.
func (r responder) identity(c *gin.Context) (organizationID, userID string, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		r.respondError(c, fmt.Errorf("%w: user not found in context", apperrors.ErrUnauthorized))
		return "", "", false
	}
	organizationID, ok = middleware.GetOrganizationIDFromContext(c)
	if !ok {
		r.respondError(c, fmt.Errorf("%w: organization not found in context", apperrors.ErrValidation))
		return "", "", false
	}
	return organizationID, userID, true
}

// describeValidationError turns binding failures into a client readable message.
func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if errors.Is(err, io.EOF) {
			return "request body is required"
		}
		return "invalid request: " + err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date formatted YYYY-MM-DD", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
