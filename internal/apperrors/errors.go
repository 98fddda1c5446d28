package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInUse indicates that a resource cannot be removed because ledger data references it.
var ErrInUse = errors.New("resource is referenced")

// ErrSystemAccount indicates an attempt to modify a protected system account.
var ErrSystemAccount = errors.New("system account cannot be modified")

// ErrInvalidState indicates that the operation is not allowed for the entry's current status.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrForbidden indicates that the caller lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or invalid identity.
var ErrUnauthorized = errors.New("unauthorized")

// Code is the machine readable error code returned to API clients.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeDuplicate     Code = "DUPLICATE_RESOURCE"
	CodeInUse         Code = "RESOURCE_IN_USE"
	CodeSystemAccount Code = "SYSTEM_ACCOUNT"
	CodeInvalidState  Code = "INVALID_STATE"
	CodeRateLimit     Code = "RATE_LIMITED"
	CodeInternal      Code = "INTERNAL_ERROR"
)

// Metadata describes how a code is surfaced over HTTP.
type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed", DetailsAllowed: true},
	CodeUnauthorized:  {HTTPStatus: http.StatusUnauthorized, PublicMessage: "authentication required", DetailsAllowed: true},
	CodeForbidden:     {HTTPStatus: http.StatusForbidden, PublicMessage: "access denied"},
	CodeNotFound:      {HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found", DetailsAllowed: true},
	CodeDuplicate:     {HTTPStatus: http.StatusConflict, PublicMessage: "resource already exists", DetailsAllowed: true},
	CodeInUse:         {HTTPStatus: http.StatusConflict, PublicMessage: "resource is referenced by ledger data", DetailsAllowed: true},
	CodeSystemAccount: {HTTPStatus: http.StatusConflict, PublicMessage: "system account cannot be modified", DetailsAllowed: true},
	CodeInvalidState:  {HTTPStatus: http.StatusConflict, PublicMessage: "operation not allowed in current state", DetailsAllowed: true},
	CodeRateLimit:     {HTTPStatus: http.StatusTooManyRequests, PublicMessage: "too many requests"},
	CodeInternal:      {HTTPStatus: http.StatusInternalServerError, PublicMessage: "internal server error"},
}

// sentinel order matters: the first match wins.
var sentinelCodes = []struct {
	err  error
	code Code
}{
	{ErrValidation, CodeValidation},
	{ErrUnauthorized, CodeUnauthorized},
	{ErrForbidden, CodeForbidden},
	{ErrNotFound, CodeNotFound},
	{ErrDuplicate, CodeDuplicate},
	{ErrInUse, CodeInUse},
	{ErrSystemAccount, CodeSystemAccount},
	{ErrInvalidState, CodeInvalidState},
}

// CodeOf classifies err by the sentinel it wraps. Unknown errors are internal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return CodeInternal
}

// MetadataFor returns the HTTP metadata for code, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}
