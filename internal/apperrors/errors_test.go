package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{name: "nil", err: nil, want: ""},
		{name: "wrapped validation", err: fmt.Errorf("lines: %w", apperrors.ErrValidation), want: apperrors.CodeValidation},
		{name: "not found", err: apperrors.ErrNotFound, want: apperrors.CodeNotFound},
		{name: "duplicate", err: fmt.Errorf("%w: code 512", apperrors.ErrDuplicate), want: apperrors.CodeDuplicate},
		{name: "in use", err: apperrors.ErrInUse, want: apperrors.CodeInUse},
		{name: "system account", err: apperrors.ErrSystemAccount, want: apperrors.CodeSystemAccount},
		{name: "invalid state", err: fmt.Errorf("post: %w", apperrors.ErrInvalidState), want: apperrors.CodeInvalidState},
		{name: "forbidden", err: apperrors.ErrForbidden, want: apperrors.CodeForbidden},
		{name: "unknown", err: errors.New("connection reset"), want: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.CodeOf(tt.err))
		})
	}
}

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperrors.MetadataFor(apperrors.CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusForbidden, apperrors.MetadataFor(apperrors.CodeForbidden).HTTPStatus)
	assert.Equal(t, http.StatusConflict, apperrors.MetadataFor(apperrors.CodeInvalidState).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, apperrors.MetadataFor("SOMETHING_ELSE").HTTPStatus)
	assert.False(t, apperrors.MetadataFor(apperrors.CodeInternal).DetailsAllowed)
}
