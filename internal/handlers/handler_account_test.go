package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerTestSuite struct {
	handlerSuite
}

func sampleAccount(code string, accountType domain.AccountType) *domain.Account {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: testOrgID,
		Code:           code,
		Name:           "Account " + code,
		AccountType:    accountType,
		CurrencyCode:   "XOF",
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: testUserID, LastUpdatedAt: now, LastUpdatedBy: testUserID},
	}
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	created := sampleAccount("512", domain.Asset)
	suite.accountService.On("CreateAccount", mock.Anything, testOrgID,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "512" && req.AccountType == domain.Asset && req.ParentAccountID == nil
		}), testUserID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code": "512", "name": "Bank", "type": "asset", "currency": "XOF",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	suite.decodeData(w, &resp)
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("512", resp.Code)
	suite.Nil(resp.ParentAccountID)
	suite.True(resp.IsActive)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationErrors() {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing body", body: nil},
		{name: "malformed json", body: `{"code":`},
		{name: "unknown type", body: map[string]any{"code": "512", "name": "Bank", "type": "cash", "currency": "XOF"}},
		{name: "bad currency", body: map[string]any{"code": "512", "name": "Bank", "type": "asset", "currency": "ZZZ"}},
		{name: "missing code", body: map[string]any{"name": "Bank", "type": "asset", "currency": "XOF"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body)
			suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
		})
	}
	suite.accountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.accountService.On("CreateAccount", mock.Anything, testOrgID, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("%w: account code 512", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code": "512", "name": "Bank", "type": "asset", "currency": "XOF",
	})

	msg := suite.assertError(w, http.StatusConflict, string(apperrors.CodeDuplicate))
	suite.Contains(msg, "512")
}

func (suite *AccountHandlerTestSuite) TestListAccounts_PassesFilter() {
	accounts := []domain.Account{*sampleAccount("411", domain.Asset), *sampleAccount("512", domain.Asset)}
	suite.accountService.On("ListAccounts", mock.Anything, testOrgID, testUserID,
		mock.MatchedBy(func(f domain.AccountFilter) bool {
			return f.AccountType != nil && *f.AccountType == domain.Asset && f.IsActive != nil && *f.IsActive
		})).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?type=asset&active=true", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp []dto.AccountResponse
	suite.decodeData(w, &resp)
	suite.Len(resp, 2)
	suite.Equal("411", resp[0].Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_RejectsUnknownType() {
	w := suite.do(http.MethodGet, "/api/v1/accounts?type=stock", nil)
	suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.accountService.On("GetAccountByID", mock.Anything, testOrgID, "missing", testUserID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", nil)
	suite.assertError(w, http.StatusNotFound, string(apperrors.CodeNotFound))
}

func (suite *AccountHandlerTestSuite) TestGetAccountHierarchy() {
	suite.accountService.On("GetAccountHierarchy", mock.Anything, testOrgID, testUserID).
		Return([]domain.Account{*sampleAccount("1", domain.Equity)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/hierarchy", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decodeData(w, &resp)
	suite.Len(resp, 1)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_SystemAccount() {
	suite.accountService.On("UpdateAccount", mock.Anything, testOrgID, "sys", mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
		return req.Name != nil && *req.Name == "Renamed" && req.IsActive == nil
	}), testUserID).Return(nil, apperrors.ErrSystemAccount).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/sys", map[string]any{"name": "Renamed"})
	suite.assertError(w, http.StatusConflict, string(apperrors.CodeSystemAccount))
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	suite.Run("deleted", func() {
		suite.accountService.On("DeleteAccount", mock.Anything, testOrgID, "acc-1", testUserID).Return(nil).Once()
		w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-1", nil)
		suite.Equal(http.StatusNoContent, w.Code)
		suite.Empty(w.Body.String())
	})
	suite.Run("referenced", func() {
		suite.accountService.On("DeleteAccount", mock.Anything, testOrgID, "acc-2", testUserID).
			Return(fmt.Errorf("%w: account acc-2 has entry lines", apperrors.ErrInUse)).Once()
		w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-2", nil)
		suite.assertError(w, http.StatusConflict, string(apperrors.CodeInUse))
	})
}

func (suite *AccountHandlerTestSuite) TestImportTemplate() {
	suite.accountService.On("ImportTemplate", mock.Anything, testOrgID, domain.TemplateSYSCOHADA, "", testUserID).
		Return(42, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/import/syscohada", nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ImportTemplateResponse
	suite.decodeData(w, &resp)
	suite.Equal(dto.ImportTemplateResponse{Template: "syscohada", Created: 42}, resp)
}

func (suite *AccountHandlerTestSuite) TestImportTemplate_Unknown() {
	suite.accountService.On("ImportTemplate", mock.Anything, testOrgID, domain.ChartTemplate("german"), "EUR", testUserID).
		Return(0, fmt.Errorf("%w: unknown template german", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/import/german", map[string]any{"currency": "EUR"})
	suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
}

func (suite *AccountHandlerTestSuite) TestJournalRoutes() {
	journal := &domain.Journal{JournalID: "jr-1", OrganizationID: testOrgID, Code: "VT", Name: "Sales", JournalType: domain.SalesJournal, IsActive: true}

	suite.Run("create", func() {
		suite.journalService.On("CreateJournal", mock.Anything, testOrgID, dto.CreateJournalRequest{
			Code: "VT", Name: "Sales", JournalType: domain.SalesJournal,
		}, testUserID).Return(journal, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/journals", map[string]any{"code": "VT", "name": "Sales", "type": "sales"})
		suite.Equal(http.StatusCreated, w.Code, w.Body.String())
		var resp dto.JournalResponse
		suite.decodeData(w, &resp)
		suite.Equal("VT", resp.Code)
	})
	suite.Run("lowercase code rejected", func() {
		w := suite.do(http.MethodPost, "/api/v1/journals", map[string]any{"code": "vt", "name": "Sales", "type": "sales"})
		suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
	})
	suite.Run("defaults", func() {
		suite.journalService.On("CreateDefaultJournals", mock.Anything, testOrgID, testUserID).Return(5, nil).Once()
		w := suite.do(http.MethodPost, "/api/v1/journals/defaults", nil)
		suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	})
	suite.Run("delete in use", func() {
		suite.journalService.On("DeleteJournal", mock.Anything, testOrgID, "jr-1", testUserID).Return(apperrors.ErrInUse).Once()
		w := suite.do(http.MethodDelete, "/api/v1/journals/jr-1", nil)
		suite.assertError(w, http.StatusConflict, string(apperrors.CodeInUse))
	})
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
