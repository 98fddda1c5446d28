package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EntryHandlerTestSuite struct {
	handlerSuite
}

func sampleEntry(id string, status domain.EntryStatus) *domain.JournalEntry {
	hundred := decimal.NewFromInt(100)
	return &domain.JournalEntry{
		EntryID:        id,
		OrganizationID: testOrgID,
		JournalID:      "jr-1",
		Reference:      "INV-001",
		EntryDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:         status,
		TotalDebit:     hundred,
		TotalCredit:    hundred,
		Lines: []domain.JournalEntryLine{
			{LineID: "l1", EntryID: id, AccountID: "411", Debit: hundred, Credit: decimal.Zero, LineOrder: 1},
			{LineID: "l2", EntryID: id, AccountID: "701", Debit: decimal.Zero, Credit: hundred, LineOrder: 2},
		},
		AuditFields: domain.AuditFields{CreatedAt: time.Now().UTC(), CreatedBy: testUserID},
	}
}

func balancedEntryBody() map[string]any {
	return map[string]any{
		"journalId": "jr-1",
		"reference": "INV-001",
		"date":      "2024-01-15",
		"lines": []map[string]any{
			{"accountId": "411", "debit": 100},
			{"accountId": "701", "credit": "100.00"},
		},
	}
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	suite.entryService.On("CreateEntry", mock.Anything, testOrgID, mock.MatchedBy(func(req dto.EntryRequest) bool {
		lines := req.ToLines()
		return req.Date == "2024-01-15" && len(lines) == 2 &&
			lines[0].Debit.Equal(decimal.NewFromInt(100)) && lines[1].Credit.Equal(decimal.NewFromInt(100)) &&
			lines[1].LineOrder == 2
	}), testUserID).Return(sampleEntry("je-1", domain.EntryDraft), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.EntryResponse
	suite.decodeData(w, &resp)
	suite.Equal("je-1", resp.EntryID)
	suite.Equal(domain.EntryDraft, resp.Status)
	suite.Equal("2024-01-15", resp.Date)
	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.Len(resp.Lines, 2)
	suite.Nil(resp.PostedAt)
	suite.Nil(resp.ReversalOfID)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_RejectedBeforeService() {
	oneLine := balancedEntryBody()
	oneLine["lines"] = []map[string]any{{"accountId": "411", "debit": 100}}
	badDate := balancedEntryBody()
	badDate["date"] = "15/01/2024"
	noAccount := balancedEntryBody()
	noAccount["lines"] = []map[string]any{{"debit": 100}, {"accountId": "701", "credit": 100}}

	for name, body := range map[string]map[string]any{
		"single line":  oneLine,
		"date format":  badDate,
		"line account": noAccount,
	} {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)
			suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
		})
	}
	suite.entryService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Unbalanced() {
	suite.entryService.On("CreateEntry", mock.Anything, testOrgID, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("%w: entry is not balanced (debit 100.00, credit 90.00)", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody())

	msg := suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
	suite.Contains(msg, "not balanced")
}

func (suite *EntryHandlerTestSuite) TestListEntries_Filters() {
	suite.entryService.On("ListEntries", mock.Anything, testOrgID, testUserID, mock.MatchedBy(func(f domain.EntryListFilter) bool {
		return f.Status != nil && *f.Status == domain.EntryPosted &&
			f.JournalID == "jr-1" &&
			f.From != nil && f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To == nil && f.Limit == 10 && f.Offset == 20
	})).Return([]domain.JournalEntry{*sampleEntry("je-1", domain.EntryPosted)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=posted&journalId=jr-1&startDate=2024-01-01&limit=10&offset=20", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListEntriesResponse
	suite.decodeData(w, &resp)
	suite.Len(resp.Entries, 1)
	suite.Equal(10, resp.Limit)
	suite.Equal(20, resp.Offset)
}

func (suite *EntryHandlerTestSuite) TestListEntries_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=archived", nil)
	suite.assertError(w, http.StatusBadRequest, string(apperrors.CodeValidation))
}

func (suite *EntryHandlerTestSuite) TestPostEntry() {
	suite.Run("without body", func() {
		posted := sampleEntry("je-1", domain.EntryPosted)
		suite.entryService.On("PostEntry", mock.Anything, testOrgID, "je-1", dto.PostEntryRequest{}, testUserID).
			Return(posted, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/post", nil)
		suite.Equal(http.StatusOK, w.Code, w.Body.String())
		var resp dto.EntryResponse
		suite.decodeData(w, &resp)
		suite.Equal(domain.EntryPosted, resp.Status)
	})
	suite.Run("with date", func() {
		suite.entryService.On("PostEntry", mock.Anything, testOrgID, "je-2", mock.MatchedBy(func(req dto.PostEntryRequest) bool {
			return req.Date != nil && *req.Date == "2024-02-01"
		}), testUserID).Return(sampleEntry("je-2", domain.EntryPosted), nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-2/post", map[string]any{"date": "2024-02-01"})
		suite.Equal(http.StatusOK, w.Code, w.Body.String())
	})
	suite.Run("already posted", func() {
		suite.entryService.On("PostEntry", mock.Anything, testOrgID, "je-3", mock.Anything, testUserID).
			Return(nil, fmt.Errorf("%w: entry je-3 is posted", apperrors.ErrInvalidState)).Once()

		w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-3/post", nil)
		suite.assertError(w, http.StatusConflict, string(apperrors.CodeInvalidState))
	})
}

func (suite *EntryHandlerTestSuite) TestCancelEntry() {
	cancelled := sampleEntry("je-1", domain.EntryCancelled)
	suite.entryService.On("CancelEntry", mock.Anything, testOrgID, "je-1", testUserID).Return(cancelled, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/cancel", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.EntryResponse
	suite.decodeData(w, &resp)
	suite.Equal(domain.EntryCancelled, resp.Status)
}

func (suite *EntryHandlerTestSuite) TestReverseEntry() {
	reversal := sampleEntry("je-rev", domain.EntryDraft)
	reversal.Reference = "REV-INV-001"
	reversal.ReversalOfID = "je-1"
	suite.entryService.On("ReverseEntry", mock.Anything, testOrgID, "je-1", mock.MatchedBy(func(req dto.ReverseEntryRequest) bool {
		return req.ReversalDate != nil && *req.ReversalDate == "2024-03-01"
	}), testUserID).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/reverse", map[string]any{"reversalDate": "2024-03-01"})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.EntryResponse
	suite.decodeData(w, &resp)
	suite.Equal("REV-INV-001", resp.Reference)
	suite.Require().NotNil(resp.ReversalOfID)
	suite.Equal("je-1", *resp.ReversalOfID)
}

func (suite *EntryHandlerTestSuite) TestUpdateAndDeleteDraft() {
	suite.Run("update posted entry", func() {
		suite.entryService.On("UpdateDraftEntry", mock.Anything, testOrgID, "je-1", mock.Anything, testUserID).
			Return(nil, apperrors.ErrInvalidState).Once()
		w := suite.do(http.MethodPut, "/api/v1/journal-entries/je-1", balancedEntryBody())
		suite.assertError(w, http.StatusConflict, string(apperrors.CodeInvalidState))
	})
	suite.Run("delete draft", func() {
		suite.entryService.On("DeleteEntry", mock.Anything, testOrgID, "je-2", testUserID).Return(nil).Once()
		w := suite.do(http.MethodDelete, "/api/v1/journal-entries/je-2", nil)
		suite.Equal(http.StatusNoContent, w.Code)
	})
	suite.Run("get missing", func() {
		suite.entryService.On("GetEntryByID", mock.Anything, testOrgID, "nope", testUserID).Return(nil, apperrors.ErrNotFound).Once()
		w := suite.do(http.MethodGet, "/api/v1/journal-entries/nope", nil)
		suite.assertError(w, http.StatusNotFound, string(apperrors.CodeNotFound))
	})
}

func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
