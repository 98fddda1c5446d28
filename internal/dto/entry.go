package dto

import (
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit and/or credit line of an entry request.
type EntryLineRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	Label     string          `json:"label" binding:"max=255"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryRequest is the body used to create a draft entry or replace one.
type EntryRequest struct {
	JournalID   string             `json:"journalId" binding:"required"`
	Reference   string             `json:"reference" binding:"max=100"`
	Date        string             `json:"date" binding:"required,datetime=2006-01-02"`
	Description string             `json:"description" binding:"max=1000"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToLines converts the request lines into domain lines numbered from 1.
func (r EntryRequest) ToLines() []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalEntryLine{
			AccountID: l.AccountID,
			Label:     l.Label,
			Debit:     l.Debit,
			Credit:    l.Credit,
			LineOrder: i + 1,
		}
	}
	return lines
}

// PostEntryRequest optionally sets the entry date while posting.
type PostEntryRequest struct {
	Date *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ReverseEntryRequest optionally dates the reversal entry.
type ReverseEntryRequest struct {
	ReversalDate *string `json:"reversalDate" binding:"omitempty,datetime=2006-01-02"`
}

// ListEntriesQuery is the closed set of query parameters for listing entries.
type ListEntriesQuery struct {
	JournalID    string `form:"journalId"`
	Status       string `form:"status" binding:"omitempty,oneof=draft posted cancelled"`
	StartDate    string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	ReversalOfID string `form:"reversalOfId"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset       int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter validates the query and converts it into a domain filter.
func (q ListEntriesQuery) ToFilter() (domain.EntryListFilter, error) {
	limit, offset := pagination.Normalize(q.Limit, q.Offset)
	f := domain.EntryListFilter{
		JournalID:    q.JournalID,
		ReversalOfID: q.ReversalOfID,
		Limit:        limit,
		Offset:       offset,
	}
	if q.Status != "" {
		s := domain.EntryStatus(q.Status)
		f.Status = &s
	}
	var err error
	if f.From, err = ParseOptionalDate("startDate", &q.StartDate); err != nil {
		return f, err
	}
	if f.To, err = ParseOptionalDate("endDate", &q.EndDate); err != nil {
		return f, err
	}
	return f, nil
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID       string          `json:"id"`
	AccountID    string          `json:"accountId"`
	Label        string          `json:"label"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Reconciled   bool            `json:"reconciled"`
	ReconciledAt *time.Time      `json:"reconciledAt"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID        string              `json:"id"`
	OrganizationID string              `json:"organizationId"`
	JournalID      string              `json:"journalId"`
	Reference      string              `json:"reference"`
	Date           string              `json:"date"`
	Description    string              `json:"description"`
	Status         domain.EntryStatus  `json:"status"`
	TotalDebit     decimal.Decimal     `json:"totalDebit"`
	TotalCredit    decimal.Decimal     `json:"totalCredit"`
	ReversalOfID   *string             `json:"reversalOfId"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
	PostedAt       *time.Time          `json:"postedAt"`
	PostedBy       *string             `json:"postedBy"`
	CancelledAt    *time.Time          `json:"cancelledAt"`
	CancelledBy    *string             `json:"cancelledBy"`
	Lines          []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// ToEntryResponse converts a domain.JournalEntry (and its lines, if loaded) to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:        e.EntryID,
		OrganizationID: e.OrganizationID,
		JournalID:      e.JournalID,
		Reference:      e.Reference,
		Date:           FormatDate(e.EntryDate),
		Description:    e.Description,
		Status:         e.Status,
		TotalDebit:     e.TotalDebit,
		TotalCredit:    e.TotalCredit,
		ReversalOfID:   optionalString(e.ReversalOfID),
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		PostedAt:       formatOptionalTime(e.PostedAt),
		PostedBy:       optionalString(e.PostedBy),
		CancelledAt:    formatOptionalTime(e.CancelledAt),
		CancelledBy:    optionalString(e.CancelledBy),
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = EntryLineResponse{
				LineID:       l.LineID,
				AccountID:    l.AccountID,
				Label:        l.Label,
				Debit:        l.Debit,
				Credit:       l.Credit,
				Reconciled:   l.Reconciled,
				ReconciledAt: formatOptionalTime(l.ReconciledAt),
			}
		}
	}
	return resp
}

// ToListEntriesResponse wraps a page of entries.
func ToListEntriesResponse(entries []domain.JournalEntry, filter domain.EntryListFilter) ListEntriesResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return ListEntriesResponse{Entries: out, Limit: filter.Limit, Offset: filter.Offset}
}
