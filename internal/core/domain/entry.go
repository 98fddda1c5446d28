package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntryPosted    EntryStatus = "posted"
	EntryCancelled EntryStatus = "cancelled"
)

// IsValid reports whether s is a known entry status.
func (s EntryStatus) IsValid() bool {
	return s == EntryDraft || s == EntryPosted || s == EntryCancelled
}

// JournalEntry is a dated, balanced set of postings filed under a journal.
// Once posted, its lines, totals, date and journal never change.
type JournalEntry struct {
	EntryID        string             `json:"entryId"`
	OrganizationID string             `json:"organizationId"`
	JournalID      string             `json:"journalId"`
	Reference      string             `json:"reference"`
	EntryDate      time.Time          `json:"date"`
	Description    string             `json:"description"`
	Status         EntryStatus        `json:"status"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`
	TotalCredit    decimal.Decimal    `json:"totalCredit"`
	ReversalOfID   string             `json:"reversalOfId"`
	PostedAt       *time.Time         `json:"postedAt"`
	PostedBy       string             `json:"postedBy"`
	CancelledAt    *time.Time         `json:"cancelledAt"`
	CancelledBy    string             `json:"cancelledBy"`
	Lines          []JournalEntryLine `json:"lines"`
	AuditFields
}

// JournalEntryLine is one debit and/or credit posting within an entry.
type JournalEntryLine struct {
	LineID       string          `json:"lineId"`
	EntryID      string          `json:"entryId"`
	AccountID    string          `json:"accountId"`
	Label        string          `json:"label"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Reconciled   bool            `json:"reconciled"`
	ReconciledAt *time.Time      `json:"reconciledAt"`
	LineOrder    int             `json:"lineOrder"`
}

// SumLines returns the debit and credit totals of lines.
func SumLines(lines []JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// AccountIDs returns the distinct account ids referenced by the entry's lines, in line order.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// EntryListFilter is the closed set of filters accepted when listing entries.
type EntryListFilter struct {
	JournalID    string
	Status       *EntryStatus
	From         *time.Time
	To           *time.Time
	ReversalOfID string
	Limit        int
	Offset       int
}

// Matches applies every filter except pagination.
func (f EntryListFilter) Matches(e JournalEntry) bool {
	if f.JournalID != "" && e.JournalID != f.JournalID {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.ReversalOfID != "" && e.ReversalOfID != f.ReversalOfID {
		return false
	}
	day := NormalizeDate(e.EntryDate)
	if f.From != nil && day.Before(NormalizeDate(*f.From)) {
		return false
	}
	if f.To != nil && day.After(NormalizeDate(*f.To)) {
		return false
	}
	return true
}
