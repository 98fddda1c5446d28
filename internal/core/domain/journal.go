package domain

// JournalType classifies a journal by the origin of its entries.
type JournalType string

const (
	GeneralJournal  JournalType = "general"
	SalesJournal    JournalType = "sales"
	PurchaseJournal JournalType = "purchase"
	BankJournal     JournalType = "bank"
	CashJournal     JournalType = "cash"
)

// JournalTypes lists every journal type in presentation order.
func JournalTypes() []JournalType {
	return []JournalType{GeneralJournal, SalesJournal, PurchaseJournal, BankJournal, CashJournal}
}

// IsValid reports whether t is a known journal type.
func (t JournalType) IsValid() bool {
	for _, jt := range JournalTypes() {
		if jt == t {
			return true
		}
	}
	return false
}

// Journal is a named ledger that journal entries are filed under.
type Journal struct {
	JournalID      string      `json:"journalId"`
	OrganizationID string      `json:"organizationId"`
	Code           string      `json:"code"` // uppercase, unique per organization
	Name           string      `json:"name"`
	JournalType    JournalType `json:"type"`
	IsActive       bool        `json:"active"`
	AuditFields
}

// JournalFilter narrows journal listings. Nil fields do not filter.
type JournalFilter struct {
	JournalType *JournalType
	IsActive    *bool
}

// Matches applies the filter with exact-match semantics.
func (f JournalFilter) Matches(j Journal) bool {
	if f.JournalType != nil && j.JournalType != *f.JournalType {
		return false
	}
	if f.IsActive != nil && j.IsActive != *f.IsActive {
		return false
	}
	return true
}
