package dto

import (
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a journal.
type CreateJournalRequest struct {
	Code        string             `json:"code" binding:"required,alphanum,uppercase,max=10"`
	Name        string             `json:"name" binding:"required,max=255"`
	JournalType domain.JournalType `json:"type" binding:"required,oneof=general sales purchase bank cash"`
}

// UpdateJournalRequest defines the fields of a journal that may change.
type UpdateJournalRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"active"`
}

// ListJournalsQuery holds the exact-match filters accepted by the journal listing.
type ListJournalsQuery struct {
	JournalType string `form:"type" binding:"omitempty,oneof=general sales purchase bank cash"`
	IsActive    *bool  `form:"active"`
}

// ToFilter converts the query into a domain filter.
func (q ListJournalsQuery) ToFilter() domain.JournalFilter {
	f := domain.JournalFilter{IsActive: q.IsActive}
	if q.JournalType != "" {
		t := domain.JournalType(q.JournalType)
		f.JournalType = &t
	}
	return f
}

// CreateDefaultsResponse reports how many default journals were created.
type CreateDefaultsResponse struct {
	Created int `json:"created"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID      string             `json:"id"`
	OrganizationID string             `json:"organizationId"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	JournalType    domain.JournalType `json:"type"`
	IsActive       bool               `json:"active"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:      j.JournalID,
		OrganizationID: j.OrganizationID,
		Code:           j.Code,
		Name:           j.Name,
		JournalType:    j.JournalType,
		IsActive:       j.IsActive,
		CreatedAt:      j.CreatedAt,
		CreatedBy:      j.CreatedBy,
		LastUpdatedAt:  j.LastUpdatedAt,
		LastUpdatedBy:  j.LastUpdatedBy,
	}
}

// ToJournalResponses converts a slice of journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	out := make([]JournalResponse, len(journals))
	for i := range journals {
		out[i] = ToJournalResponse(&journals[i])
	}
	return out
}
