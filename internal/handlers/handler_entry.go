package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler exposes the journal entry lifecycle.
type entryHandler struct {
	responder
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade, production bool) *entryHandler {
	return &entryHandler{
		responder:    responder{production: production},
		entryService: es,
	}
}

// RegisterEntryRoutes registers routes related to journal entries.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, production bool) {
	h := newEntryHandler(entryService, production)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.createEntry)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateDraftEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/cancel", h.cancelEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Validates that the entry has at least two lines and balances, then stores it as a draft
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   entry body dto.EntryRequest true "Entry with lines"
// @Success 201 {object} dto.DataEnvelope{data=dto.EntryResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Unbalanced or invalid entry"
// @Failure 404 {object} dto.ErrorEnvelope "Journal or account not found"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.EntryRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), orgID, req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry created", slog.String("entry_id", entry.EntryID))
	respondData(c, http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.DataEnvelope{data=dto.EntryResponse}
// @Failure 404 {object} dto.ErrorEnvelope "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), orgID, c.Param("id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entry headers, newest first
// @Tags journal-entries
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   journalId query string false "Journal ID"
// @Param   status query string false "Status" Enums(draft, posted, cancelled)
// @Param   startDate query string false "First date (YYYY-MM-DD)"
// @Param   endDate query string false "Last date (YYYY-MM-DD)"
// @Param   reversalOfId query string false "Only reversals of this entry"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.DataEnvelope{data=dto.ListEntriesResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Invalid filter"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var q dto.ListEntriesQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		h.respondError(c, err)
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), orgID, userID, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToListEntriesResponse(entries, filter))
}

// updateDraftEntry godoc
// @Summary Replace a draft journal entry
// @Description Replaces header and lines of a draft. Posted and cancelled entries are rejected.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Entry ID"
// @Param   entry body dto.EntryRequest true "Entry with lines"
// @Success 200 {object} dto.DataEnvelope{data=dto.EntryResponse}
// @Failure 409 {object} dto.ErrorEnvelope "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *entryHandler) updateDraftEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.EntryRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	entry, err := h.entryService.UpdateDraftEntry(c.Request.Context(), orgID, c.Param("id"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Tags journal-entries
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 409 {object} dto.ErrorEnvelope "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), orgID, c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Freezes the entry. An optional date replaces the entry date.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Entry ID"
// @Param   body body dto.PostEntryRequest false "Posting date"
// @Success 200 {object} dto.DataEnvelope{data=dto.EntryResponse}
// @Failure 409 {object} dto.ErrorEnvelope "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{id}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.PostEntryRequest
	if !h.bindJSON(c, &req, true) {
		return
	}

	entry, err := h.entryService.PostEntry(c.Request.Context(), orgID, c.Param("id"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	respondData(c, http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a journal entry
// @Description Cancelled entries stay on record but no longer count in any report
// @Tags journal-entries
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.DataEnvelope{data=dto.EntryResponse}
// @Failure 409 {object} dto.ErrorEnvelope "Entry cannot be cancelled"
// @Security BearerAuth
// @Router /journal-entries/{id}/cancel [post]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.CancelEntry(c.Request.Context(), orgID, c.Param("id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates a new draft entry in the same journal with debit and credit swapped on every line
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Entry ID"
// @Param   body body dto.ReverseEntryRequest false "Reversal date"
// @Success 201 {object} dto.DataEnvelope{data=dto.EntryResponse}
// @Failure 409 {object} dto.ErrorEnvelope "Entry is not posted or already reversed"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.ReverseEntryRequest
	if !h.bindJSON(c, &req, true) {
		return
	}

	reversal, err := h.entryService.ReverseEntry(c.Request.Context(), orgID, c.Param("id"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry reversed",
		slog.String("entry_id", c.Param("id")), slog.String("reversal_id", reversal.EntryID))
	respondData(c, http.StatusCreated, dto.ToEntryResponse(reversal))
}
