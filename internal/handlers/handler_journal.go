package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	responder
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade, production bool) *journalHandler {
	return &journalHandler{
		responder:      responder{production: production},
		journalService: js,
	}
}

// RegisterJournalRoutes registers routes related to journals.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, production bool) {
	h := newJournalHandler(journalService, production)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.POST("", h.createJournal)
		journals.POST("/defaults", h.createDefaultJournals)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", h.updateJournal)
		journals.DELETE("/:id", h.deleteJournal)
	}
}

// createJournal godoc
// @Summary Create a journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.DataEnvelope{data=dto.JournalResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Validation error"
// @Failure 409 {object} dto.ErrorEnvelope "Duplicate code"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.CreateJournalRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), orgID, req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.ToJournalResponse(journal))
}

// createDefaultJournals godoc
// @Summary Create the default journals
// @Description Creates one journal per journal type, skipping codes that already exist
// @Tags journals
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Success 201 {object} dto.DataEnvelope{data=dto.CreateDefaultsResponse}
// @Security BearerAuth
// @Router /journals/defaults [post]
func (h *journalHandler) createDefaultJournals(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	created, err := h.journalService.CreateDefaultJournals(c.Request.Context(), orgID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.CreateDefaultsResponse{Created: created})
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.DataEnvelope{data=dto.JournalResponse}
// @Failure 404 {object} dto.ErrorEnvelope "Journal not found"
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), orgID, c.Param("id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Tags journals
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   type query string false "Journal type" Enums(general, sales, purchase, bank, cash)
// @Param   active query bool false "Active flag"
// @Success 200 {object} dto.DataEnvelope{data=[]dto.JournalResponse}
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var q dto.ListJournalsQuery
	if !h.bindQuery(c, &q) {
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), orgID, userID, q.ToFilter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToJournalResponses(journals))
}

// updateJournal godoc
// @Summary Update a journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Journal ID"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.DataEnvelope{data=dto.JournalResponse}
// @Failure 404 {object} dto.ErrorEnvelope "Journal not found"
// @Security BearerAuth
// @Router /journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.UpdateJournalRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), orgID, c.Param("id"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal
// @Description Deletes a journal no entry is filed under
// @Tags journals
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 409 {object} dto.ErrorEnvelope "Journal in use"
// @Security BearerAuth
// @Router /journals/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), orgID, c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
