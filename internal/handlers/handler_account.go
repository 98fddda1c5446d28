package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	responder
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, production bool) *accountHandler {
	return &accountHandler{
		responder:      responder{production: production},
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, production bool) {
	h := newAccountHandler(accountService, production)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/hierarchy", h.getAccountHierarchy)
		accounts.POST("/import/:template", h.importTemplate)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the organization's chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.DataEnvelope{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Validation error"
// @Failure 409 {object} dto.ErrorEnvelope "Duplicate code"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), orgID, req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created", slog.String("account_id", account.AccountID))
	respondData(c, http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.DataEnvelope{data=dto.AccountResponse}
// @Failure 404 {object} dto.ErrorEnvelope "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), orgID, c.Param("id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the organization's accounts ordered by code, optionally filtered by type and active flag
// @Tags accounts
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   type query string false "Account type" Enums(asset, liability, equity, revenue, expense)
// @Param   active query bool false "Active flag"
// @Success 200 {object} dto.DataEnvelope{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Invalid filter"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var q dto.ListAccountsQuery
	if !h.bindQuery(c, &q) {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), orgID, userID, q.ToFilter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccountHierarchy godoc
// @Summary Get the chart of accounts
// @Description Returns every account sorted by code, so children follow their parents
// @Tags accounts
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Success 200 {object} dto.DataEnvelope{data=[]dto.AccountResponse}
// @Security BearerAuth
// @Router /accounts/hierarchy [get]
func (h *accountHandler) getAccountHierarchy(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.GetAccountHierarchy(c.Request.Context(), orgID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToAccountResponses(accounts))
}

// importTemplate godoc
// @Summary Import a starter chart of accounts
// @Description Creates the accounts of a predefined chart. Codes that already exist are skipped.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   template path string true "Template" Enums(french, syscohada)
// @Param   body body dto.ImportTemplateRequest false "Currency override"
// @Success 201 {object} dto.DataEnvelope{data=dto.ImportTemplateResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Unknown template"
// @Security BearerAuth
// @Router /accounts/import/{template} [post]
func (h *accountHandler) importTemplate(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.ImportTemplateRequest
	if !h.bindJSON(c, &req, true) {
		return
	}
	template := c.Param("template")

	created, err := h.accountService.ImportTemplate(c.Request.Context(), orgID, domain.ChartTemplate(template), req.CurrencyCode, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Chart template imported",
		slog.String("template", template), slog.Int("created", created))
	respondData(c, http.StatusCreated, dto.ImportTemplateResponse{Template: template, Created: created})
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes the name and/or active flag. System accounts cannot be modified.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.DataEnvelope{data=dto.AccountResponse}
// @Failure 404 {object} dto.ErrorEnvelope "Account not found"
// @Failure 409 {object} dto.ErrorEnvelope "System account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), orgID, c.Param("id"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that no journal line or child account references
// @Tags accounts
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorEnvelope "Account not found"
// @Failure 409 {object} dto.ErrorEnvelope "System account or account in use"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), orgID, c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
