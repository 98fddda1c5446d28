package handlers

import (
	"net/http"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports
type reportingHandler struct {
	responder
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reporting handler
func newReportingHandler(rs portssvc.ReportingService, production bool) *reportingHandler {
	return &reportingHandler{
		responder:        responder{production: production},
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers the routes for financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, production bool) {
	h := newReportingHandler(reportingService, production)

	reports := rg.Group("/reports")
	{
		reports.POST("/general-ledger/:accountId", h.getGeneralLedger)
		reports.POST("/trial-balance", h.getTrialBalance)
		reports.POST("/balance-sheet", h.getBalanceSheet)
		reports.POST("/income-statement", h.getIncomeStatement)
	}
}

// getGeneralLedger godoc
// @Summary Get the general ledger of an account
// @Description Lists the posted lines of the account in the period with a running balance
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   accountId path string true "Account ID"
// @Param   period body dto.DateRangeRequest true "Period"
// @Success 200 {object} dto.DataEnvelope{data=dto.GeneralLedgerResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Invalid period"
// @Failure 404 {object} dto.ErrorEnvelope "Account not found"
// @Security BearerAuth
// @Router /reports/general-ledger/{accountId} [post]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.DateRangeRequest
	if !h.bindJSON(c, &req, false) {
		return
	}
	period, err := req.ToDateRange()
	if err != nil {
		h.respondError(c, err)
		return
	}

	report, err := h.reportingService.GetGeneralLedger(c.Request.Context(), orgID, c.Param("accountId"), userID, period)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToGeneralLedgerResponse(report))
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Posted debit and credit totals per active account for the period
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   body body dto.TrialBalanceRequest true "Period and optional accounts"
// @Success 200 {object} dto.DataEnvelope{data=dto.TrialBalanceResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Invalid period"
// @Security BearerAuth
// @Router /reports/trial-balance [post]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.TrialBalanceRequest
	if !h.bindJSON(c, &req, false) {
		return
	}
	period, err := req.ToDateRange()
	if err != nil {
		h.respondError(c, err)
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), orgID, userID, domain.TrialBalanceQuery{
		Period:     period,
		AccountIDs: req.AccountIDs,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Cumulative asset, liability and equity balances up to and including asOfDate
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   body body dto.BalanceSheetRequest true "Snapshot date"
// @Success 200 {object} dto.DataEnvelope{data=dto.BalanceSheetResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Invalid date"
// @Security BearerAuth
// @Router /reports/balance-sheet [post]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.BalanceSheetRequest
	if !h.bindJSON(c, &req, false) {
		return
	}
	asOf, err := dto.ParseDate("asOfDate", req.AsOfDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), orgID, userID, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getIncomeStatement godoc
// @Summary Get the income statement
// @Description Revenue and expense totals for the period and the resulting net income
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string true "Organization ID"
// @Param   period body dto.DateRangeRequest true "Period"
// @Success 200 {object} dto.DataEnvelope{data=dto.IncomeStatementResponse}
// @Failure 400 {object} dto.ErrorEnvelope "Invalid period"
// @Security BearerAuth
// @Router /reports/income-statement [post]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	orgID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.DateRangeRequest
	if !h.bindJSON(c, &req, false) {
		return
	}
	period, err := req.ToDateRange()
	if err != nil {
		h.respondError(c, err)
		return
	}

	report, err := h.reportingService.GetIncomeStatement(c.Request.Context(), orgID, userID, period)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.ToIncomeStatementResponse(report))
}
