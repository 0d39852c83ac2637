package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests for loan applications, the approval
// workflow and the read surfaces the dashboard renders.
type loanHandler struct {
	loanService    portssvc.LoanSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade, ps portssvc.PaymentSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls, paymentService: ps}
}

// registerLoanRoutes registers all loan-related routes.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newLoanHandler(loanService, paymentService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.PUT("/:id", h.updateLoan)
		loans.DELETE("/:id", h.deleteLoan)

		loans.POST("/:id/approve", h.approveLoan)
		loans.POST("/:id/reject", h.rejectLoan)
		loans.POST("/:id/disburse", h.disburseLoan)

		loans.GET("/:id/allowed-actions", h.allowedActions)
		loans.GET("/:id/events", h.listLoanEvents)
		loans.GET("/:id/tracking", h.getTracking)
		loans.GET("/:id/penalty-preview", h.previewPenalty)
	}
}

func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create loan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Loan application created", slog.String("loan_id", loan.LoanID), slog.String("client_id", loan.ClientID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) updateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// decision binds the optional note shared by approve and reject.
func decisionNote(c *gin.Context) (string, bool) {
	// The body is optional; an empty body means no note.
	var req dto.DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return "", false
		}
	}
	return req.Note, true
}

func (h *loanHandler) approveLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	note, ok := decisionNote(c)
	if !ok {
		return
	}

	loan, err := h.loanService.ApproveLoan(c.Request.Context(), c.Param("id"), note, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Loan approved", slog.String("loan_id", loan.LoanID), slog.String("approved_by", actor.UserID))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) rejectLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	note, ok := decisionNote(c)
	if !ok {
		return
	}

	loan, err := h.loanService.RejectLoan(c.Request.Context(), c.Param("id"), note, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Loan rejected", slog.String("loan_id", loan.LoanID), slog.String("rejected_by", actor.UserID))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) disburseLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.DisburseLoan(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Loan disbursed", slog.String("loan_id", loan.LoanID), slog.String("disbursed_by", actor.UserID))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) allowedActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	actions, err := h.loanService.AllowedActions(c.Request.Context(), loanID, actor.Role)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	c.JSON(http.StatusOK, dto.AllowedActionsResponse{LoanID: loanID, Actions: names})
}

func (h *loanHandler) listLoanEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	events, err := h.loanService.ListLoanEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkflowEventResponses(events))
}

func (h *loanHandler) getTracking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.paymentService.GetTrackingSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *loanHandler) previewPenalty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PenaltyPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	preview, err := h.paymentService.PreviewPenalty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}
