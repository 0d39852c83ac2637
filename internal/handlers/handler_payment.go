package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for repayments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers payment routes. Recording lives under the
// loan it repays; reversal addresses the payment directly.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	rg.GET("/loans/:id/payments", h.listPayments)
	rg.POST("/loans/:id/payments", h.recordPayment)
	rg.POST("/payments/:id/reverse", h.reversePayment)
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payments, err := h.paymentService.ListPaymentsByLoanID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for record payment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), loanID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("loan_id", loanID),
		slog.String("amount", payment.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) reversePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.ReversePayment(c.Request.Context(), paymentID, req.Note, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Payment reversed",
		slog.String("payment_id", payment.PaymentID),
		slog.String("reversed_by", actor.UserID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
