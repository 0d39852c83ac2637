package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to borrowers.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
	loanService   portssvc.LoanSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade, ls portssvc.LoanSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs, loanService: ls}
}

// registerClientRoutes registers all client-related routes.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade, loanService portssvc.LoanSvcFacade) {
	h := newClientHandler(clientService, loanService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.GET("/:id/loans", h.listClientLoans)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create client", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) listClientLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	if _, err := h.clientService.GetClientByID(c.Request.Context(), clientID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	loans, err := h.loanService.ListLoansByClientID(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans))
}

func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
