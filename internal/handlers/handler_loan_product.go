package handlers

import (
	"net/http"

	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// loanProductHandler handles HTTP requests related to loan products.
type loanProductHandler struct {
	productService portssvc.LoanProductSvcFacade
}

func newLoanProductHandler(ps portssvc.LoanProductSvcFacade) *loanProductHandler {
	return &loanProductHandler{productService: ps}
}

// registerLoanProductRoutes registers all product-related routes.
func registerLoanProductRoutes(rg *gin.RouterGroup, productService portssvc.LoanProductSvcFacade) {
	h := newLoanProductHandler(productService)

	products := rg.Group("/loan-products")
	{
		products.POST("", h.createLoanProduct)
		products.GET("", h.listLoanProducts)
		products.GET("/:id", h.getLoanProduct)
		products.PUT("/:id", h.updateLoanProduct)
		products.DELETE("/:id", h.deleteLoanProduct)
	}
}

func (h *loanProductHandler) createLoanProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateLoanProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.productService.CreateLoanProduct(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanProductResponse(product))
}

func (h *loanProductHandler) listLoanProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLoanProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	products, err := h.productService.ListLoanProducts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanProductsResponse(products))
}

func (h *loanProductHandler) getLoanProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	product, err := h.productService.GetLoanProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanProductResponse(product))
}

func (h *loanProductHandler) updateLoanProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateLoanProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.productService.UpdateLoanProduct(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanProductResponse(product))
}

func (h *loanProductHandler) deleteLoanProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.productService.DeleteLoanProduct(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
