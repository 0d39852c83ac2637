package services

import (
	"context"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/dto"
)

// LoanProductReaderSvc defines read operations for loan products
type LoanProductReaderSvc interface {
	// GetLoanProductByID retrieves a product by ID.
	GetLoanProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error)

	// ListLoanProducts retrieves a paginated list of products.
	ListLoanProducts(ctx context.Context, limit, offset int) ([]domain.LoanProduct, error)
}

// LoanProductWriterSvc defines write operations for loan products
type LoanProductWriterSvc interface {
	// CreateLoanProduct registers a new product.
	CreateLoanProduct(ctx context.Context, req dto.CreateLoanProductRequest, actor domain.User) (*domain.LoanProduct, error)

	// UpdateLoanProduct updates a product's terms.
	UpdateLoanProduct(ctx context.Context, productID string, req dto.UpdateLoanProductRequest, actor domain.User) (*domain.LoanProduct, error)

	// DeleteLoanProduct soft-deletes a product.
	DeleteLoanProduct(ctx context.Context, productID string, actor domain.User) error
}

// LoanProductSvcFacade combines all product-related service interfaces
type LoanProductSvcFacade interface {
	LoanProductReaderSvc
	LoanProductWriterSvc
}
