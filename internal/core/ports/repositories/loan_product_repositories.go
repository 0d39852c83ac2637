package repositories

import (
	"context"
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// LoanProductReader defines read operations for loan product data
type LoanProductReader interface {
	// FindLoanProductByID retrieves a specific product by its ID.
	FindLoanProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error)

	// FindLoanProducts retrieves a paginated list of products.
	FindLoanProducts(ctx context.Context, limit int, offset int) ([]domain.LoanProduct, error)
}

// LoanProductWriter defines write operations for loan product data
type LoanProductWriter interface {
	// SaveLoanProduct persists a new product.
	SaveLoanProduct(ctx context.Context, product domain.LoanProduct) error

	// UpdateLoanProduct updates an existing product's terms.
	UpdateLoanProduct(ctx context.Context, product domain.LoanProduct) error
}

// LoanProductLifecycleManager defines operations for managing product lifecycle
type LoanProductLifecycleManager interface {
	// MarkLoanProductDeleted marks a product as deleted (soft delete).
	MarkLoanProductDeleted(ctx context.Context, productID string, deletedAt time.Time, deletedBy string) error
}

// LoanProductRepositoryFacade combines all product-related repository interfaces
type LoanProductRepositoryFacade interface {
	LoanProductReader
	LoanProductWriter
	LoanProductLifecycleManager
}
