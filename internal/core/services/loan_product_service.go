package services

import (
	"context"
	"errors"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/google/uuid"
)

type loanProductService struct {
	BaseService
	productRepo portsrepo.LoanProductRepositoryFacade
}

// NewLoanProductService creates the product catalog service.
func NewLoanProductService(productRepo portsrepo.LoanProductRepositoryFacade) portssvc.LoanProductSvcFacade {
	return &loanProductService{productRepo: productRepo}
}

var _ portssvc.LoanProductSvcFacade = (*loanProductService)(nil)

func (s *loanProductService) GetLoanProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	product, err := s.productRepo.FindLoanProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get loan product", "product_id", productID)
		}
		return nil, err
	}
	return product, nil
}

func (s *loanProductService) ListLoanProducts(ctx context.Context, limit, offset int) ([]domain.LoanProduct, error) {
	products, err := s.productRepo.FindLoanProducts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loan products")
		return nil, err
	}
	return products, nil
}

func (s *loanProductService) CreateLoanProduct(ctx context.Context, req dto.CreateLoanProductRequest, actor domain.User) (*domain.LoanProduct, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionEditLoanProduct); err != nil {
		return nil, err
	}

	now := time.Now()
	product := domain.LoanProduct{
		ProductID:       uuid.NewString(),
		Name:            req.Name,
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
		LatePenaltyRule: req.LatePenalty.ToPenaltyRule(),
		LateGraceDays:   req.LateGraceDays,
		MaturityRule:    req.MaturityRule.ToPenaltyRule(),
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.productRepo.SaveLoanProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save loan product")
		return nil, err
	}

	s.LogInfo(ctx, "Loan product created", "product_id", product.ProductID)
	return &product, nil
}

func (s *loanProductService) UpdateLoanProduct(ctx context.Context, productID string, req dto.UpdateLoanProductRequest, actor domain.User) (*domain.LoanProduct, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionEditLoanProduct); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindLoanProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.InterestRate != nil {
		product.InterestRate = *req.InterestRate
	}
	if req.TermMonths != nil {
		product.TermMonths = *req.TermMonths
	}
	if req.LatePenalty != nil {
		product.LatePenaltyRule = req.LatePenalty.ToPenaltyRule()
	}
	if req.LateGraceDays != nil {
		product.LateGraceDays = *req.LateGraceDays
	}
	if req.MaturityRule != nil {
		product.MaturityRule = req.MaturityRule.ToPenaltyRule()
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = actor.UserID

	if err := s.productRepo.UpdateLoanProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update loan product", "product_id", productID)
		return nil, err
	}
	return product, nil
}

func (s *loanProductService) DeleteLoanProduct(ctx context.Context, productID string, actor domain.User) error {
	if err := s.RequireCapability(ctx, actor, authz.ActionDeleteLoanProduct); err != nil {
		return err
	}

	if err := s.productRepo.MarkLoanProductDeleted(ctx, productID, time.Now(), actor.UserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete loan product", "product_id", productID)
		}
		return err
	}
	s.LogInfo(ctx, "Loan product deleted", "product_id", productID)
	return nil
}
