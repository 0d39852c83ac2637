package services

import (
	"context"
	"errors"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/google/uuid"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates the operating expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// requireAdmin gates expense writes. Expenses sit outside the loan action
// vocabulary, so they stay an admin-only concern.
func (s *expenseService) requireAdmin(ctx context.Context, actor domain.User) error {
	if actor.Role != domain.RoleAdmin {
		s.LogDebug(ctx, "Expense write denied", "user_id", actor.UserID, "role", string(actor.Role))
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get expense", "expense_id", expenseID)
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.FindExpenses(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	return expenses, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor domain.User) (*domain.Expense, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, apperrors.ErrValidation
	}

	now := time.Now()
	incurredAt := now
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	expense := domain.Expense{
		ExpenseID:  uuid.NewString(),
		Category:   req.Category,
		Amount:     req.Amount,
		IncurredAt: incurredAt,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded", "expense_id", expense.ExpenseID, "category", expense.Category)
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actor domain.User) (*domain.Expense, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, apperrors.ErrValidation
		}
		expense.Amount = *req.Amount
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", "expense_id", expenseID)
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, actor domain.User) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}

	if err := s.expenseRepo.MarkExpenseDeleted(ctx, expenseID, time.Now(), actor.UserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete expense", "expense_id", expenseID)
		}
		return err
	}
	s.LogInfo(ctx, "Expense deleted", "expense_id", expenseID)
	return nil
}
