package services

import (
	"context"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense by ID.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a paginated list of expenses.
	ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	// CreateExpense records a new expense.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor domain.User) (*domain.Expense, error)

	// UpdateExpense updates an expense entry.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actor domain.User) (*domain.Expense, error)

	// DeleteExpense soft-deletes an expense entry.
	DeleteExpense(ctx context.Context, expenseID string, actor domain.User) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
