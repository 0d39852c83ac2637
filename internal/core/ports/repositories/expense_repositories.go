package repositories

import (
	"context"
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpenses retrieves a paginated list of expenses.
	FindExpenses(ctx context.Context, limit int, offset int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense updates an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseLifecycleManager defines operations for managing expense lifecycle
type ExpenseLifecycleManager interface {
	// MarkExpenseDeleted marks an expense as deleted (soft delete).
	MarkExpenseDeleted(ctx context.Context, expenseID string, deletedAt time.Time, deletedBy string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseLifecycleManager
}
