package dto

import (
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data for recording an operating expense.
type CreateExpenseRequest struct {
	Category   string          `json:"category" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredAt *time.Time      `json:"incurredAt"` // Defaults to now
	Notes      string          `json:"notes"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
type UpdateExpenseRequest struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Notes    *string          `json:"notes"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ExpenseResponse is the public view of an expense.
type ExpenseResponse struct {
	ExpenseID  string          `json:"expenseID"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredAt time.Time       `json:"incurredAt"`
	Notes      string          `json:"notes,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:  expense.ExpenseID,
		Category:   expense.Category,
		Amount:     expense.Amount,
		IncurredAt: expense.IncurredAt,
		Notes:      expense.Notes,
	}
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToListExpensesResponse converts expenses to the list DTO.
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: responses}
}
