package mapping

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		Category:    d.Category,
		Amount:      d.Amount,
		IncurredAt:  d.IncurredAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		Category:    m.Category,
		Amount:      m.Amount,
		IncurredAt:  m.IncurredAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
