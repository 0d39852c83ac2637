package pgsql

import (
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over a shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(db),
		ClientRepo:      newPgxClientRepository(db),
		LoanProductRepo: newPgxLoanProductRepository(db),
		LoanRepo:        newPgxLoanRepository(db),
		PaymentRepo:     newPgxPaymentRepository(db),
		ExpenseRepo:     newPgxExpenseRepository(db),
	}
}
