package services

import (
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.LoanProduct = NewLoanProductService(repos.LoanProductRepo)

	container.Loan = NewLoanService(
		repos.LoanRepo,
		repos.ClientRepo,
		repos.LoanProductRepo,
		WithDefaultAfterDays(cfg.DefaultAfterDays),
	)

	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.LoanRepo,
		repos.LoanProductRepo,
	)

	container.Expense = NewExpenseService(repos.ExpenseRepo)

	container.Token = NewTokenService(cfg, container.User)

	return container
}
