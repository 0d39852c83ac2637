package domain

import (
	"time"

	"github.com/microcred/loan_management_app/internal/core/penalty"
	"github.com/shopspring/decimal"
)

// LoanProduct defines the terms a loan can be written against, including the
// penalty rules the repayment subsystem applies to it.
type LoanProduct struct {
	ProductID        string          `json:"productID"` // Primary Key (UUID)
	Name             string          `json:"name"`
	InterestRate     decimal.Decimal `json:"interestRate"` // Annual rate in percent
	TermMonths       int             `json:"termMonths"`
	LatePenaltyRule  penalty.Rule    `json:"latePenaltyRule"`
	LateGraceDays    int             `json:"lateGraceDays"`
	MaturityRule     penalty.Rule    `json:"maturityRule"`
	IsActive         bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
