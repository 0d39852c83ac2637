package mapping

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/core/penalty"
	"github.com/microcred/loan_management_app/internal/models"
)

// ToModelLoanProduct converts a domain LoanProduct to a model LoanProduct,
// flattening the penalty rules into columns.
func ToModelLoanProduct(d domain.LoanProduct) models.LoanProduct {
	return models.LoanProduct{
		ProductID:         d.ProductID,
		Name:              d.Name,
		InterestRate:      d.InterestRate,
		TermMonths:        d.TermMonths,
		LatePenaltyType:   string(d.LatePenaltyRule.Type),
		LatePenaltyValue:  d.LatePenaltyRule.Value,
		LatePenaltyCapPct: d.LatePenaltyRule.CapPercentOfOutstanding,
		LateGraceDays:     d.LateGraceDays,
		MaturityType:      string(d.MaturityRule.Type),
		MaturityValue:     d.MaturityRule.Value,
		MaturityCapPct:    d.MaturityRule.CapPercentOfOutstanding,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		DeletedAt:         d.DeletedAt,
	}
}

// ToDomainLoanProduct converts a model LoanProduct to a domain LoanProduct.
func ToDomainLoanProduct(m models.LoanProduct) domain.LoanProduct {
	return domain.LoanProduct{
		ProductID:    m.ProductID,
		Name:         m.Name,
		InterestRate: m.InterestRate,
		TermMonths:   m.TermMonths,
		LatePenaltyRule: penalty.Rule{
			Type:                    penalty.RuleType(m.LatePenaltyType),
			Value:                   m.LatePenaltyValue,
			CapPercentOfOutstanding: m.LatePenaltyCapPct,
		},
		LateGraceDays: m.LateGraceDays,
		MaturityRule: penalty.Rule{
			Type:                    penalty.RuleType(m.MaturityType),
			Value:                   m.MaturityValue,
			CapPercentOfOutstanding: m.MaturityCapPct,
		},
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
