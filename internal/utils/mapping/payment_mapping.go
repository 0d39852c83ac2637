package mapping

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		LoanID:         d.LoanID,
		Amount:         d.Amount,
		PenaltyPortion: d.PenaltyPortion,
		Method:         d.Method,
		PaidAt:         d.PaidAt,
		IsReversed:     d.IsReversed,
		ReversedBy:     d.ReversedBy,
		ReversalNote:   d.ReversalNote,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		LoanID:         m.LoanID,
		Amount:         m.Amount,
		PenaltyPortion: m.PenaltyPortion,
		Method:         m.Method,
		PaidAt:         m.PaidAt,
		IsReversed:     m.IsReversed,
		ReversedBy:     m.ReversedBy,
		ReversalNote:   m.ReversalNote,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
