package mapping

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:         d.LoanID,
		ClientID:       d.ClientID,
		ProductID:      d.ProductID,
		Principal:      d.Principal,
		InterestRate:   d.InterestRate,
		TermMonths:     d.TermMonths,
		WorkflowStatus: string(d.WorkflowStatus),
		LoanStatus:     string(d.LoanStatus),
		Outstanding:    d.Outstanding,
		DisbursedAt:    d.DisbursedAt,
		NextDueDate:    d.NextDueDate,
		MaturityDate:   d.MaturityDate,
		DecidedBy:      d.DecidedBy,
		DecisionNote:   d.DecisionNote,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		DeletedAt:      d.DeletedAt,
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:         m.LoanID,
		ClientID:       m.ClientID,
		ProductID:      m.ProductID,
		Principal:      m.Principal,
		InterestRate:   m.InterestRate,
		TermMonths:     m.TermMonths,
		WorkflowStatus: domain.WorkflowStatus(m.WorkflowStatus),
		LoanStatus:     domain.LoanStatus(m.LoanStatus),
		Outstanding:    m.Outstanding,
		DisbursedAt:    m.DisbursedAt,
		NextDueDate:    m.NextDueDate,
		MaturityDate:   m.MaturityDate,
		DecidedBy:      m.DecidedBy,
		DecisionNote:   m.DecisionNote,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		DeletedAt:      m.DeletedAt,
	}
}

// ToModelWorkflowEvent converts a domain WorkflowEvent to its model form.
func ToModelWorkflowEvent(d domain.WorkflowEvent) models.WorkflowEvent {
	return models.WorkflowEvent{
		EventID:     d.EventID,
		LoanID:      d.LoanID,
		Action:      d.Action,
		PerformedBy: d.PerformedBy,
		Notes:       d.Notes,
		OccurredAt:  d.OccurredAt,
	}
}

// ToDomainWorkflowEvent converts a model WorkflowEvent to its domain form.
func ToDomainWorkflowEvent(m models.WorkflowEvent) domain.WorkflowEvent {
	return domain.WorkflowEvent{
		EventID:     m.EventID,
		LoanID:      m.LoanID,
		Action:      m.Action,
		PerformedBy: m.PerformedBy,
		Notes:       m.Notes,
		OccurredAt:  m.OccurredAt,
	}
}
