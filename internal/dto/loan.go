package dto

import (
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data required to register a loan application.
type CreateLoanRequest struct {
	ClientID     string           `json:"clientID" binding:"required"`
	ProductID    string           `json:"productID" binding:"required"`
	Principal    decimal.Decimal  `json:"principal" binding:"dgt0"`
	InterestRate *decimal.Decimal `json:"interestRate"` // Defaults to the product rate
	TermMonths   *int             `json:"termMonths" binding:"omitempty,gt=0"`
}

// UpdateLoanRequest defines the terms editable while a loan is pending.
type UpdateLoanRequest struct {
	Principal    *decimal.Decimal `json:"principal"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	TermMonths   *int             `json:"termMonths" binding:"omitempty,gt=0"`
}

// DecisionRequest carries the optional note for an approve/reject decision.
type DecisionRequest struct {
	Note string `json:"note"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	WorkflowStatus string `form:"workflowStatus"`
	Limit          int    `form:"limit,default=20"`
	Offset         int    `form:"offset,default=0"`
}

// LoanResponse is the public view of a loan, including the badge
// classifications the dashboard renders.
type LoanResponse struct {
	LoanID              string             `json:"loanID"`
	ClientID            string             `json:"clientID"`
	ProductID           string             `json:"productID"`
	Principal           decimal.Decimal    `json:"principal"`
	InterestRate        decimal.Decimal    `json:"interestRate"`
	TermMonths          int                `json:"termMonths"`
	WorkflowStatus      string             `json:"workflowStatus"`
	LoanStatus          string             `json:"loanStatus"`
	WorkflowStatusBadge domain.StatusBadge `json:"workflowStatusBadge"`
	LoanStatusBadge     domain.StatusBadge `json:"loanStatusBadge"`
	Outstanding         decimal.Decimal    `json:"outstanding"`
	DisbursedAt         *time.Time         `json:"disbursedAt,omitempty"`
	NextDueDate         *time.Time         `json:"nextDueDate,omitempty"`
	MaturityDate        *time.Time         `json:"maturityDate,omitempty"`
	DecidedBy           string             `json:"decidedBy,omitempty"`
	DecisionNote        string             `json:"decisionNote,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
}

// ToLoanResponse converts a domain.Loan to its response DTO.
func ToLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:              loan.LoanID,
		ClientID:            loan.ClientID,
		ProductID:           loan.ProductID,
		Principal:           loan.Principal,
		InterestRate:        loan.InterestRate,
		TermMonths:          loan.TermMonths,
		WorkflowStatus:      string(loan.WorkflowStatus),
		LoanStatus:          string(loan.LoanStatus),
		WorkflowStatusBadge: domain.ClassifyWorkflowStatus(string(loan.WorkflowStatus)),
		LoanStatusBadge:     domain.ClassifyLoanStatus(string(loan.LoanStatus)),
		Outstanding:         loan.Outstanding,
		DisbursedAt:         loan.DisbursedAt,
		NextDueDate:         loan.NextDueDate,
		MaturityDate:        loan.MaturityDate,
		DecidedBy:           loan.DecidedBy,
		DecisionNote:        loan.DecisionNote,
		CreatedAt:           loan.CreatedAt,
	}
}

// ListLoansResponse wraps the list of loans.
type ListLoansResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// ToListLoansResponse converts loans to the list DTO.
func ToListLoansResponse(loans []domain.Loan) ListLoansResponse {
	responses := make([]LoanResponse, len(loans))
	for i := range loans {
		responses[i] = ToLoanResponse(&loans[i])
	}
	return ListLoansResponse{Loans: responses}
}

// AllowedActionsResponse lists the actions the caller may take on a loan,
// view first, in the gate's stable order.
type AllowedActionsResponse struct {
	LoanID  string   `json:"loanID"`
	Actions []string `json:"actions"`
}

// WorkflowEventResponse is one timeline entry of a loan's approval history.
type WorkflowEventResponse struct {
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ToWorkflowEventResponses converts events to their wire form, preserving
// the producer's chronological order.
func ToWorkflowEventResponses(events []domain.WorkflowEvent) []WorkflowEventResponse {
	responses := make([]WorkflowEventResponse, len(events))
	for i, e := range events {
		responses[i] = WorkflowEventResponse{
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Notes:       e.Notes,
			OccurredAt:  e.OccurredAt,
		}
	}
	return responses
}
