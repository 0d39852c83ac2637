package authz

import "github.com/microcred/loan_management_app/internal/core/domain"

// Status-only applicability gates for the workflow action buttons. They say
// nothing about authorization; roles are checked separately via CanPerform.
// All predicates are false for a nil loan.

// ShouldShowApproveButton reports whether approval is applicable: only loans
// still pending approval can be approved.
func ShouldShowApproveButton(loan *domain.Loan) bool {
	return loan != nil && loan.WorkflowStatus == domain.WorkflowPendingApproval
}

// ShouldShowRejectButton reports whether rejection is applicable.
func ShouldShowRejectButton(loan *domain.Loan) bool {
	return loan != nil && loan.WorkflowStatus == domain.WorkflowPendingApproval
}

// ShouldShowDisburseButton reports whether disbursement is applicable: only
// approved, not-yet-disbursed loans qualify.
func ShouldShowDisburseButton(loan *domain.Loan) bool {
	return loan != nil && loan.WorkflowStatus == domain.WorkflowApproved
}

// ShouldShowEditButton reports whether editing is applicable. Once a loan
// leaves PENDING_APPROVAL its terms are frozen.
func ShouldShowEditButton(loan *domain.Loan) bool {
	return loan != nil && loan.WorkflowStatus == domain.WorkflowPendingApproval
}

// ShouldShowDeleteButton reports whether deletion is applicable: pending or
// rejected loans only.
func ShouldShowDeleteButton(loan *domain.Loan) bool {
	if loan == nil {
		return false
	}
	return loan.WorkflowStatus == domain.WorkflowPendingApproval ||
		loan.WorkflowStatus == domain.WorkflowRejected
}
