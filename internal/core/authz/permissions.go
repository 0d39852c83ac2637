// Package authz decides which loan workflow actions a user may invoke. It
// separates two questions: whether an action is applicable to a loan's
// current state at all (visibility.go), and whether a role is capable of the
// action (the table here). Callers compose both for a final decision.
package authz

import (
	"strings"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// Action is one of the closed set of operations the dashboard can request.
// Unknown actions always evaluate to denied.
type Action string

const (
	ActionView              Action = "view"
	ActionEdit              Action = "edit"
	ActionDelete            Action = "delete"
	ActionApprove           Action = "approve"
	ActionReject            Action = "reject"
	ActionDisburse          Action = "disburse"
	ActionRecordPayment     Action = "recordPayment"
	ActionReversePayment    Action = "reversePayment"
	ActionCreateLoan        Action = "createLoan"
	ActionEditLoanProduct   Action = "editLoanProduct"
	ActionDeleteLoanProduct Action = "deleteLoanProduct"
)

// roleCapabilities is the fixed role -> allowed actions table. It is built
// once at load time and never mutated.
var roleCapabilities = map[domain.Role]map[Action]bool{
	domain.RoleAdmin: actionSet(
		ActionView, ActionEdit, ActionDelete, ActionApprove, ActionReject,
		ActionDisburse, ActionRecordPayment, ActionReversePayment,
		ActionCreateLoan, ActionEditLoanProduct, ActionDeleteLoanProduct,
	),
	domain.RoleManager: actionSet(
		ActionView, ActionApprove, ActionReject, ActionDisburse, ActionRecordPayment,
	),
	domain.RoleLoanOfficer: actionSet(
		ActionView, ActionEdit, ActionDelete, ActionCreateLoan,
	),
	domain.RoleCashier: actionSet(
		ActionView, ActionRecordPayment, ActionDisburse,
	),
	domain.RoleViewer: actionSet(ActionView),
}

func actionSet(actions ...Action) map[Action]bool {
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}

// CanPerform reports whether the role is capable of the action, ignoring
// loan state. Unknown roles and unknown actions are denied.
func CanPerform(role domain.Role, action Action) bool {
	return roleCapabilities[role][action]
}

// CanModifyLoan combines the edit visibility rule with the role table: only
// loans still pending approval may be edited, and only by roles with the
// edit capability.
func CanModifyLoan(status domain.WorkflowStatus, role domain.Role) bool {
	return status == domain.WorkflowPendingApproval && CanPerform(role, ActionEdit)
}

// CanApproveLoan reports whether the role may approve a loan in the given
// workflow status.
func CanApproveLoan(status domain.WorkflowStatus, role domain.Role) bool {
	return status == domain.WorkflowPendingApproval && CanPerform(role, ActionApprove)
}

// CanDisburseLoan reports whether the role may disburse a loan in the given
// workflow status.
func CanDisburseLoan(status domain.WorkflowStatus, role domain.Role) bool {
	return status == domain.WorkflowApproved && CanPerform(role, ActionDisburse)
}

// GetAllowedActions returns the ordered set of actions the role may take on
// a loan in the given workflow status. The result always starts with view
// and the remaining order is fixed, so the dashboard can snapshot it.
func GetAllowedActions(status domain.WorkflowStatus, role domain.Role) []Action {
	allowed := []Action{ActionView}

	appendIf := func(action Action) {
		if CanPerform(role, action) {
			allowed = append(allowed, action)
		}
	}

	switch status {
	case domain.WorkflowPendingApproval:
		appendIf(ActionEdit)
		appendIf(ActionDelete)
		appendIf(ActionApprove)
		appendIf(ActionReject)
	case domain.WorkflowApproved:
		appendIf(ActionDisburse)
	case domain.WorkflowRejected:
		appendIf(ActionDelete)
	}
	// DISBURSED and anything unrecognized stay view-only.
	return allowed
}

// CanPerformAction is the role-free entry point for the four status-gated
// workflow actions. The action name is matched case-insensitively against
// APPROVE, REJECT, DISBURSE and EDIT; anything else, or a nil loan, is
// denied. Role-aware callers combine this with CanPerform.
func CanPerformAction(loan *domain.Loan, action string) bool {
	if loan == nil {
		return false
	}
	switch strings.ToUpper(action) {
	case "APPROVE":
		return ShouldShowApproveButton(loan)
	case "REJECT":
		return ShouldShowRejectButton(loan)
	case "DISBURSE":
		return ShouldShowDisburseButton(loan)
	case "EDIT":
		return ShouldShowEditButton(loan)
	default:
		return false
	}
}
