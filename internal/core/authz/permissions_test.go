package authz_test

import (
	"testing"

	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name   string
		role   domain.Role
		action authz.Action
		want   bool
	}{
		{name: "admin can delete loan products", role: domain.RoleAdmin, action: authz.ActionDeleteLoanProduct, want: true},
		{name: "admin can reverse payments", role: domain.RoleAdmin, action: authz.ActionReversePayment, want: true},
		{name: "manager can approve", role: domain.RoleManager, action: authz.ActionApprove, want: true},
		{name: "manager cannot edit", role: domain.RoleManager, action: authz.ActionEdit, want: false},
		{name: "manager cannot create loans", role: domain.RoleManager, action: authz.ActionCreateLoan, want: false},
		{name: "loan officer can create loans", role: domain.RoleLoanOfficer, action: authz.ActionCreateLoan, want: true},
		{name: "loan officer cannot approve", role: domain.RoleLoanOfficer, action: authz.ActionApprove, want: false},
		{name: "cashier can record payments", role: domain.RoleCashier, action: authz.ActionRecordPayment, want: true},
		{name: "cashier can disburse", role: domain.RoleCashier, action: authz.ActionDisburse, want: true},
		{name: "cashier cannot approve", role: domain.RoleCashier, action: authz.ActionApprove, want: false},
		{name: "viewer can view", role: domain.RoleViewer, action: authz.ActionView, want: true},
		{name: "viewer cannot record payments", role: domain.RoleViewer, action: authz.ActionRecordPayment, want: false},
		{name: "unknown role denied", role: domain.Role("AUDITOR"), action: authz.ActionView, want: false},
		{name: "role match is case sensitive", role: domain.Role("admin"), action: authz.ActionView, want: false},
		{name: "unknown action denied", role: domain.RoleAdmin, action: authz.Action("transmogrify"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.CanPerform(tt.role, tt.action))
		})
	}
}

func TestCompositeDecisions(t *testing.T) {
	assert.True(t, authz.CanModifyLoan(domain.WorkflowPendingApproval, domain.RoleAdmin))
	assert.True(t, authz.CanModifyLoan(domain.WorkflowPendingApproval, domain.RoleLoanOfficer))
	assert.False(t, authz.CanModifyLoan(domain.WorkflowPendingApproval, domain.RoleManager))
	assert.False(t, authz.CanModifyLoan(domain.WorkflowApproved, domain.RoleAdmin))

	assert.True(t, authz.CanApproveLoan(domain.WorkflowPendingApproval, domain.RoleManager))
	assert.False(t, authz.CanApproveLoan(domain.WorkflowApproved, domain.RoleManager))
	assert.False(t, authz.CanApproveLoan(domain.WorkflowPendingApproval, domain.RoleCashier))

	assert.True(t, authz.CanDisburseLoan(domain.WorkflowApproved, domain.RoleCashier))
	assert.False(t, authz.CanDisburseLoan(domain.WorkflowPendingApproval, domain.RoleCashier))
	assert.False(t, authz.CanDisburseLoan(domain.WorkflowApproved, domain.RoleViewer))
}

func TestGetAllowedActions(t *testing.T) {
	tests := []struct {
		name   string
		status domain.WorkflowStatus
		role   domain.Role
		want   []authz.Action
	}{
		{
			name:   "admin on pending loan",
			status: domain.WorkflowPendingApproval,
			role:   domain.RoleAdmin,
			want:   []authz.Action{authz.ActionView, authz.ActionEdit, authz.ActionDelete, authz.ActionApprove, authz.ActionReject},
		},
		{
			name:   "manager on pending loan",
			status: domain.WorkflowPendingApproval,
			role:   domain.RoleManager,
			want:   []authz.Action{authz.ActionView, authz.ActionApprove, authz.ActionReject},
		},
		{
			name:   "loan officer on pending loan",
			status: domain.WorkflowPendingApproval,
			role:   domain.RoleLoanOfficer,
			want:   []authz.Action{authz.ActionView, authz.ActionEdit, authz.ActionDelete},
		},
		{
			name:   "cashier on approved loan",
			status: domain.WorkflowApproved,
			role:   domain.RoleCashier,
			want:   []authz.Action{authz.ActionView, authz.ActionDisburse},
		},
		{
			name:   "admin on rejected loan",
			status: domain.WorkflowRejected,
			role:   domain.RoleAdmin,
			want:   []authz.Action{authz.ActionView, authz.ActionDelete},
		},
		{
			name:   "admin on disbursed loan is view only",
			status: domain.WorkflowDisbursed,
			role:   domain.RoleAdmin,
			want:   []authz.Action{authz.ActionView},
		},
		{
			name:   "unknown status is view only",
			status: domain.WorkflowStatus("LIMBO"),
			role:   domain.RoleAdmin,
			want:   []authz.Action{authz.ActionView},
		},
		{
			name:   "unknown role still gets view",
			status: domain.WorkflowPendingApproval,
			role:   domain.Role("AUDITOR"),
			want:   []authz.Action{authz.ActionView},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.GetAllowedActions(tt.status, tt.role))
		})
	}
}

func TestGetAllowedActions_ViewerAlwaysViewOnly(t *testing.T) {
	statuses := []domain.WorkflowStatus{
		domain.WorkflowPendingApproval,
		domain.WorkflowApproved,
		domain.WorkflowRejected,
		domain.WorkflowDisbursed,
		domain.WorkflowStatus("ANYTHING"),
	}
	for _, status := range statuses {
		got := authz.GetAllowedActions(status, domain.RoleViewer)
		assert.Equal(t, []authz.Action{authz.ActionView}, got, "status %s", status)
	}
}

func TestCanPerformAction(t *testing.T) {
	pending := &domain.Loan{WorkflowStatus: domain.WorkflowPendingApproval, LoanStatus: domain.LoanOpen}
	approved := &domain.Loan{WorkflowStatus: domain.WorkflowApproved, LoanStatus: domain.LoanOpen}
	disbursed := &domain.Loan{WorkflowStatus: domain.WorkflowDisbursed, LoanStatus: domain.LoanInProgress}

	tests := []struct {
		name   string
		loan   *domain.Loan
		action string
		want   bool
	}{
		{name: "approve pending", loan: pending, action: "APPROVE", want: true},
		{name: "approve is case insensitive", loan: pending, action: "approve", want: true},
		{name: "approve an approved loan", loan: approved, action: "APPROVE", want: false},
		{name: "reject pending", loan: pending, action: "REJECT", want: true},
		{name: "disburse approved", loan: approved, action: "DISBURSE", want: true},
		{name: "disburse pending", loan: pending, action: "DISBURSE", want: false},
		{name: "disburse already disbursed", loan: disbursed, action: "DISBURSE", want: false},
		{name: "edit pending", loan: pending, action: "EDIT", want: true},
		{name: "edit disbursed", loan: disbursed, action: "edit", want: false},
		{name: "unknown action", loan: pending, action: "EXPLODE", want: false},
		{name: "nil loan", loan: nil, action: "APPROVE", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.CanPerformAction(tt.loan, tt.action))
		})
	}
}
