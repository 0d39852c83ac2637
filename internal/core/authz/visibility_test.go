package authz_test

import (
	"testing"

	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestActionVisibility(t *testing.T) {
	loan := func(w domain.WorkflowStatus, l domain.LoanStatus) *domain.Loan {
		return &domain.Loan{WorkflowStatus: w, LoanStatus: l}
	}

	tests := []struct {
		name         string
		loan         *domain.Loan
		wantApprove  bool
		wantReject   bool
		wantDisburse bool
		wantEdit     bool
		wantDelete   bool
	}{
		{
			name: "pending approval shows approve reject edit delete",
			loan: loan(domain.WorkflowPendingApproval, domain.LoanOpen),
			wantApprove: true, wantReject: true, wantDisburse: false, wantEdit: true, wantDelete: true,
		},
		{
			name: "approved shows only disburse",
			loan: loan(domain.WorkflowApproved, domain.LoanOpen),
			wantApprove: false, wantReject: false, wantDisburse: true, wantEdit: false, wantDelete: false,
		},
		{
			name: "rejected shows only delete",
			loan: loan(domain.WorkflowRejected, domain.LoanClosed),
			wantApprove: false, wantReject: false, wantDisburse: false, wantEdit: false, wantDelete: true,
		},
		{
			name: "disbursed open loan shows nothing",
			loan: loan(domain.WorkflowDisbursed, domain.LoanOpen),
			wantApprove: false, wantReject: false, wantDisburse: false, wantEdit: false, wantDelete: false,
		},
		{
			name: "nil loan shows nothing",
			loan: nil,
			wantApprove: false, wantReject: false, wantDisburse: false, wantEdit: false, wantDelete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantApprove, authz.ShouldShowApproveButton(tt.loan), "approve")
			assert.Equal(t, tt.wantReject, authz.ShouldShowRejectButton(tt.loan), "reject")
			assert.Equal(t, tt.wantDisburse, authz.ShouldShowDisburseButton(tt.loan), "disburse")
			assert.Equal(t, tt.wantEdit, authz.ShouldShowEditButton(tt.loan), "edit")
			assert.Equal(t, tt.wantDelete, authz.ShouldShowDeleteButton(tt.loan), "delete")
		})
	}
}
