package domain

import (
	"errors"
	"fmt"
	"strings"
)

// WorkflowStatus is the administrative approval-pipeline state of a loan.
// It is set by the approval workflow and advances monotonically; REJECTED is
// terminal.
type WorkflowStatus string

const (
	WorkflowPendingApproval WorkflowStatus = "PENDING_APPROVAL"
	WorkflowApproved        WorkflowStatus = "APPROVED"
	WorkflowRejected        WorkflowStatus = "REJECTED"
	WorkflowDisbursed       WorkflowStatus = "DISBURSED"
)

// LoanStatus is the operational repayment state of a loan. It only moves
// after disbursement, driven by payment events.
type LoanStatus string

const (
	LoanOpen       LoanStatus = "OPEN"
	LoanInProgress LoanStatus = "IN_PROGRESS"
	LoanOverdue    LoanStatus = "OVERDUE"
	LoanDefaulted  LoanStatus = "DEFAULTED"
	LoanClosed     LoanStatus = "CLOSED"
)

// StatusBadge is the presentation classification for a status token: a
// display label and a CSS-style class tag consumed by the dashboard.
type StatusBadge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// defaultBadgeClass is returned for any token outside the closed tables.
const defaultBadgeClass = "status-default"

var loanStatusBadges = map[LoanStatus]StatusBadge{
	LoanOpen:       {Label: "Open", Class: "status-open"},
	LoanInProgress: {Label: "In Progress", Class: "status-in-progress"},
	LoanClosed:     {Label: "Closed", Class: "status-closed"},
	LoanOverdue:    {Label: "Overdue", Class: "status-overdue"},
	LoanDefaulted:  {Label: "Defaulted", Class: "status-defaulted"},
}

var workflowStatusBadges = map[WorkflowStatus]StatusBadge{
	WorkflowPendingApproval: {Label: "Pending Approval", Class: "status-pending"},
	WorkflowApproved:        {Label: "Approved", Class: "status-approved"},
	WorkflowRejected:        {Label: "Rejected", Class: "status-rejected"},
	WorkflowDisbursed:       {Label: "Disbursed", Class: "status-disbursed"},
}

// normalizeStatusToken trims surrounding whitespace and upper-cases the token
// so lookups are case-insensitive.
func normalizeStatusToken(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// titleCaseToken renders an unrecognized token for display, e.g.
// "CUSTOM_STATUS" -> "Custom Status".
func titleCaseToken(token string) string {
	words := strings.FieldsFunc(strings.ToLower(token), func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ClassifyLoanStatus maps an operational status token to its badge. Unknown
// but non-empty tokens get a title-cased label with the default class; empty
// input gets the "Unknown" label.
func ClassifyLoanStatus(raw string) StatusBadge {
	token := normalizeStatusToken(raw)
	if token == "" {
		return StatusBadge{Label: "Unknown", Class: defaultBadgeClass}
	}
	if badge, ok := loanStatusBadges[LoanStatus(token)]; ok {
		return badge
	}
	return StatusBadge{Label: titleCaseToken(token), Class: defaultBadgeClass}
}

// ClassifyWorkflowStatus maps an administrative status token to its badge,
// with the same fallback behaviour as ClassifyLoanStatus.
func ClassifyWorkflowStatus(raw string) StatusBadge {
	token := normalizeStatusToken(raw)
	if token == "" {
		return StatusBadge{Label: "Unknown", Class: defaultBadgeClass}
	}
	if badge, ok := workflowStatusBadges[WorkflowStatus(token)]; ok {
		return badge
	}
	return StatusBadge{Label: titleCaseToken(token), Class: defaultBadgeClass}
}

// IsValid reports whether the workflow status is one of the closed set.
func (s WorkflowStatus) IsValid() bool {
	_, ok := workflowStatusBadges[s]
	return ok
}

// IsValid reports whether the loan status is one of the closed set.
func (s LoanStatus) IsValid() bool {
	_, ok := loanStatusBadges[s]
	return ok
}

// ErrInvalidStatusPairing indicates a workflow/operational status combination
// that the lifecycle never produces.
var ErrInvalidStatusPairing = errors.New("invalid status pairing")

// ValidateStatusPairing enforces the cross-axis invariant:
// PENDING_APPROVAL and APPROVED loans are operationally OPEN, REJECTED loans
// are CLOSED, and only DISBURSED loans may hold any operational status.
// Persistence must call this before committing a status transition.
func ValidateStatusPairing(workflow WorkflowStatus, loan LoanStatus) error {
	if !workflow.IsValid() {
		return fmt.Errorf("%w: unknown workflow status %q", ErrInvalidStatusPairing, workflow)
	}
	if !loan.IsValid() {
		return fmt.Errorf("%w: unknown loan status %q", ErrInvalidStatusPairing, loan)
	}
	switch workflow {
	case WorkflowPendingApproval, WorkflowApproved:
		if loan != LoanOpen {
			return fmt.Errorf("%w: %s loans must be OPEN, got %s", ErrInvalidStatusPairing, workflow, loan)
		}
	case WorkflowRejected:
		if loan != LoanClosed {
			return fmt.Errorf("%w: REJECTED loans must be CLOSED, got %s", ErrInvalidStatusPairing, loan)
		}
	case WorkflowDisbursed:
		// Any operational status is reachable after disbursement.
	}
	return nil
}
