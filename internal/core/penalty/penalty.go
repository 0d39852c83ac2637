// Package penalty computes late-payment and post-maturity charges from
// configurable rules. All calculators are pure: they never mutate the rule
// and have no state between calls, so they are safe to use from both the
// request path and background jobs.
package penalty

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RuleType selects how a penalty accrues per chargeable day.
type RuleType string

const (
	// FixedPerDay charges Rule.Value currency units per chargeable day.
	FixedPerDay RuleType = "fixed_per_day"
	// PercentPerDay charges Rule.Value percent of the outstanding balance
	// per chargeable day.
	PercentPerDay RuleType = "percent_per_day"
)

// Rule is an immutable penalty configuration, typically sourced from a loan
// product. CapPercentOfOutstanding, when set, bounds a percent-per-day
// penalty to that fraction of the outstanding balance.
type Rule struct {
	Type                    RuleType         `json:"type"`
	Value                   decimal.Decimal  `json:"value"`
	CapPercentOfOutstanding *decimal.Decimal `json:"capPercentOfOutstanding,omitempty"`
}

// Result reports the true days late alongside the charge. DaysLate is
// reported even when the grace window absorbs the penalty entirely.
type Result struct {
	DaysLate int             `json:"daysLate"`
	Penalty  decimal.Decimal `json:"penalty"`
}

var oneHundred = decimal.NewFromInt(100)

// wholeDaysBetween counts full 24-hour periods from a to b, clamped at zero.
func wholeDaysBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

// validateRule rejects configurations the engine cannot price. Explicit
// rejection here replaces silently propagating garbage amounts downstream.
func validateRule(rule Rule) error {
	switch rule.Type {
	case FixedPerDay, PercentPerDay:
	default:
		return fmt.Errorf("unknown penalty rule type %q", rule.Type)
	}
	if rule.Value.IsNegative() {
		return fmt.Errorf("penalty rule value must not be negative, got %s", rule.Value)
	}
	if rule.CapPercentOfOutstanding != nil && rule.CapPercentOfOutstanding.IsNegative() {
		return fmt.Errorf("penalty cap must not be negative, got %s", rule.CapPercentOfOutstanding)
	}
	return nil
}

// accrue prices chargeableDays under the rule. Amounts round to 2 decimal
// places, half away from zero.
func accrue(outstanding decimal.Decimal, chargeableDays int, rule Rule) decimal.Decimal {
	days := decimal.NewFromInt(int64(chargeableDays))
	if rule.Type == FixedPerDay {
		return rule.Value.Mul(days).Round(2)
	}
	charge := outstanding.Mul(rule.Value.Div(oneHundred)).Mul(days)
	if rule.CapPercentOfOutstanding != nil {
		cap := outstanding.Mul(rule.CapPercentOfOutstanding.Div(oneHundred))
		if charge.GreaterThan(cap) {
			charge = cap
		}
	}
	return charge.Round(2)
}

// CalculateLate computes the late-payment penalty for an installment.
// paidAt defaults to the current time when zero. Lateness up to and
// including graceDays accrues nothing; beyond it, only the days past the
// grace window are chargeable.
func CalculateLate(dueDate, paidAt time.Time, outstanding decimal.Decimal, graceDays int, rule Rule) (Result, error) {
	if err := validateRule(rule); err != nil {
		return Result{Penalty: decimal.Zero}, err
	}
	if graceDays < 0 {
		graceDays = 0
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	daysLate := wholeDaysBetween(dueDate, paidAt)
	if daysLate <= graceDays {
		return Result{DaysLate: daysLate, Penalty: decimal.Zero}, nil
	}

	chargeableDays := daysLate - graceDays
	return Result{DaysLate: daysLate, Penalty: accrue(outstanding, chargeableDays, rule)}, nil
}

// CalculateAfterMaturity computes the penalty on a balance still outstanding
// past the loan's end date. Unlike the late-payment penalty there is no
// grace window: every day past maturity is chargeable. Any cap comes only
// from the supplied rule.
func CalculateAfterMaturity(endDate, paidAt time.Time, outstanding decimal.Decimal, rule Rule) (Result, error) {
	if err := validateRule(rule); err != nil {
		return Result{Penalty: decimal.Zero}, err
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	daysLate := wholeDaysBetween(endDate, paidAt)
	if daysLate == 0 {
		return Result{DaysLate: 0, Penalty: decimal.Zero}, nil
	}
	return Result{DaysLate: daysLate, Penalty: accrue(outstanding, daysLate, rule)}, nil
}
