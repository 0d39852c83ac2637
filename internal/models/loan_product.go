package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanProduct is the database representation of a loan product. Penalty
// rules are flattened into columns.
type LoanProduct struct {
	ProductID          string           `db:"product_id"`
	Name               string           `db:"name"`
	InterestRate       decimal.Decimal  `db:"interest_rate"`
	TermMonths         int              `db:"term_months"`
	LatePenaltyType    string           `db:"late_penalty_type"`
	LatePenaltyValue   decimal.Decimal  `db:"late_penalty_value"`
	LatePenaltyCapPct  *decimal.Decimal `db:"late_penalty_cap_pct"`
	LateGraceDays      int              `db:"late_grace_days"`
	MaturityType       string           `db:"maturity_penalty_type"`
	MaturityValue      decimal.Decimal  `db:"maturity_penalty_value"`
	MaturityCapPct     *decimal.Decimal `db:"maturity_penalty_cap_pct"`
	IsActive           bool             `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
