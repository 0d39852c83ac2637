package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the database representation of a repayment.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	LoanID         string          `db:"loan_id"`
	Amount         decimal.Decimal `db:"amount"`
	PenaltyPortion decimal.Decimal `db:"penalty_portion"`
	Method         string          `db:"method"`
	PaidAt         time.Time       `db:"paid_at"`
	IsReversed     bool            `db:"is_reversed"`
	ReversedBy     string          `db:"reversed_by"`
	ReversalNote   string          `db:"reversal_note"`
	AuditFields
}
