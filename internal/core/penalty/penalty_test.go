package penalty_test

import (
	"testing"
	"time"

	"github.com/microcred/loan_management_app/internal/core/penalty"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestCalculateLate_PercentPerDayWithGrace(t *testing.T) {
	// 5 days late, 2 grace days -> 3 chargeable days.
	// 100000 * 0.2% * 3 = 600.00
	rule := penalty.Rule{
		Type:                    penalty.PercentPerDay,
		Value:                   decimal.NewFromFloat(0.2),
		CapPercentOfOutstanding: decimalPtr(decimal.NewFromInt(100)),
	}

	result, err := penalty.CalculateLate(date(2024, 1, 1), date(2024, 1, 6), decimal.NewFromInt(100000), 2, rule)
	require.NoError(t, err)
	assert.Equal(t, 5, result.DaysLate)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(600)), "got %s", result.Penalty)
}

func TestCalculateLate_GraceWindowAbsorbsPenalty(t *testing.T) {
	rule := penalty.Rule{Type: penalty.FixedPerDay, Value: decimal.NewFromInt(50)}

	tests := []struct {
		name         string
		paidAt       time.Time
		graceDays    int
		wantDaysLate int
	}{
		{name: "paid on due date", paidAt: date(2024, 1, 1), graceDays: 3, wantDaysLate: 0},
		{name: "paid before due date", paidAt: date(2023, 12, 28), graceDays: 0, wantDaysLate: 0},
		{name: "late but within grace", paidAt: date(2024, 1, 3), graceDays: 3, wantDaysLate: 2},
		{name: "late exactly at grace boundary", paidAt: date(2024, 1, 4), graceDays: 3, wantDaysLate: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := penalty.CalculateLate(date(2024, 1, 1), tt.paidAt, decimal.NewFromInt(5000), tt.graceDays, rule)
			require.NoError(t, err)
			// DaysLate still reports the true lateness even when no charge accrues.
			assert.Equal(t, tt.wantDaysLate, result.DaysLate)
			assert.True(t, result.Penalty.IsZero(), "got %s", result.Penalty)
		})
	}
}

func TestCalculateLate_FixedPerDay(t *testing.T) {
	rule := penalty.Rule{Type: penalty.FixedPerDay, Value: decimal.NewFromFloat(25.5)}

	// 10 days late, 2 grace -> 8 chargeable days * 25.50 = 204.00
	result, err := penalty.CalculateLate(date(2024, 3, 1), date(2024, 3, 11), decimal.NewFromInt(1000), 2, rule)
	require.NoError(t, err)
	assert.Equal(t, 10, result.DaysLate)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(204)), "got %s", result.Penalty)
}

func TestCalculateLate_CapClampsPercentPenalty(t *testing.T) {
	outstanding := decimal.NewFromInt(10000)
	rule := penalty.Rule{
		Type:                    penalty.PercentPerDay,
		Value:                   decimal.NewFromInt(1), // 1% per day
		CapPercentOfOutstanding: decimalPtr(decimal.NewFromInt(10)),
	}
	cap := decimal.NewFromInt(1000) // 10% of 10000

	// Well past the cap: 365 chargeable days at 1%/day would be 36500.
	result, err := penalty.CalculateLate(date(2023, 1, 1), date(2024, 1, 1), outstanding, 0, rule)
	require.NoError(t, err)
	assert.True(t, result.Penalty.Equal(cap), "got %s", result.Penalty)

	// Under the cap the raw accrual stands: 5 days -> 500.
	result, err = penalty.CalculateLate(date(2024, 1, 1), date(2024, 1, 6), outstanding, 0, rule)
	require.NoError(t, err)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(500)), "got %s", result.Penalty)
}

func TestCalculateLate_MonotonicInChargeableDays(t *testing.T) {
	rule := penalty.Rule{Type: penalty.PercentPerDay, Value: decimal.NewFromFloat(0.5)}
	outstanding := decimal.NewFromInt(20000)
	due := date(2024, 1, 1)

	prev := decimal.Zero
	for days := 0; days <= 30; days++ {
		result, err := penalty.CalculateLate(due, due.AddDate(0, 0, days), outstanding, 2, rule)
		require.NoError(t, err)
		assert.True(t, result.Penalty.GreaterThanOrEqual(prev),
			"penalty decreased at day %d: %s < %s", days, result.Penalty, prev)
		prev = result.Penalty
	}
}

func TestCalculateLate_ZeroPaidAtDefaultsToNow(t *testing.T) {
	rule := penalty.Rule{Type: penalty.FixedPerDay, Value: decimal.NewFromInt(10)}

	// Due 10 days ago, no grace: exactly 10 chargeable days as of now.
	due := time.Now().AddDate(0, 0, -10).Add(-time.Hour)
	result, err := penalty.CalculateLate(due, time.Time{}, decimal.NewFromInt(1000), 0, rule)
	require.NoError(t, err)
	assert.Equal(t, 10, result.DaysLate)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(100)), "got %s", result.Penalty)
}

func TestCalculateLate_RejectsInvalidRules(t *testing.T) {
	outstanding := decimal.NewFromInt(1000)

	_, err := penalty.CalculateLate(date(2024, 1, 1), date(2024, 1, 10), outstanding, 0,
		penalty.Rule{Type: penalty.RuleType("compounding"), Value: decimal.NewFromInt(1)})
	assert.Error(t, err)

	_, err = penalty.CalculateLate(date(2024, 1, 1), date(2024, 1, 10), outstanding, 0,
		penalty.Rule{Type: penalty.FixedPerDay, Value: decimal.NewFromInt(-5)})
	assert.Error(t, err)

	_, err = penalty.CalculateLate(date(2024, 1, 1), date(2024, 1, 10), outstanding, 0,
		penalty.Rule{Type: penalty.PercentPerDay, Value: decimal.NewFromInt(1), CapPercentOfOutstanding: decimalPtr(decimal.NewFromInt(-10))})
	assert.Error(t, err)
}

func TestCalculateAfterMaturity_NoLateness(t *testing.T) {
	rule := penalty.Rule{Type: penalty.PercentPerDay, Value: decimal.NewFromFloat(0.1)}

	result, err := penalty.CalculateAfterMaturity(date(2024, 1, 1), date(2024, 1, 1), decimal.NewFromInt(50000), rule)
	require.NoError(t, err)
	assert.Equal(t, 0, result.DaysLate)
	assert.True(t, result.Penalty.IsZero())
}

func TestCalculateAfterMaturity_NoGracePeriod(t *testing.T) {
	// Unlike the late penalty, a single day past maturity is chargeable.
	rule := penalty.Rule{Type: penalty.PercentPerDay, Value: decimal.NewFromFloat(0.1)}

	result, err := penalty.CalculateAfterMaturity(date(2024, 1, 1), date(2024, 1, 2), decimal.NewFromInt(50000), rule)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DaysLate)
	// 50000 * 0.1% * 1 = 50.00
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(50)), "got %s", result.Penalty)
}

func TestCalculateAfterMaturity_FixedPerDay(t *testing.T) {
	rule := penalty.Rule{Type: penalty.FixedPerDay, Value: decimal.NewFromFloat(12.25)}

	result, err := penalty.CalculateAfterMaturity(date(2024, 1, 1), date(2024, 1, 9), decimal.NewFromInt(1000), rule)
	require.NoError(t, err)
	assert.Equal(t, 8, result.DaysLate)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(98)), "got %s", result.Penalty)
}

func TestCalculateAfterMaturity_CapOnlyWhenRuleCarriesOne(t *testing.T) {
	outstanding := decimal.NewFromInt(10000)
	uncapped := penalty.Rule{Type: penalty.PercentPerDay, Value: decimal.NewFromInt(1)}
	capped := penalty.Rule{
		Type:                    penalty.PercentPerDay,
		Value:                   decimal.NewFromInt(1),
		CapPercentOfOutstanding: decimalPtr(decimal.NewFromInt(20)),
	}

	end := date(2023, 1, 1)
	paid := date(2024, 1, 1) // 365 days

	result, err := penalty.CalculateAfterMaturity(end, paid, outstanding, uncapped)
	require.NoError(t, err)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(36500)), "got %s", result.Penalty)

	result, err = penalty.CalculateAfterMaturity(end, paid, outstanding, capped)
	require.NoError(t, err)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(2000)), "got %s", result.Penalty)
}

func TestRounding_HalfAwayFromZero(t *testing.T) {
	// 3 chargeable days at 0.715 per day = 2.145, which rounds to 2.15
	// rather than truncating to 2.14.
	rule := penalty.Rule{Type: penalty.FixedPerDay, Value: decimal.NewFromFloat(0.715)}

	result, err := penalty.CalculateLate(date(2024, 1, 1), date(2024, 1, 4), decimal.NewFromInt(100), 0, rule)
	require.NoError(t, err)
	assert.Equal(t, "2.15", result.Penalty.StringFixed(2))
}
