package plan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMrrValue(t *testing.T) {
	planM := New("plan_m", decimal.NewFromInt(49), decimal.NewFromInt(499))
	planL := New("plan_l", decimal.NewFromInt(99), decimal.NewFromInt(999))

	tests := []struct {
		name   string
		plan   Plan
		period BillingPeriod
		want   string
	}{
		{"plan_m monthly", planM, BillingPeriodMonthly, "49"},
		{"plan_m yearly", planM, BillingPeriodYearly, "41.583"},
		{"plan_l monthly", planL, BillingPeriodMonthly, "99"},
		{"plan_l yearly", planL, BillingPeriodYearly, "83.25"},
		{"plan_m none", planM, BillingPeriodNone, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.plan.MrrValue(tt.period)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIsFree(t *testing.T) {
	assert.True(t, Free("starter").IsFree())
	assert.False(t, New("plan_m", decimal.NewFromInt(49), decimal.NewFromInt(499)).IsFree())
}

func TestFreePlanYieldsNoRevenue(t *testing.T) {
	free := Free("starter")
	assert.True(t, free.MrrValue(BillingPeriodMonthly).IsZero())
	assert.True(t, free.MrrValue(BillingPeriodYearly).IsZero())
}

func TestParseBillingPeriod(t *testing.T) {
	period, err := ParseBillingPeriod(" monthly ")
	require.NoError(t, err)
	assert.Equal(t, BillingPeriodMonthly, period)

	_, err = ParseBillingPeriod("weekly")
	assert.ErrorIs(t, err, ErrInvalidBillingPeriod)
}
