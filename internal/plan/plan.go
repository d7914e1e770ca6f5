// Package plan defines the pricing value objects consumed by the account
// ledger. A Plan never touches storage; accounts keep only its name as an
// opaque reference.
package plan

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// BillingPeriod describes invoice cadence.
type BillingPeriod string

const (
	BillingPeriodNone    BillingPeriod = "NONE"
	BillingPeriodMonthly BillingPeriod = "MONTHLY"
	BillingPeriodYearly  BillingPeriod = "YEARLY"
)

var ErrInvalidBillingPeriod = errors.New("invalid_billing_period")

// ParseBillingPeriod normalizes a raw cadence string.
func ParseBillingPeriod(raw string) (BillingPeriod, error) {
	switch BillingPeriod(strings.ToUpper(strings.TrimSpace(raw))) {
	case BillingPeriodNone:
		return BillingPeriodNone, nil
	case BillingPeriodMonthly:
		return BillingPeriodMonthly, nil
	case BillingPeriodYearly:
		return BillingPeriodYearly, nil
	default:
		return "", ErrInvalidBillingPeriod
	}
}

var twelve = decimal.NewFromInt(12)

// Plan carries a monthly and a yearly price. Revenue figures are normalized
// to monthly equivalents with 3 decimal places of precision.
type Plan struct {
	name    string
	monthly decimal.Decimal
	yearly  decimal.Decimal
}

func New(name string, monthly, yearly decimal.Decimal) Plan {
	return Plan{name: name, monthly: monthly, yearly: yearly}
}

// Free returns a plan that generates no revenue.
func Free(name string) Plan {
	return Plan{name: name}
}

func (p Plan) Name() string {
	return p.name
}

// IsFree reports whether the plan generates no revenue on any cadence.
func (p Plan) IsFree() bool {
	return p.monthly.IsZero() && p.yearly.IsZero()
}

// MrrValue returns the monthly-equivalent revenue for the given cadence.
// Yearly prices are divided by 12 and rounded to 3 decimal places, so a
// yearly price of 999 yields 83.25 and 499 yields 41.583.
func (p Plan) MrrValue(period BillingPeriod) decimal.Decimal {
	switch period {
	case BillingPeriodMonthly:
		return p.monthly.Round(3)
	case BillingPeriodYearly:
		return p.yearly.DivRound(twelve, 3)
	default:
		return decimal.Zero
	}
}
