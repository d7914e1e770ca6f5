// Package domain contains the daily conversion-rate rollups: per-day signup
// and conversion counts with a recomputed rate. Unlike the span series there
// are no interval invariants, only upsert-and-recompute.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Rollup accumulates one calendar day's signup/conversion tallies. Rate is
// recomputed on every write and kept at 4 decimal places.
type Rollup struct {
	Day         time.Time       `gorm:"primaryKey;type:date"`
	Signups     int64           `gorm:"not null"`
	Conversions int64           `gorm:"not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName sets the database table name.
func (Rollup) TableName() string { return "conversion_rollups" }

type Service interface {
	RecordSignup(ctx context.Context, day time.Time) (Rollup, error)
	RecordConversion(ctx context.Context, day time.Time) (Rollup, error)
	RateOn(ctx context.Context, day time.Time) (decimal.Decimal, error)
	// MonthlyRate aggregates a whole month's tallies into one rate.
	MonthlyRate(ctx context.Context, year int, month time.Month) (decimal.Decimal, error)
}

var ErrNoRollupData = errors.New("no_rollup_data")
