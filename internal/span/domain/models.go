// Package domain contains the temporal interval rows derived from account
// lifecycle transitions. Spans are written only as side effects of ledger
// mutations, never by callers directly.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
)

// StatusSpan is one contiguous period during which an account held a status.
// A nil EndedAt marks the currently open span; an account has at most one.
type StatusSpan struct {
	ID        snowflake.ID                `gorm:"primaryKey"`
	AccountID int64                       `gorm:"not null;index"`
	Status    accountdomain.AccountStatus `gorm:"type:text;not null"`
	StartedAt time.Time                   `gorm:"not null"`
	EndedAt   *time.Time                  `gorm:""`
}

// TableName sets the database table name.
func (StatusSpan) TableName() string { return "status_spans" }

// MrrSpan is one contiguous period during which an account generated a fixed
// monthly-equivalent revenue. Spans exist only while the account is paid.
// StartedOn/EndedOn are date-only projections used by day-level aggregates.
type MrrSpan struct {
	ID        snowflake.ID    `gorm:"primaryKey"`
	AccountID int64           `gorm:"not null;index"`
	MrrValue  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StartedAt time.Time       `gorm:"not null"`
	StartedOn time.Time       `gorm:"type:date;not null;index"`
	EndedAt   *time.Time      `gorm:""`
	EndedOn   *time.Time      `gorm:"type:date;index"`
}

// TableName sets the database table name.
func (MrrSpan) TableName() string { return "mrr_spans" }

// DayOf truncates t to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
