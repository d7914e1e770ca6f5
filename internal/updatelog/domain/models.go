// Package domain contains the append-only audit trail of committed account
// transitions. Entries are never mutated after insertion.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	"gorm.io/gorm"
)

// AccountUpdate records one committed lifecycle transition. Creation of an
// account writes no entry; only changes to status, plan, billing period or
// MRR value do.
type AccountUpdate struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	AccountID int64        `gorm:"not null;index"`
	CreatedAt time.Time    `gorm:"not null"`

	OldStatus accountdomain.AccountStatus `gorm:"type:text;not null"`
	NewStatus accountdomain.AccountStatus `gorm:"type:text;not null"`

	OldPlanRef          *string `gorm:"type:text"`
	NewPlanRef          *string `gorm:"type:text"`
	OldBillingPeriodRef *string `gorm:"type:text"`
	NewBillingPeriodRef *string `gorm:"type:text"`

	OldMrrValue decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	NewMrrValue decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}

// TableName sets the database table name.
func (AccountUpdate) TableName() string { return "account_updates" }

type Repository interface {
	Append(ctx context.Context, db *gorm.DB, update *AccountUpdate) error
	ListByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]AccountUpdate, error)
	CountByAccount(ctx context.Context, db *gorm.DB, accountID int64) (int64, error)
}
