// Package domain contains the persistence model and contracts for tracked
// accounts.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus represents lifecycle states for a tracked account.
type AccountStatus string

const (
	AccountStatusTrial    AccountStatus = "TRIAL"
	AccountStatusFree     AccountStatus = "FREE"
	AccountStatusPaid     AccountStatus = "PAID"
	AccountStatusRetired  AccountStatus = "RETIRED"
	AccountStatusCanceled AccountStatus = "CANCELED"
)

// CancelationReason records why an account canceled.
type CancelationReason string

const (
	ReasonUserCanceled  CancelationReason = "USER_CANCELED"
	ReasonPaymentFailed CancelationReason = "PAYMENT_FAILED"
	ReasonFraud         CancelationReason = "FRAUD"
	ReasonOther         CancelationReason = "OTHER"
)

// KnownCancelationReason reports whether reason belongs to the recognized set.
func KnownCancelationReason(reason CancelationReason) bool {
	switch reason {
	case ReasonUserCanceled, ReasonPaymentFailed, ReasonFraud, ReasonOther:
		return true
	default:
		return false
	}
}

// Account captures the current lifecycle state of one customer account.
// The ID is assigned by the caller, never generated here.
type Account struct {
	ID                int64             `gorm:"primaryKey;autoIncrement:false"`
	Status            AccountStatus     `gorm:"type:text;not null;index"`
	PlanRef           *string           `gorm:"type:text"`
	BillingPeriodRef  *string           `gorm:"type:text"`
	MrrValue          decimal.Decimal   `gorm:"type:decimal(12,3);not null"`
	CreatedAt         time.Time         `gorm:"not null"`
	ConvertedToPaidAt *time.Time        `gorm:""`
	ConvertedToFreeAt *time.Time        `gorm:""`
	CanceledAt        *time.Time        `gorm:""`
	CancelationReason CancelationReason `gorm:"type:text"`
	RetiredAt         *time.Time        `gorm:""`
	// The ledger stamps UpdatedAt with the operation timestamp itself.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }
