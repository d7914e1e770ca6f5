package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	"gorm.io/gorm"
)

// Repository maintains the status and MRR span series. Track* calls are
// idempotent: tracking the value already held by the open span is a no-op.
type Repository interface {
	TrackStatus(ctx context.Context, db *gorm.DB, accountID int64, status accountdomain.AccountStatus, at time.Time) error
	TrackMrr(ctx context.Context, db *gorm.DB, accountID int64, value decimal.Decimal, at time.Time) error
	CloseMrr(ctx context.Context, db *gorm.DB, accountID int64, at time.Time) error

	ListStatusByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]StatusSpan, error)
	ListMrrByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]MrrSpan, error)
	ListMrrCovering(ctx context.Context, db *gorm.DB, day time.Time) ([]MrrSpan, error)
	CountOpenMrrOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error)
}
