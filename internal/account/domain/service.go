package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/insight/internal/plan"
)

// AddTrialRequest registers a new trialing account. At defaults to the
// current clock instant when zero.
type AddTrialRequest struct {
	AccountID int64
	At        time.Time
}

type AddFreeRequest struct {
	AccountID int64
	At        time.Time
}

type AddPaidRequest struct {
	AccountID     int64
	Plan          plan.Plan
	BillingPeriod plan.BillingPeriod
	At            time.Time
}

type ChangePlanRequest struct {
	AccountID     int64
	Plan          plan.Plan
	BillingPeriod plan.BillingPeriod
	At            time.Time
}

// CancelRequest terminates an account. Reason defaults to USER_CANCELED.
type CancelRequest struct {
	AccountID int64
	Reason    CancelationReason
	At        time.Time
}

type RetireRequest struct {
	AccountID int64
	At        time.Time
}

type Service interface {
	AddTrial(ctx context.Context, req AddTrialRequest) (Account, error)
	AddFree(ctx context.Context, req AddFreeRequest) (Account, error)
	AddPaid(ctx context.Context, req AddPaidRequest) (Account, error)
	ChangePlan(ctx context.Context, req ChangePlanRequest) (Account, error)
	Cancel(ctx context.Context, req CancelRequest) (Account, error)
	Retire(ctx context.Context, req RetireRequest) (Account, error)

	Exists(ctx context.Context, accountID int64) (bool, error)
	IsCanceled(ctx context.Context, accountID int64) (bool, error)
	IsRetired(ctx context.Context, accountID int64) (bool, error)
	CountActive(ctx context.Context, at time.Time) (int64, error)
	CountPaid(ctx context.Context, at time.Time) (int64, error)
}

var (
	ErrAccountNotFound          = errors.New("account_not_found")
	ErrDuplicateAccount         = errors.New("duplicate_account")
	ErrAlreadyCanceled          = errors.New("account_already_canceled")
	ErrAlreadyRetired           = errors.New("account_already_retired")
	ErrAccountCanceled          = errors.New("account_canceled")
	ErrInvalidPlan              = errors.New("invalid_plan")
	ErrNoOpChange               = errors.New("change_to_current_plan")
	ErrInvalidTimestamp         = errors.New("timestamp_before_account_creation")
	ErrInvalidCancelationReason = errors.New("invalid_cancelation_reason")
)
