package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	"github.com/smallbiznis/insight/internal/clock"
	"github.com/smallbiznis/insight/internal/metrics"
	"github.com/smallbiznis/insight/internal/plan"
	spandomain "github.com/smallbiznis/insight/internal/span/domain"
	updatelogdomain "github.com/smallbiznis/insight/internal/updatelog/domain"
	"github.com/smallbiznis/insight/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	clock   clock.Clock
	repo    accountdomain.Repository
	spans   spandomain.Repository
	updates updatelogdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Repo    accountdomain.Repository
	Spans   spandomain.Repository
	Updates updatelogdomain.Repository
}

func NewService(p ServiceParam) accountdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("account.service"),

		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		spans:   p.Spans,
		updates: p.Updates,
	}
}

// resolveAt substitutes the clock's current instant for a zero timestamp so
// every write within one operation shares a single time value.
func (s *Service) resolveAt(at time.Time) time.Time {
	if at.IsZero() {
		return s.clock.Now()
	}
	return at.UTC()
}

func (s *Service) AddTrial(ctx context.Context, req accountdomain.AddTrialRequest) (accountdomain.Account, error) {
	return s.create(ctx, "add_trial", req.AccountID, accountdomain.AccountStatusTrial, req.At)
}

func (s *Service) AddFree(ctx context.Context, req accountdomain.AddFreeRequest) (accountdomain.Account, error) {
	return s.create(ctx, "add_free", req.AccountID, accountdomain.AccountStatusFree, req.At)
}

func (s *Service) create(ctx context.Context, op string, accountID int64, status accountdomain.AccountStatus, at time.Time) (accountdomain.Account, error) {
	at = s.resolveAt(at)

	account := accountdomain.Account{
		ID:        accountID,
		Status:    status,
		MrrValue:  decimal.Zero,
		CreatedAt: at,
		UpdatedAt: at,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &account); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return accountdomain.ErrDuplicateAccount
			}
			return err
		}
		return s.spans.TrackStatus(ctx, tx, accountID, status, at)
	})
	if err != nil {
		metrics.RecordLifecycleError(op)
		return accountdomain.Account{}, err
	}

	metrics.RecordLifecycleOp(op)
	return account, nil
}

func (s *Service) AddPaid(ctx context.Context, req accountdomain.AddPaidRequest) (accountdomain.Account, error) {
	at := s.resolveAt(req.At)

	mrr := req.Plan.MrrValue(req.BillingPeriod)
	if mrr.Sign() <= 0 {
		metrics.RecordLifecycleError("add_paid")
		return accountdomain.Account{}, accountdomain.ErrInvalidPlan
	}

	planRef := req.Plan.Name()
	periodRef := string(req.BillingPeriod)
	account := accountdomain.Account{
		ID:               req.AccountID,
		Status:           accountdomain.AccountStatusPaid,
		PlanRef:          &planRef,
		BillingPeriodRef: &periodRef,
		MrrValue:         mrr,
		CreatedAt:        at,
		UpdatedAt:        at,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &account); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return accountdomain.ErrDuplicateAccount
			}
			return err
		}
		if err := s.spans.TrackStatus(ctx, tx, req.AccountID, accountdomain.AccountStatusPaid, at); err != nil {
			return err
		}
		return s.spans.TrackMrr(ctx, tx, req.AccountID, mrr, at)
	})
	if err != nil {
		metrics.RecordLifecycleError("add_paid")
		return accountdomain.Account{}, err
	}

	metrics.RecordLifecycleOp("add_paid")
	return account, nil
}

func (s *Service) ChangePlan(ctx context.Context, req accountdomain.ChangePlanRequest) (accountdomain.Account, error) {
	at := s.resolveAt(req.At)

	mrr := req.Plan.MrrValue(req.BillingPeriod)
	newStatus := accountdomain.AccountStatusPaid
	if req.Plan.IsFree() && req.BillingPeriod == plan.BillingPeriodNone {
		newStatus = accountdomain.AccountStatusFree
	} else if mrr.Sign() <= 0 {
		metrics.RecordLifecycleError("change_plan")
		return accountdomain.Account{}, accountdomain.ErrInvalidPlan
	}

	planRef := req.Plan.Name()
	periodRef := string(req.BillingPeriod)

	var updated accountdomain.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.repo.FindByIDForUpdate(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return accountdomain.ErrAccountNotFound
		}
		if account.Status == accountdomain.AccountStatusCanceled {
			return accountdomain.ErrAccountCanceled
		}
		if at.Before(account.CreatedAt) {
			return accountdomain.ErrInvalidTimestamp
		}
		// Re-selecting the current plan is a no-op only while the status
		// stays put; a retired account resuming on its old plan is a real
		// change.
		if account.Status == newStatus &&
			account.PlanRef != nil && *account.PlanRef == planRef &&
			account.BillingPeriodRef != nil && *account.BillingPeriodRef == periodRef {
			return accountdomain.ErrNoOpChange
		}

		old := *account
		wasPaid := account.Status == accountdomain.AccountStatusPaid

		if err := s.spans.TrackStatus(ctx, tx, req.AccountID, newStatus, at); err != nil {
			return err
		}
		if newStatus == accountdomain.AccountStatusPaid {
			if err := s.spans.TrackMrr(ctx, tx, req.AccountID, mrr, at); err != nil {
				return err
			}
		} else if wasPaid {
			if err := s.spans.CloseMrr(ctx, tx, req.AccountID, at); err != nil {
				return err
			}
		}

		account.Status = newStatus
		account.PlanRef = &planRef
		account.BillingPeriodRef = &periodRef
		if newStatus == accountdomain.AccountStatusPaid {
			account.MrrValue = mrr
			if account.ConvertedToPaidAt == nil {
				account.ConvertedToPaidAt = &at
			}
		} else {
			account.MrrValue = decimal.Zero
			if account.ConvertedToFreeAt == nil {
				account.ConvertedToFreeAt = &at
			}
		}
		account.UpdatedAt = at

		if err := s.repo.Update(ctx, tx, account); err != nil {
			return err
		}
		if err := s.appendUpdate(ctx, tx, &old, account, at); err != nil {
			return err
		}

		updated = *account
		return nil
	})
	if err != nil {
		metrics.RecordLifecycleError("change_plan")
		return accountdomain.Account{}, err
	}

	metrics.RecordLifecycleOp("change_plan")
	return updated, nil
}

func (s *Service) Cancel(ctx context.Context, req accountdomain.CancelRequest) (accountdomain.Account, error) {
	at := s.resolveAt(req.At)

	reason := req.Reason
	if reason == "" {
		reason = accountdomain.ReasonUserCanceled
	}
	if !accountdomain.KnownCancelationReason(reason) {
		metrics.RecordLifecycleError("cancel")
		return accountdomain.Account{}, accountdomain.ErrInvalidCancelationReason
	}

	var updated accountdomain.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.repo.FindByIDForUpdate(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return accountdomain.ErrAccountNotFound
		}
		if account.Status == accountdomain.AccountStatusCanceled {
			return accountdomain.ErrAlreadyCanceled
		}
		if at.Before(account.CreatedAt) {
			return accountdomain.ErrInvalidTimestamp
		}

		old := *account

		if err := s.spans.TrackStatus(ctx, tx, req.AccountID, accountdomain.AccountStatusCanceled, at); err != nil {
			return err
		}
		if err := s.spans.CloseMrr(ctx, tx, req.AccountID, at); err != nil {
			return err
		}

		account.Status = accountdomain.AccountStatusCanceled
		account.MrrValue = decimal.Zero
		account.CanceledAt = &at
		account.CancelationReason = reason
		account.UpdatedAt = at

		if err := s.repo.Update(ctx, tx, account); err != nil {
			return err
		}
		if err := s.appendUpdate(ctx, tx, &old, account, at); err != nil {
			return err
		}

		updated = *account
		return nil
	})
	if err != nil {
		metrics.RecordLifecycleError("cancel")
		return accountdomain.Account{}, err
	}

	s.log.Info("account canceled",
		zap.Int64("account_id", req.AccountID),
		zap.String("reason", string(reason)),
	)
	metrics.RecordLifecycleOp("cancel")
	return updated, nil
}

func (s *Service) Retire(ctx context.Context, req accountdomain.RetireRequest) (accountdomain.Account, error) {
	at := s.resolveAt(req.At)

	var updated accountdomain.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.repo.FindByIDForUpdate(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return accountdomain.ErrAccountNotFound
		}
		if account.Status == accountdomain.AccountStatusCanceled {
			return accountdomain.ErrAccountCanceled
		}
		if account.Status == accountdomain.AccountStatusRetired {
			return accountdomain.ErrAlreadyRetired
		}
		if at.Before(account.CreatedAt) {
			return accountdomain.ErrInvalidTimestamp
		}

		old := *account

		if err := s.spans.TrackStatus(ctx, tx, req.AccountID, accountdomain.AccountStatusRetired, at); err != nil {
			return err
		}
		if err := s.spans.CloseMrr(ctx, tx, req.AccountID, at); err != nil {
			return err
		}

		account.Status = accountdomain.AccountStatusRetired
		account.MrrValue = decimal.Zero
		if account.RetiredAt == nil {
			account.RetiredAt = &at
		}
		account.UpdatedAt = at

		if err := s.repo.Update(ctx, tx, account); err != nil {
			return err
		}
		if err := s.appendUpdate(ctx, tx, &old, account, at); err != nil {
			return err
		}

		updated = *account
		return nil
	})
	if err != nil {
		metrics.RecordLifecycleError("retire")
		return accountdomain.Account{}, err
	}

	s.log.Info("account retired", zap.Int64("account_id", req.AccountID))
	metrics.RecordLifecycleOp("retire")
	return updated, nil
}

func (s *Service) appendUpdate(ctx context.Context, tx *gorm.DB, old, current *accountdomain.Account, at time.Time) error {
	return s.updates.Append(ctx, tx, &updatelogdomain.AccountUpdate{
		ID:        s.genID.Generate(),
		AccountID: current.ID,
		CreatedAt: at,

		OldStatus: old.Status,
		NewStatus: current.Status,

		OldPlanRef:          old.PlanRef,
		NewPlanRef:          current.PlanRef,
		OldBillingPeriodRef: old.BillingPeriodRef,
		NewBillingPeriodRef: current.BillingPeriodRef,

		OldMrrValue: old.MrrValue,
		NewMrrValue: current.MrrValue,
	})
}

func (s *Service) Exists(ctx context.Context, accountID int64) (bool, error) {
	account, err := s.repo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return false, err
	}
	return account != nil, nil
}

func (s *Service) IsCanceled(ctx context.Context, accountID int64) (bool, error) {
	account, err := s.repo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return false, err
	}
	if account == nil {
		return false, accountdomain.ErrAccountNotFound
	}
	return account.Status == accountdomain.AccountStatusCanceled, nil
}

func (s *Service) IsRetired(ctx context.Context, accountID int64) (bool, error) {
	account, err := s.repo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return false, err
	}
	if account == nil {
		return false, accountdomain.ErrAccountNotFound
	}
	return account.Status == accountdomain.AccountStatusRetired, nil
}

func (s *Service) CountActive(ctx context.Context, at time.Time) (int64, error) {
	return s.repo.CountActive(ctx, s.db, s.resolveAt(at))
}

func (s *Service) CountPaid(ctx context.Context, at time.Time) (int64, error) {
	return s.spans.CountOpenMrrOn(ctx, s.db, s.resolveAt(at))
}
