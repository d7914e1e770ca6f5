package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	spandomain "github.com/smallbiznis/insight/internal/span/domain"
	"gorm.io/gorm"
)

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) spandomain.Repository {
	return &repo{genID: genID}
}

// openSpan is the slice of an open row the close-and-open routine needs.
type openSpan struct {
	id    snowflake.ID
	value string
}

// series abstracts one span table so status and MRR share a single
// temporal-interval routine.
type series interface {
	findOpen(ctx context.Context, db *gorm.DB, accountID int64) (openSpan, bool, error)
	closeSpan(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
	openNew(ctx context.Context, db *gorm.DB, accountID int64, at time.Time) error
	value() string
}

// track closes the open span when its value differs from the new one and
// opens a fresh span at the same instant. Tracking the value already held
// by the open span does nothing.
func track(ctx context.Context, db *gorm.DB, s series, accountID int64, at time.Time) error {
	open, ok, err := s.findOpen(ctx, db, accountID)
	if err != nil {
		return err
	}
	if ok && open.value == s.value() {
		return nil
	}
	if ok {
		if err := s.closeSpan(ctx, db, open.id, at); err != nil {
			return err
		}
	}
	return s.openNew(ctx, db, accountID, at)
}

// closeOpen ends the open span without starting a new one. Used when an
// account stops generating revenue.
func closeOpen(ctx context.Context, db *gorm.DB, s series, accountID int64, at time.Time) error {
	open, ok, err := s.findOpen(ctx, db, accountID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.closeSpan(ctx, db, open.id, at)
}

type statusSeries struct {
	genID  *snowflake.Node
	status accountdomain.AccountStatus
}

func (s statusSeries) value() string { return string(s.status) }

func (s statusSeries) findOpen(ctx context.Context, db *gorm.DB, accountID int64) (openSpan, bool, error) {
	var row spandomain.StatusSpan
	err := db.WithContext(ctx).
		Where("account_id = ? AND ended_at IS NULL", accountID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return openSpan{}, false, nil
		}
		return openSpan{}, false, err
	}
	return openSpan{id: row.ID, value: string(row.Status)}, true, nil
}

func (s statusSeries) closeSpan(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&spandomain.StatusSpan{}).
		Where("id = ?", id).
		Update("ended_at", at).Error
}

func (s statusSeries) openNew(ctx context.Context, db *gorm.DB, accountID int64, at time.Time) error {
	return db.WithContext(ctx).Create(&spandomain.StatusSpan{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		Status:    s.status,
		StartedAt: at,
	}).Error
}

type mrrSeries struct {
	genID *snowflake.Node
	mrr   decimal.Decimal
}

func (s mrrSeries) value() string { return s.mrr.String() }

func (s mrrSeries) findOpen(ctx context.Context, db *gorm.DB, accountID int64) (openSpan, bool, error) {
	var row spandomain.MrrSpan
	err := db.WithContext(ctx).
		Where("account_id = ? AND ended_at IS NULL", accountID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return openSpan{}, false, nil
		}
		return openSpan{}, false, err
	}
	return openSpan{id: row.ID, value: row.MrrValue.String()}, true, nil
}

func (s mrrSeries) closeSpan(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&spandomain.MrrSpan{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ended_at": at,
			"ended_on": spandomain.DayOf(at),
		}).Error
}

func (s mrrSeries) openNew(ctx context.Context, db *gorm.DB, accountID int64, at time.Time) error {
	return db.WithContext(ctx).Create(&spandomain.MrrSpan{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		MrrValue:  s.mrr,
		StartedAt: at,
		StartedOn: spandomain.DayOf(at),
	}).Error
}

func (r *repo) TrackStatus(ctx context.Context, db *gorm.DB, accountID int64, status accountdomain.AccountStatus, at time.Time) error {
	return track(ctx, db, statusSeries{genID: r.genID, status: status}, accountID, at)
}

func (r *repo) TrackMrr(ctx context.Context, db *gorm.DB, accountID int64, value decimal.Decimal, at time.Time) error {
	return track(ctx, db, mrrSeries{genID: r.genID, mrr: value}, accountID, at)
}

func (r *repo) CloseMrr(ctx context.Context, db *gorm.DB, accountID int64, at time.Time) error {
	return closeOpen(ctx, db, mrrSeries{genID: r.genID}, accountID, at)
}

func (r *repo) ListStatusByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]spandomain.StatusSpan, error) {
	var rows []spandomain.StatusSpan
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("started_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) ListMrrByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]spandomain.MrrSpan, error) {
	var rows []spandomain.MrrSpan
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("started_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) ListMrrCovering(ctx context.Context, db *gorm.DB, day time.Time) ([]spandomain.MrrSpan, error) {
	var rows []spandomain.MrrSpan
	err := db.WithContext(ctx).
		Where("started_on <= ? AND (ended_on IS NULL OR ended_on >= ?)", spandomain.DayOf(day), spandomain.DayOf(day)).
		Order("account_id ASC, started_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) CountOpenMrrOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&spandomain.MrrSpan{}).
		Distinct("account_id").
		Where("started_on <= ? AND (ended_on IS NULL OR ended_on >= ?)", spandomain.DayOf(day), spandomain.DayOf(day)).
		Count(&count).Error
	return count, err
}
