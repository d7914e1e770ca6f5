package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/insight/internal/clock"
	conversiondomain "github.com/smallbiznis/insight/internal/conversion/domain"
	spandomain "github.com/smallbiznis/insight/internal/span/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

func NewService(p ServiceParam) conversiondomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("conversion.service"),
		clock: p.Clock,
	}
}

func (s *Service) RecordSignup(ctx context.Context, day time.Time) (conversiondomain.Rollup, error) {
	return s.bump(ctx, day, 1, 0)
}

func (s *Service) RecordConversion(ctx context.Context, day time.Time) (conversiondomain.Rollup, error) {
	return s.bump(ctx, day, 0, 1)
}

func (s *Service) bump(ctx context.Context, day time.Time, signups, conversions int64) (conversiondomain.Rollup, error) {
	if day.IsZero() {
		day = s.clock.Now()
	}
	day = spandomain.DayOf(day)
	now := s.clock.Now()

	var rollup conversiondomain.Rollup
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("day = ?", day).First(&rollup).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			rollup = conversiondomain.Rollup{Day: day}
		}

		rollup.Signups += signups
		rollup.Conversions += conversions
		rollup.Rate = computeRate(rollup.Signups, rollup.Conversions)
		rollup.UpdatedAt = now

		return tx.Save(&rollup).Error
	})
	if err != nil {
		return conversiondomain.Rollup{}, err
	}
	return rollup, nil
}

func (s *Service) RateOn(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var rollup conversiondomain.Rollup
	err := s.db.WithContext(ctx).
		Where("day = ?", spandomain.DayOf(day)).
		First(&rollup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, conversiondomain.ErrNoRollupData
		}
		return decimal.Zero, err
	}
	return rollup.Rate, nil
}

func (s *Service) MonthlyRate(ctx context.Context, year int, month time.Month) (decimal.Decimal, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var rollups []conversiondomain.Rollup
	err := s.db.WithContext(ctx).
		Where("day >= ? AND day < ?", from, to).
		Find(&rollups).Error
	if err != nil {
		return decimal.Zero, err
	}
	if len(rollups) == 0 {
		return decimal.Zero, conversiondomain.ErrNoRollupData
	}

	var signups, conversions int64
	for _, r := range rollups {
		signups += r.Signups
		conversions += r.Conversions
	}
	return computeRate(signups, conversions), nil
}

func computeRate(signups, conversions int64) decimal.Decimal {
	if signups == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(conversions).
		DivRound(decimal.NewFromInt(signups), 4)
}
