package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smallbiznis/insight/internal/clock"
	goaldomain "github.com/smallbiznis/insight/internal/goal/domain"
	"github.com/smallbiznis/insight/pkg/namespace"
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

func NewService(p ServiceParam) goaldomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("goal.service"),
		clock: p.Clock,
	}
}

func (s *Service) Track(ctx context.Context, req goaldomain.TrackRequest) (goaldomain.Goal, error) {
	if !namespace.ValidName(req.Name) {
		return goaldomain.Goal{}, goaldomain.ErrInvalidName
	}

	now := s.clock.Now()

	var goal goaldomain.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("account_id = ? AND name = ?", req.AccountID, req.Name).
			First(&goal).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			goal = goaldomain.Goal{
				ID:        uuid.New(),
				AccountID: req.AccountID,
				Name:      req.Name,
				Target:    req.Target,
				Current:   req.Delta,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.Create(&goal).Error
		}

		goal.Current += req.Delta
		if req.Target > 0 {
			goal.Target = req.Target
		}
		goal.UpdatedAt = now
		return tx.Save(&goal).Error
	})
	if err != nil {
		return goaldomain.Goal{}, err
	}

	return goal, nil
}

func (s *Service) Get(ctx context.Context, accountID int64, name string) (goaldomain.Goal, error) {
	if !namespace.ValidName(name) {
		return goaldomain.Goal{}, goaldomain.ErrInvalidName
	}

	var goal goaldomain.Goal
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND name = ?", accountID, name).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return goaldomain.Goal{}, goaldomain.ErrGoalNotFound
		}
		return goaldomain.Goal{}, err
	}
	return goal, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]goaldomain.Goal, error) {
	var goals []goaldomain.Goal
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&goals).Error
	return goals, err
}
