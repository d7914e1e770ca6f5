package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/insight/internal/clock"
	propertydomain "github.com/smallbiznis/insight/internal/property/domain"
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

func NewService(p ServiceParam) propertydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("property.service"),
		clock: p.Clock,
	}
}

func (s *Service) Set(ctx context.Context, req propertydomain.SetRequest) (propertydomain.PropertyRecord, error) {
	if !namespace.ValidName(req.Name) {
		return propertydomain.PropertyRecord{}, propertydomain.ErrInvalidName
	}

	at := req.At
	if at.IsZero() {
		at = s.clock.Now()
	} else {
		at = at.UTC()
	}

	record := propertydomain.PropertyRecord{
		ID:         uuid.New(),
		AccountID:  req.AccountID,
		Name:       req.Name,
		Value:      req.Value,
		RecordedAt: at,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return propertydomain.PropertyRecord{}, err
	}
	return record, nil
}

func (s *Service) History(ctx context.Context, accountID int64, name string) ([]propertydomain.PropertyRecord, error) {
	if !namespace.ValidName(name) {
		return nil, propertydomain.ErrInvalidName
	}

	var records []propertydomain.PropertyRecord
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND name = ?", accountID, name).
		Order("recorded_at DESC").
		Find(&records).Error
	return records, err
}

func (s *Service) ValueAt(ctx context.Context, accountID int64, name string, t time.Time) (string, error) {
	if !namespace.ValidName(name) {
		return "", propertydomain.ErrInvalidName
	}

	var record propertydomain.PropertyRecord
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND name = ? AND recorded_at <= ?", accountID, name, t.UTC()).
		Order("recorded_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", propertydomain.ErrPropertyNotFound
		}
		return "", err
	}
	return record.Value, nil
}
