package service

import (
	"context"
	"crypto/rand"

	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/insight/internal/clock"
	eventlogdomain "github.com/smallbiznis/insight/internal/eventlog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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

func NewService(p ServiceParam) eventlogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("eventlog.service"),
		clock: p.Clock,
	}
}

func (s *Service) Append(ctx context.Context, req eventlogdomain.AppendRequest) (eventlogdomain.Event, error) {
	at := req.At
	if at.IsZero() {
		at = s.clock.Now()
	} else {
		at = at.UTC()
	}

	id, err := ulid.New(ulid.Timestamp(at), rand.Reader)
	if err != nil {
		return eventlogdomain.Event{}, err
	}

	event := eventlogdomain.Event{
		ID:        id.String(),
		AccountID: req.AccountID,
		Message:   req.Message,
		CreatedAt: at,
	}
	if req.Metadata != nil {
		event.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return eventlogdomain.Event{}, err
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, accountID int64) ([]eventlogdomain.Event, error) {
	var events []eventlogdomain.Event
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}
