package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	"github.com/smallbiznis/insight/internal/cache"
	"github.com/smallbiznis/insight/internal/config"
	insightdomain "github.com/smallbiznis/insight/internal/insight/domain"
	"github.com/smallbiznis/insight/internal/metrics"
	spandomain "github.com/smallbiznis/insight/internal/span/domain"
	updatelogdomain "github.com/smallbiznis/insight/internal/updatelog/domain"
	"github.com/smallbiznis/insight/pkg/namespace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	cfg      *config.AnalyticsConfigHolder
	spans    spandomain.Repository
	updates  updatelogdomain.Repository
	accounts accountdomain.Service

	dayCache cache.Cache[string, int64]
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger

	Cfg      *config.AnalyticsConfigHolder
	Spans    spandomain.Repository
	Updates  updatelogdomain.Repository
	Accounts accountdomain.Service
}

func NewService(p ServiceParam) insightdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("insight.service"),

		cfg:      p.Cfg,
		spans:    p.Spans,
		updates:  p.Updates,
		accounts: p.Accounts,

		dayCache: cache.NewTTLCache[string, int64](),
	}
}

func (s *Service) MrrOnDay(ctx context.Context, day time.Time) (int64, error) {
	metrics.RecordQuery("mrr")

	key := namespace.ForDay("mrr", spandomain.DayOf(day).Format(dayLayout))
	if cached, ok := s.dayCache.Get(key); ok {
		return cached, nil
	}

	rows, err := s.spans.ListMrrCovering(ctx, s.db, day)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	// Rows arrive grouped by account with the latest span first, so the
	// first row seen per account is the one that counts.
	total := decimal.Zero
	var lastAccount int64
	seen := false
	for _, row := range rows {
		if seen && row.AccountID == lastAccount {
			continue
		}
		total = total.Add(row.MrrValue)
		lastAccount = row.AccountID
		seen = true
	}

	result := total.Ceil().IntPart()
	s.dayCache.Set(key, result, s.cfg.Get().QueryCacheTTL)
	return result, nil
}

func (s *Service) ArpuOnDay(ctx context.Context, day time.Time) (int64, error) {
	metrics.RecordQuery("arpu")

	paid, err := s.accounts.CountPaid(ctx, day)
	if err != nil {
		return 0, err
	}
	if paid == 0 {
		return 0, nil
	}

	mrr, err := s.MrrOnDay(ctx, day)
	if err != nil {
		return 0, err
	}

	return decimal.NewFromInt(mrr).
		Div(decimal.NewFromInt(paid)).
		Ceil().
		IntPart(), nil
}

func (s *Service) StatusTimeline(ctx context.Context, accountID int64) ([]spandomain.StatusSpan, error) {
	metrics.RecordQuery("status_timeline")
	return s.spans.ListStatusByAccount(ctx, s.db, accountID)
}

func (s *Service) MrrTimeline(ctx context.Context, accountID int64) ([]spandomain.MrrSpan, error) {
	metrics.RecordQuery("mrr_timeline")
	return s.spans.ListMrrByAccount(ctx, s.db, accountID)
}

func (s *Service) UpdateHistory(ctx context.Context, accountID int64) ([]updatelogdomain.AccountUpdate, error) {
	metrics.RecordQuery("update_history")
	return s.updates.ListByAccount(ctx, s.db, accountID)
}

func (s *Service) CountActive(ctx context.Context, at time.Time) (int64, error) {
	metrics.RecordQuery("count_active")
	return s.accounts.CountActive(ctx, at)
}

func (s *Service) CountPaid(ctx context.Context, at time.Time) (int64, error) {
	metrics.RecordQuery("count_paid")
	return s.accounts.CountPaid(ctx, at)
}
