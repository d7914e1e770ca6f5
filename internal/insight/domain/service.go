// Package domain declares the read-side contract over committed spans.
// Queries never mutate state.
package domain

import (
	"context"
	"errors"
	"time"

	spandomain "github.com/smallbiznis/insight/internal/span/domain"
	updatelogdomain "github.com/smallbiznis/insight/internal/updatelog/domain"
)

type Service interface {
	// MrrOnDay sums, per account, the latest MRR span covering the day and
	// rounds the total up to whole currency units. Returns 0 when no span
	// qualifies.
	MrrOnDay(ctx context.Context, day time.Time) (int64, error)
	// ArpuOnDay divides the day's MRR by the paid-account count, rounded up.
	// Returns 0 when nobody is paying.
	ArpuOnDay(ctx context.Context, day time.Time) (int64, error)

	StatusTimeline(ctx context.Context, accountID int64) ([]spandomain.StatusSpan, error)
	MrrTimeline(ctx context.Context, accountID int64) ([]spandomain.MrrSpan, error)
	UpdateHistory(ctx context.Context, accountID int64) ([]updatelogdomain.AccountUpdate, error)

	CountActive(ctx context.Context, at time.Time) (int64, error)
	CountPaid(ctx context.Context, at time.Time) (int64, error)
}

var ErrUnsupportedMetric = errors.New("unsupported_metric")
