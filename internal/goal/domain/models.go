// Package domain contains named per-account goal counters. Goals carry no
// temporal invariants; they are plain upsert-and-read counters.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Goal is a named counter moving toward a target, e.g. "invited teammates".
type Goal struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	AccountID int64     `gorm:"not null;index:idx_goals_account_name,unique"`
	Name      string    `gorm:"type:text;not null;index:idx_goals_account_name,unique"`
	Target    int64     `gorm:"not null"`
	Current   int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName sets the database table name.
func (Goal) TableName() string { return "goals" }

// Reached reports whether the counter met its target.
func (g Goal) Reached() bool {
	return g.Target > 0 && g.Current >= g.Target
}

type TrackRequest struct {
	AccountID int64
	Name      string
	Target    int64
	Delta     int64
}

type Service interface {
	// Track creates the goal on first use and increments it afterwards.
	Track(ctx context.Context, req TrackRequest) (Goal, error)
	Get(ctx context.Context, accountID int64, name string) (Goal, error)
	ListByAccount(ctx context.Context, accountID int64) ([]Goal, error)
}

var (
	ErrInvalidName  = errors.New("invalid_goal_name")
	ErrGoalNotFound = errors.New("goal_not_found")
)
