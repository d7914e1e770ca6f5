// Package domain contains the free-text per-account event log. Entries use
// ULID identifiers so lexicographic order matches insertion time.
package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	ID        string            `gorm:"primaryKey;type:text"`
	AccountID int64             `gorm:"not null;index"`
	Message   string            `gorm:"type:text;not null"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"not null"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "account_events" }

type AppendRequest struct {
	AccountID int64
	Message   string
	Metadata  map[string]any
	// At defaults to the current clock instant when zero.
	At time.Time
}

type Service interface {
	Append(ctx context.Context, req AppendRequest) (Event, error)
	// List returns an account's events, newest first.
	List(ctx context.Context, accountID int64) ([]Event, error)
}
