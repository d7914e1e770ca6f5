// Package domain contains named per-account properties with full
// point-in-time history: every write appends a record, nothing is updated
// in place.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PropertyRecord is one observation of a named property's value.
type PropertyRecord struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	AccountID  int64     `gorm:"not null;index:idx_properties_account_name"`
	Name       string    `gorm:"type:text;not null;index:idx_properties_account_name"`
	Value      string    `gorm:"type:text;not null"`
	RecordedAt time.Time `gorm:"not null;index"`
}

// TableName sets the database table name.
func (PropertyRecord) TableName() string { return "account_properties" }

type SetRequest struct {
	AccountID int64
	Name      string
	Value     string
	// At defaults to the current clock instant when zero.
	At time.Time
}

type Service interface {
	Set(ctx context.Context, req SetRequest) (PropertyRecord, error)
	// History returns all observations of a property, newest first.
	History(ctx context.Context, accountID int64, name string) ([]PropertyRecord, error)
	// ValueAt returns the value the property held at t: the latest record
	// with RecordedAt <= t.
	ValueAt(ctx context.Context, accountID int64, name string, t time.Time) (string, error)
}

var (
	ErrInvalidName      = errors.New("invalid_property_name")
	ErrPropertyNotFound = errors.New("property_not_found")
)
