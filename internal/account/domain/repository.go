package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Account, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id int64) (*Account, error)
	Update(ctx context.Context, db *gorm.DB, account *Account) error
	CountActive(ctx context.Context, db *gorm.DB, at time.Time) (int64, error)
}
