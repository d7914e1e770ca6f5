package repository

import (
	"context"

	updatelogdomain "github.com/smallbiznis/insight/internal/updatelog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() updatelogdomain.Repository {
	return &repo{}
}

func (r *repo) Append(ctx context.Context, db *gorm.DB, update *updatelogdomain.AccountUpdate) error {
	return db.WithContext(ctx).Create(update).Error
}

func (r *repo) ListByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]updatelogdomain.AccountUpdate, error) {
	var rows []updatelogdomain.AccountUpdate
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) CountByAccount(ctx context.Context, db *gorm.DB, accountID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&updatelogdomain.AccountUpdate{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}
