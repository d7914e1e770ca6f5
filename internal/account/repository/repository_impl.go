package repository

import (
	"context"
	"errors"
	"time"

	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() accountdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *accountdomain.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*accountdomain.Account, error) {
	var account accountdomain.Account
	err := db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByIDForUpdate reads the account row under a row-level lock so that
// concurrent lifecycle transitions on the same account serialize. SQLite
// rejects FOR UPDATE and serializes writers on its own, so the clause is
// skipped there.
func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id int64) (*accountdomain.Account, error) {
	stmt := db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account accountdomain.Account
	err := stmt.
		Where("id = ?", id).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, account *accountdomain.Account) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *repo) CountActive(ctx context.Context, db *gorm.DB, at time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("status <> ? AND created_at <= ?", accountdomain.AccountStatusCanceled, at).
		Count(&count).Error
	return count, err
}
