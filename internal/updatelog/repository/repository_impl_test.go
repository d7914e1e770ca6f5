package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	updatelogdomain "github.com/smallbiznis/insight/internal/updatelog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, db.AutoMigrate(&updatelogdomain.AccountUpdate{}), "failed to migrate database")

	return db
}

func TestAppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := Provide()
	ctx := context.Background()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	statuses := []accountdomain.AccountStatus{
		accountdomain.AccountStatusFree,
		accountdomain.AccountStatusPaid,
		accountdomain.AccountStatusCanceled,
	}
	prev := accountdomain.AccountStatusTrial
	for i, status := range statuses {
		require.NoError(t, repo.Append(ctx, db, &updatelogdomain.AccountUpdate{
			ID:          node.Generate(),
			AccountID:   1,
			CreatedAt:   base.AddDate(0, 0, i),
			OldStatus:   prev,
			NewStatus:   status,
			OldMrrValue: decimal.Zero,
			NewMrrValue: decimal.Zero,
		}))
		prev = status
	}

	rows, err := repo.ListByAccount(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest first.
	assert.Equal(t, accountdomain.AccountStatusCanceled, rows[0].NewStatus)
	assert.Equal(t, accountdomain.AccountStatusPaid, rows[1].NewStatus)
	assert.Equal(t, accountdomain.AccountStatusFree, rows[2].NewStatus)

	count, err := repo.CountByAccount(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByAccount(ctx, db, 2)
	require.NoError(t, err)
	assert.Zero(t, count)
}
