package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/insight/internal/clock"
	propertydomain "github.com/smallbiznis/insight/internal/property/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) propertydomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, db.AutoMigrate(&propertydomain.PropertyRecord{}), "failed to migrate database")

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func at(day int) time.Time {
	return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC)
}

func TestSetAppendsHistory(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, propertydomain.SetRequest{AccountID: 1, Name: "team size", Value: "3", At: at(1)})
	require.NoError(t, err)
	_, err = svc.Set(ctx, propertydomain.SetRequest{AccountID: 1, Name: "team size", Value: "5", At: at(3)})
	require.NoError(t, err)

	history, err := svc.History(ctx, 1, "team size")
	require.NoError(t, err)
	require.Len(t, history, 2, "every write appends, nothing is overwritten")
	assert.Equal(t, "5", history[0].Value)
	assert.Equal(t, "3", history[1].Value)
}

func TestValueAt(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, propertydomain.SetRequest{AccountID: 1, Name: "team size", Value: "3", At: at(1)})
	require.NoError(t, err)
	_, err = svc.Set(ctx, propertydomain.SetRequest{AccountID: 1, Name: "team size", Value: "5", At: at(3)})
	require.NoError(t, err)

	value, err := svc.ValueAt(ctx, 1, "team size", at(2))
	require.NoError(t, err)
	assert.Equal(t, "3", value)

	value, err = svc.ValueAt(ctx, 1, "team size", at(3))
	require.NoError(t, err)
	assert.Equal(t, "5", value)

	_, err = svc.ValueAt(ctx, 1, "team size", at(1).Add(-time.Hour))
	assert.ErrorIs(t, err, propertydomain.ErrPropertyNotFound)
}

func TestNameValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, propertydomain.SetRequest{AccountID: 1, Name: "bad/name", Value: "x"})
	assert.ErrorIs(t, err, propertydomain.ErrInvalidName)

	_, err = svc.History(ctx, 1, "bad/name")
	assert.ErrorIs(t, err, propertydomain.ErrInvalidName)

	_, err = svc.ValueAt(ctx, 1, "bad/name", at(1))
	assert.ErrorIs(t, err, propertydomain.ErrInvalidName)
}

func TestSetDefaultsToClock(t *testing.T) {
	svc := setupService(t)

	record, err := svc.Set(context.Background(), propertydomain.SetRequest{
		AccountID: 1, Name: "plan seats", Value: "10",
	})
	require.NoError(t, err)
	assert.True(t, record.RecordedAt.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
