package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/insight/internal/clock"
	goaldomain "github.com/smallbiznis/insight/internal/goal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) goaldomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, db.AutoMigrate(&goaldomain.Goal{}), "failed to migrate database")

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestTrackCreatesThenIncrements(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	goal, err := svc.Track(ctx, goaldomain.TrackRequest{
		AccountID: 1, Name: "invited teammates", Target: 3, Delta: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), goal.Current)
	assert.Equal(t, int64(3), goal.Target)
	assert.False(t, goal.Reached())

	goal, err = svc.Track(ctx, goaldomain.TrackRequest{
		AccountID: 1, Name: "invited teammates", Delta: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), goal.Current)
	assert.Equal(t, int64(3), goal.Target, "omitting the target keeps the existing one")
	assert.True(t, goal.Reached())
}

func TestTrackRejectsInvalidName(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Track(context.Background(), goaldomain.TrackRequest{
		AccountID: 1, Name: "bad:name", Delta: 1,
	})
	assert.ErrorIs(t, err, goaldomain.ErrInvalidName)
}

func TestGetAndList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, "missing")
	assert.ErrorIs(t, err, goaldomain.ErrGoalNotFound)

	_, err = svc.Track(ctx, goaldomain.TrackRequest{AccountID: 1, Name: "b goal", Delta: 1})
	require.NoError(t, err)
	_, err = svc.Track(ctx, goaldomain.TrackRequest{AccountID: 1, Name: "a goal", Delta: 1})
	require.NoError(t, err)
	_, err = svc.Track(ctx, goaldomain.TrackRequest{AccountID: 2, Name: "a goal", Delta: 5})
	require.NoError(t, err)

	goal, err := svc.Get(ctx, 1, "a goal")
	require.NoError(t, err)
	assert.Equal(t, int64(1), goal.Current, "goals are scoped per account")

	goals, err := svc.ListByAccount(ctx, 1)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "a goal", goals[0].Name)
	assert.Equal(t, "b goal", goals[1].Name)
}
