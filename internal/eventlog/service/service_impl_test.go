package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/insight/internal/clock"
	eventlogdomain "github.com/smallbiznis/insight/internal/eventlog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) eventlogdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, db.AutoMigrate(&eventlogdomain.Event{}), "failed to migrate database")

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestAppendAndList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first, err := svc.Append(ctx, eventlogdomain.AppendRequest{
		AccountID: 1, Message: "signed up", At: base,
	})
	require.NoError(t, err)

	second, err := svc.Append(ctx, eventlogdomain.AppendRequest{
		AccountID: 1, Message: "upgraded",
		Metadata: map[string]any{"plan": "plan_m"},
		At:       base.Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Append(ctx, eventlogdomain.AppendRequest{
		AccountID: 2, Message: "signed up", At: base,
	})
	require.NoError(t, err)

	_, err = ulid.Parse(first.ID)
	require.NoError(t, err)

	events, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "upgraded", events[0].Message)
	assert.Equal(t, "plan_m", events[0].Metadata["plan"])
	assert.Equal(t, "signed up", events[1].Message)

	// ULIDs embed the timestamp, so id order is insertion order.
	assert.Greater(t, second.ID, first.ID)
}

func TestAppendDefaultsToClock(t *testing.T) {
	svc := setupService(t)

	event, err := svc.Append(context.Background(), eventlogdomain.AppendRequest{
		AccountID: 1, Message: "signed up",
	})
	require.NoError(t, err)
	assert.True(t, event.CreatedAt.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
