package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"
	"usage-analytics/internal/shared/docstores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestActivityStore_CreateUserActivity_OncePerDay(t *testing.T) {
	t.Parallel()

	store := NewActivityStore(newTestDocStore(t), "analytics")
	ctx := context.Background()
	morning := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC).UnixMilli()
	evening := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC).UnixMilli()
	nextDay := time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC).UnixMilli()

	created, err := store.CreateUserActivity(ctx, &models.UserActivity{AppID: "app-1", Day: morning})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateUserActivity(ctx, &models.UserActivity{AppID: "app-1", Day: evening})
	require.NoError(t, err)
	assert.False(t, created, "second ping on the same day must not create a marker")

	created, err = store.CreateUserActivity(ctx, &models.UserActivity{AppID: "app-1", Day: nextDay})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestActivityStore_CreateUserActivity_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDocStore := mocks.NewMockDocStore(ctrl)
	store := NewActivityStore(mockDocStore, "analytics")
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC).UnixMilli()

	mockDocStore.EXPECT().
		Create(ctx, &docstores.Document{
			Key:        docstores.NameKey("analytics", "User", "app-1/20240310"),
			Properties: docstores.Properties{"appId": "app-1", "day": day},
		}).
		Return(docstores.Key{}, errors.New("storage error"))

	created, err := store.CreateUserActivity(ctx, &models.UserActivity{AppID: "app-1", Day: day})
	assert.False(t, created)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user activity")
}

func TestActivityStore_Sessions(t *testing.T) {
	t.Parallel()

	store := NewActivityStore(newTestDocStore(t), "analytics")
	ctx := context.Background()

	_, err := store.FindLatestSession(ctx, "app-1", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	older := &models.Session{AppID: "app-1", Day: 1000, LastActive: 1000}
	require.NoError(t, store.InsertSession(ctx, older))
	newer := &models.Session{AppID: "app-1", Day: 5000, LastActive: 5000}
	require.NoError(t, store.InsertSession(ctx, newer))
	other := &models.Session{AppID: "app-2", Day: 9000, LastActive: 9000}
	require.NoError(t, store.InsertSession(ctx, other))

	assert.NotEmpty(t, older.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	found, err := store.FindLatestSession(ctx, "app-1", 500)
	require.NoError(t, err)
	assert.Equal(t, newer, found)

	_, err = store.FindLatestSession(ctx, "app-1", 6000)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	older.LastActive = 7000
	require.NoError(t, store.UpdateSession(ctx, older))

	found, err = store.FindLatestSession(ctx, "app-1", 6000)
	require.NoError(t, err)
	assert.Equal(t, older.ID, found.ID)
	assert.Equal(t, int64(1000), found.Day)
	assert.Equal(t, int64(7000), found.LastActive)
}

func TestActivityStore_UpdateSession_RequiresID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewActivityStore(mocks.NewMockDocStore(ctrl), "analytics")

	err := store.UpdateSession(context.Background(), &models.Session{AppID: "app-1"})
	assert.Error(t, err)
}
