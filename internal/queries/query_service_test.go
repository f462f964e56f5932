package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"usage-analytics/internal/models"
	"usage-analytics/internal/queries"
	"usage-analytics/internal/shared/caches"
	cachemocks "usage-analytics/internal/shared/caches/mocks"
	"usage-analytics/internal/shared/svcerrors"
	"usage-analytics/internal/stores"
	storemocks "usage-analytics/internal/stores/mocks"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	dailyUsers     = models.NewAggregateGroup(models.PeriodDaily, models.ScopeUsers)
	weeklyUsers    = models.NewAggregateGroup(models.PeriodWeekly, models.ScopeUsers)
	dailySessions  = models.NewAggregateGroup(models.PeriodDaily, models.ScopeSessions)
	march4         = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	endOfMarch10   = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond)
	errStoreFailed = errors.New("store unavailable")
)

type queryFixture struct {
	service     queries.QueryService
	recordStore *storemocks.MockAggregateRecordStore
	cache       *cachemocks.MockCache
}

func newQueryFixture(t *testing.T, ctrl *gomock.Controller) *queryFixture {
	recordStore := storemocks.NewMockAggregateRecordStore(ctrl)
	cache := cachemocks.NewMockCache(ctrl)
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))
	return &queryFixture{
		service:     queries.NewQueryService(recordStore, cache, clock, time.UTC),
		recordStore: recordStore,
		cache:       cache,
	}
}

func requireServiceError(t *testing.T, err error, code, category string) {
	t.Helper()
	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, code, svcErr.Code)
	assert.Equal(t, category, svcErr.Category)
}

func dailyRecord(day time.Time, count int64) *models.AggregateRecord {
	return &models.AggregateRecord{Group: dailyUsers, Key: day.Format(models.DayLayout), Day: day.UnixMilli(), Count: count}
}

func TestQuery_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  queries.QueryRequest
	}{
		{name: "unknown period type", req: queries.QueryRequest{PeriodType: "hourly", Scope: "users", Date: "2024-03-10"}},
		{name: "unknown scope", req: queries.QueryRequest{PeriodType: "daily", Scope: "apps", Date: "2024-03-10"}},
		{name: "invalid date", req: queries.QueryRequest{PeriodType: "daily", Scope: "users", Date: "10/03/2024"}},
		{name: "week in progress", req: queries.QueryRequest{PeriodType: "weekly", Scope: "users", Date: "2024-03-11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fixture := newQueryFixture(t, ctrl)
			result, err := fixture.service.Query(context.Background(), tt.req)
			requireServiceError(t, err, "QRY_1000", "invalid_argument")
			assert.Nil(t, result)
		})
	}
}

func TestQuery_Daily(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()
	key := "query:daily:users:2024-03-10:2024-03-10"

	gomock.InOrder(
		fixture.cache.EXPECT().Get(ctx, key).Return(nil, false, nil),
		fixture.recordStore.EXPECT().
			Get(ctx, dailyUsers, "2024-03-10").
			Return(dailyRecord(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 3), nil),
		fixture.cache.EXPECT().
			Set(ctx, key, []byte(`{"kind":"UsageAnalytics#DailyUsers","startDay":"2024-03-10","endDay":"2024-03-10","result":3}`)).
			Return(nil),
	)

	result, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "daily", Scope: "users", Date: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, &models.RangeResult{
		Kind:     "UsageAnalytics#DailyUsers",
		StartDay: "2024-03-10",
		EndDay:   "2024-03-10",
		Result:   3,
	}, result)
}

func TestQuery_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()

	fixture.cache.EXPECT().
		Get(ctx, "query:daily:users:2024-03-10:2024-03-10").
		Return([]byte(`{"kind":"UsageAnalytics#DailyUsers","startDay":"2024-03-10","endDay":"2024-03-10","result":7}`), true, nil)

	result, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "daily", Scope: "users", Date: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Result)
}

func TestQuery_WeeklyWithItems(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()

	fixture.cache.EXPECT().Get(ctx, "query:weekly:users:2024-03-04:2024-03-10").Return(nil, false, nil)
	fixture.recordStore.EXPECT().
		Get(ctx, weeklyUsers, "2024-03-04").
		Return(&models.AggregateRecord{Group: weeklyUsers, Key: "2024-03-04", Day: march4.UnixMilli(), Count: 5}, nil)
	fixture.recordStore.EXPECT().
		ListByDay(ctx, dailyUsers, march4.UnixMilli(), endOfMarch10.UnixMilli()).
		Return([]*models.AggregateRecord{
			dailyRecord(march4.AddDate(0, 0, 2), 4),
			dailyRecord(march4, 2),
			dailyRecord(march4.AddDate(0, 0, 1), 3),
		}, nil)

	result, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "weekly", Scope: "users", Date: "2024-03-08"})
	require.NoError(t, err)
	assert.Equal(t, &models.RangeResult{
		Kind:     "UsageAnalytics#WeeklyUsers",
		StartDay: "2024-03-04",
		EndDay:   "2024-03-10",
		Result:   5,
		Items: []models.DailyItem{
			{Day: "2024-03-04", Value: 2},
			{Day: "2024-03-05", Value: 3},
			{Day: "2024-03-06", Value: 4},
		},
	}, result)
}

func TestQuery_ErrNotYetComputed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()

	fixture.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, false, nil)
	fixture.recordStore.EXPECT().Get(ctx, dailyUsers, "2024-03-10").Return(nil, stores.ErrAggregateRecordNotFound)

	result, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "daily", Scope: "users", Date: "2024-03-10"})
	requireServiceError(t, err, "QRY_1001", "not_found")
	assert.Nil(t, result)
}

func TestQuery_ErrInternalAggregateRecordStoreFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()

	fixture.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, false, nil)
	fixture.recordStore.EXPECT().Get(ctx, weeklyUsers, "2024-03-04").Return(&models.AggregateRecord{Count: 1}, nil)
	fixture.recordStore.EXPECT().ListByDay(ctx, dailyUsers, gomock.Any(), gomock.Any()).Return(nil, errStoreFailed)

	_, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "weekly", Scope: "users", Date: "2024-03-04"})
	requireServiceError(t, err, "QRY_9000", "internal")
	assert.ErrorIs(t, err, errStoreFailed)
}

func TestQuery_CacheFailureDegradesToMiss(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()

	fixture.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, false, errors.New("cache down"))
	fixture.recordStore.EXPECT().Get(ctx, dailyUsers, "2024-03-10").Return(dailyRecord(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 3), nil)
	fixture.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any()).Return(errors.New("cache down"))

	result, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "daily", Scope: "users", Date: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Result)
}

func TestQueryCustom(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()
	march1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	fixture.cache.EXPECT().Get(ctx, "query:custom:sessions:2024-03-01:2024-03-10").Return(nil, false, nil)
	fixture.recordStore.EXPECT().
		ListByDay(ctx, dailySessions, march1.UnixMilli(), endOfMarch10.UnixMilli()).
		Return([]*models.AggregateRecord{
			{Group: dailySessions, Key: "2024-03-02", Day: march1.AddDate(0, 0, 1).UnixMilli(), Count: 10},
			{Group: dailySessions, Key: "2024-03-01", Day: march1.UnixMilli(), Count: 5},
		}, nil)

	result, err := fixture.service.QueryCustom(ctx, queries.CustomQueryRequest{Scope: "sessions", Start: "2024-03-01", End: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, &models.RangeResult{
		Kind:     "UsageAnalytics#CustomRangeSessions",
		StartDay: "2024-03-01",
		EndDay:   "2024-03-10",
		Result:   15,
		Items: []models.DailyItem{
			{Day: "2024-03-01", Value: 5},
			{Day: "2024-03-02", Value: 10},
		},
	}, result)
}

func TestQueryCustom_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  queries.CustomQueryRequest
	}{
		{name: "unknown scope", req: queries.CustomQueryRequest{Scope: "apps", Start: "2024-03-01", End: "2024-03-02"}},
		{name: "missing start", req: queries.CustomQueryRequest{Scope: "users", End: "2024-03-02"}},
		{name: "reversed", req: queries.CustomQueryRequest{Scope: "users", Start: "2024-03-05", End: "2024-03-02"}},
		{name: "includes today", req: queries.CustomQueryRequest{Scope: "users", Start: "2024-03-05", End: "2024-03-11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fixture := newQueryFixture(t, ctrl)
			_, err := fixture.service.QueryCustom(context.Background(), tt.req)
			requireServiceError(t, err, "QRY_1000", "invalid_argument")
		})
	}
}

func TestQuery_MemoryCacheRoundTrip(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	recordStore := storemocks.NewMockAggregateRecordStore(ctrl)
	cache, err := caches.NewMemoryCache(caches.Config{TTLSeconds: 60, MaxSizeMB: 1})
	require.NoError(t, err)
	defer cache.Close()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))
	service := queries.NewQueryService(recordStore, cache, clock, time.UTC)

	// Only the first query reaches the store.
	recordStore.EXPECT().
		Get(ctx, dailyUsers, "2024-03-10").
		Return(dailyRecord(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 3), nil).
		Times(1)

	req := queries.QueryRequest{PeriodType: "daily", Scope: "users", Date: "2024-03-10"}
	first, err := service.Query(ctx, req)
	require.NoError(t, err)
	second, err := service.Query(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuery_CachesOnlyCompleteBreakdown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newQueryFixture(t, ctrl)
	ctx := context.Background()

	week := make([]*models.AggregateRecord, 0, 7)
	for i := 0; i < 7; i++ {
		week = append(week, dailyRecord(march4.AddDate(0, 0, i), int64(i)))
	}

	fixture.cache.EXPECT().Get(ctx, "query:weekly:users:2024-03-04:2024-03-10").Return(nil, false, nil)
	fixture.recordStore.EXPECT().
		Get(ctx, weeklyUsers, "2024-03-04").
		Return(&models.AggregateRecord{Group: weeklyUsers, Key: "2024-03-04", Day: march4.UnixMilli(), Count: 9}, nil)
	fixture.recordStore.EXPECT().ListByDay(ctx, dailyUsers, march4.UnixMilli(), endOfMarch10.UnixMilli()).Return(week, nil)
	fixture.cache.EXPECT().Set(ctx, "query:weekly:users:2024-03-04:2024-03-10", gomock.Any()).Return(nil)

	result, err := fixture.service.Query(ctx, queries.QueryRequest{PeriodType: "weekly", Scope: "users", Date: "2024-03-04"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 7)
}

func TestQuery_LateDailyRollupIsVisible(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	recordStore := storemocks.NewMockAggregateRecordStore(ctrl)
	cache, err := caches.NewMemoryCache(caches.Config{TTLSeconds: 60, MaxSizeMB: 1})
	require.NoError(t, err)
	defer cache.Close()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))
	service := queries.NewQueryService(recordStore, cache, clock, time.UTC)

	recordStore.EXPECT().
		Get(ctx, weeklyUsers, "2024-03-04").
		Return(&models.AggregateRecord{Group: weeklyUsers, Key: "2024-03-04", Day: march4.UnixMilli(), Count: 5}, nil).
		Times(2)
	gomock.InOrder(
		recordStore.EXPECT().
			ListByDay(ctx, dailyUsers, march4.UnixMilli(), endOfMarch10.UnixMilli()).
			Return([]*models.AggregateRecord{dailyRecord(march4, 2)}, nil),
		recordStore.EXPECT().
			ListByDay(ctx, dailyUsers, march4.UnixMilli(), endOfMarch10.UnixMilli()).
			Return([]*models.AggregateRecord{dailyRecord(march4, 2), dailyRecord(march4.AddDate(0, 0, 1), 3)}, nil),
	)

	req := queries.QueryRequest{PeriodType: "weekly", Scope: "users", Date: "2024-03-05"}
	first, err := service.Query(ctx, req)
	require.NoError(t, err)
	assert.Len(t, first.Items, 1)

	second, err := service.Query(ctx, req)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2, "a daily rollup after the first query shows up")
}
