package queries

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/caches"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/shared/metrics"
	"usage-analytics/internal/shared/svcerrors"
	"usage-analytics/internal/stores"

	"github.com/coder/quartz"
	"github.com/samber/lo"
)

const customPeriod = "custom"

type QueryRequest struct {
	PeriodType string
	Scope      string
	Date       string
}

// CustomQueryRequest covers the inclusive day range [Start, End].
type CustomQueryRequest struct {
	Scope string
	Start string
	End   string
}

//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	// Query returns the aggregate of the complete period containing Date.
	// Weekly and monthly results carry the per-day breakdown.
	Query(ctx context.Context, req QueryRequest) (*models.RangeResult, error)
	// QueryCustom sums the daily aggregates of an arbitrary day range.
	QueryCustom(ctx context.Context, req CustomQueryRequest) (*models.RangeResult, error)
}

type queryService struct {
	aggregateRecordStore stores.AggregateRecordStore
	cache                caches.Cache
	clock                quartz.Clock
	location             *time.Location
}

func NewQueryService(aggregateRecordStore stores.AggregateRecordStore, cache caches.Cache, clock quartz.Clock, location *time.Location) QueryService {
	return &queryService{
		aggregateRecordStore: aggregateRecordStore,
		cache:                cache,
		clock:                clock,
		location:             location,
	}
}

func (s *queryService) Query(ctx context.Context, req QueryRequest) (*models.RangeResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started query with period type: %s, scope: %s, date: %s", req.PeriodType, req.Scope, req.Date)

	group, period, svcErr := s.resolve(req)
	if svcErr != nil {
		metricQueryTotal.WithLabelValues(valueCacheMiss, svcErr.Code).Inc()
		return nil, svcErr
	}

	key := cacheKey(string(group.Period), group.Scope, period)
	return s.cached(ctx, key, period, func() (*models.RangeResult, *svcerrors.ServiceError) {
		return s.query(ctx, group, period)
	})
}

func (s *queryService) QueryCustom(ctx context.Context, req CustomQueryRequest) (*models.RangeResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started custom query with scope: %s, start: %s, end: %s", req.Scope, req.Start, req.End)

	scope, err := models.NewScopeFromString(req.Scope)
	if err != nil {
		svcErr := errValidationFailed(err.Error(), err)
		metricQueryTotal.WithLabelValues(valueCacheMiss, svcErr.Code).Inc()
		return nil, svcErr
	}
	period, err := models.NormalizeDayRange(req.Start, req.End, s.clock.Now(), s.location)
	if err != nil {
		svcErr := errValidationFailed(err.Error(), err)
		metricQueryTotal.WithLabelValues(valueCacheMiss, svcErr.Code).Inc()
		return nil, svcErr
	}

	key := cacheKey(customPeriod, scope, period)
	return s.cached(ctx, key, period, func() (*models.RangeResult, *svcerrors.ServiceError) {
		items, svcErr := s.dailyItems(ctx, models.NewAggregateGroup(models.PeriodDaily, scope), period)
		if svcErr != nil {
			return nil, svcErr
		}
		return &models.RangeResult{
			Kind:     models.CustomRangeKind(scope),
			StartDay: period.StartDay(),
			EndDay:   period.EndDay(),
			Result:   lo.SumBy(items, func(item models.DailyItem) int64 { return item.Value }),
			Items:    items,
		}, nil
	})
}

func (s *queryService) resolve(req QueryRequest) (models.AggregateGroup, *models.PeriodRange, *svcerrors.ServiceError) {
	periodType, err := models.NewPeriodTypeFromString(req.PeriodType)
	if err != nil {
		return models.AggregateGroup{}, nil, errValidationFailed(err.Error(), err)
	}
	scope, err := models.NewScopeFromString(req.Scope)
	if err != nil {
		return models.AggregateGroup{}, nil, errValidationFailed(err.Error(), err)
	}
	period, err := models.NormalizePeriod(req.Date, periodType, s.clock.Now(), s.location)
	if err != nil {
		return models.AggregateGroup{}, nil, errValidationFailed(err.Error(), err)
	}
	return models.NewAggregateGroup(periodType, scope), period, nil
}

func (s *queryService) query(ctx context.Context, group models.AggregateGroup, period *models.PeriodRange) (*models.RangeResult, *svcerrors.ServiceError) {
	key := period.Key()
	record, err := s.aggregateRecordStore.Get(ctx, group, key)
	if err != nil {
		if errors.Is(err, stores.ErrAggregateRecordNotFound) {
			return nil, errNotYetComputed(group.Name(), key, err)
		}
		return nil, errInternalAggregateRecordStoreFailed(err)
	}

	result := &models.RangeResult{
		Kind:     models.ResultKind(group),
		StartDay: period.StartDay(),
		EndDay:   period.EndDay(),
		Result:   record.Count,
	}
	if group.Period == models.PeriodDaily {
		return result, nil
	}

	items, svcErr := s.dailyItems(ctx, group.Daily(), period)
	if svcErr != nil {
		return nil, svcErr
	}
	result.Items = items
	return result, nil
}

// dailyItems lists the computed daily aggregates inside period, oldest first.
// Days that were never rolled up are absent.
func (s *queryService) dailyItems(ctx context.Context, daily models.AggregateGroup, period *models.PeriodRange) ([]models.DailyItem, *svcerrors.ServiceError) {
	records, err := s.aggregateRecordStore.ListByDay(ctx, daily, period.StartMillis(), period.EndMillis())
	if err != nil {
		return nil, errInternalAggregateRecordStoreFailed(err)
	}
	slices.SortFunc(records, func(a, b *models.AggregateRecord) int {
		return cmp.Compare(a.Day, b.Day)
	})
	return lo.Map(records, func(record *models.AggregateRecord, _ int) models.DailyItem {
		return models.DailyItem{Day: record.Key, Value: record.Count}
	}), nil
}

// cached serves key from the cache, or computes and stores it. Only final
// results are stored. Cache failures are logged and degrade to a miss.
func (s *queryService) cached(ctx context.Context, key string, period *models.PeriodRange, compute func() (*models.RangeResult, *svcerrors.ServiceError)) (*models.RangeResult, error) {
	logger := loggers.Ctx(ctx)

	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Msgf("failed to read cache key %s", key)
	}
	if ok {
		var result models.RangeResult
		if err := json.Unmarshal(value, &result); err == nil {
			metricQueryTotal.WithLabelValues(valueCacheHit, metrics.ValueNoError).Inc()
			return &result, nil
		}
		logger.Warn().Msgf("dropping undecodable cache entry %s", key)
	}

	result, svcErr := compute()
	if svcErr != nil {
		metricQueryTotal.WithLabelValues(valueCacheMiss, svcErr.Code).Inc()
		return nil, svcErr
	}
	metricQueryTotal.WithLabelValues(valueCacheMiss, metrics.ValueNoError).Inc()

	if !isFinal(result, period) {
		return result, nil
	}
	encoded, err := json.Marshal(result)
	if err == nil {
		err = s.cache.Set(ctx, key, encoded)
	}
	if err != nil {
		logger.Warn().Err(err).Msgf("failed to write cache key %s", key)
	}
	return result, nil
}

// isFinal reports whether result can no longer change. A breakdown with days
// still missing grows as later daily rollups land.
func isFinal(result *models.RangeResult, period *models.PeriodRange) bool {
	return result.Items == nil || len(result.Items) == period.Days()
}

func cacheKey(period string, scope models.Scope, r *models.PeriodRange) string {
	return fmt.Sprintf("query:%s:%s:%s:%s", period, scope, r.StartDay(), r.EndDay())
}
