package aggregators

import (
	"context"
	"errors"
	"time"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/shared/metrics"
	"usage-analytics/internal/shared/svcerrors"
	"usage-analytics/internal/stores"

	"github.com/coder/quartz"
)

// RollupRequest asks for the aggregate of the complete period containing Date.
type RollupRequest struct {
	PeriodType string
	Scope      string
	Date       string
}

type RollupResult struct {
	Group models.AggregateGroup
	Key   string
	Start time.Time
	End   time.Time
	Count int64
}

//go:generate mockgen -source=rollup_service.go -destination=./mocks/rollup_service_mock.go -package=mocks
type RollupService interface {
	// Rollup computes and stores the period's aggregate exactly once. A period
	// that already has a record fails with an already_computed error.
	Rollup(ctx context.Context, req RollupRequest) (*RollupResult, error)
}

type rollupService struct {
	aggregateRecordStore stores.AggregateRecordStore
	rangeScanner         stores.RangeScanner
	strategies           map[models.Scope]ComputationStrategy
	clock                quartz.Clock
	location             *time.Location
}

func NewRollupService(
	aggregateRecordStore stores.AggregateRecordStore,
	rangeScanner stores.RangeScanner,
	strategies map[models.Scope]ComputationStrategy,
	clock quartz.Clock,
	location *time.Location,
) RollupService {
	return &rollupService{
		aggregateRecordStore: aggregateRecordStore,
		rangeScanner:         rangeScanner,
		strategies:           strategies,
		clock:                clock,
		location:             location,
	}
}

func (s *rollupService) Rollup(ctx context.Context, req RollupRequest) (*RollupResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started rollup with period type: %s, scope: %s, date: %s", req.PeriodType, req.Scope, req.Date)

	group, period, svcErr := s.resolve(req)
	if svcErr != nil {
		metricRollupTotal.WithLabelValues("", svcErr.Code).Inc()
		return nil, svcErr
	}

	result, svcErr := s.rollup(ctx, group, period)
	if svcErr != nil {
		metricRollupTotal.WithLabelValues(group.Name(), svcErr.Code).Inc()
		return nil, svcErr
	}
	metricRollupTotal.WithLabelValues(group.Name(), metrics.ValueNoError).Inc()

	logger.Info().
		Str(loggers.FieldGroup, group.Name()).
		Str(loggers.FieldPeriodKey, result.Key).
		Int64(loggers.FieldCount, result.Count).
		Msg("rollup computed")
	return result, nil
}

func (s *rollupService) resolve(req RollupRequest) (models.AggregateGroup, *models.PeriodRange, *svcerrors.ServiceError) {
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

func (s *rollupService) rollup(ctx context.Context, group models.AggregateGroup, period *models.PeriodRange) (*RollupResult, *svcerrors.ServiceError) {
	key := period.Key()

	_, err := s.aggregateRecordStore.Get(ctx, group, key)
	if err == nil {
		return nil, errAlreadyComputed(group.Name(), key, nil)
	}
	if !errors.Is(err, stores.ErrAggregateRecordNotFound) {
		return nil, errInternalAggregateRecordStoreFailed(err)
	}

	strategy, ok := s.strategies[group.Scope]
	if !ok {
		return nil, errInternalStrategyNotImplemented(string(group.Scope))
	}

	keys, err := s.rangeScanner.ScanKeys(ctx, strategy.Kind(), models.FieldDay, period.StartMillis(), period.EndMillis())
	if err != nil {
		return nil, errInternalRangeScanFailed(err)
	}
	metricRollupScannedKeys.WithLabelValues(group.Name()).Observe(float64(len(keys)))
	count := strategy.Compute(keys)

	record := &models.AggregateRecord{
		Group: group,
		Key:   key,
		Day:   period.StartMillis(),
		Count: count,
	}
	if err := s.aggregateRecordStore.Create(ctx, record); err != nil {
		// A concurrent rollup of the same period wrote first.
		if errors.Is(err, stores.ErrAggregateRecordAlreadyExist) {
			return nil, errAlreadyComputed(group.Name(), key, err)
		}
		return nil, errInternalAggregateRecordStoreFailed(err)
	}

	return &RollupResult{
		Group: group,
		Key:   key,
		Start: period.Start,
		End:   period.End,
		Count: count,
	}, nil
}
