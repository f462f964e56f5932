package schedulers

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"usage-analytics/internal/aggregators"
	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/shared/metrics"
	"usage-analytics/internal/shared/svcerrors"
	"usage-analytics/internal/shared/ulid"

	"github.com/coder/quartz"
	"github.com/robfig/cron/v3"
)

// Schedules holds one standard five-field cron spec per period type. An
// empty spec disables that job.
type Schedules struct {
	Daily   string
	Weekly  string
	Monthly string
}

func (s Schedules) byPeriod() map[models.PeriodType]string {
	return map[models.PeriodType]string{
		models.PeriodDaily:   s.Daily,
		models.PeriodWeekly:  s.Weekly,
		models.PeriodMonthly: s.Monthly,
	}
}

//go:generate mockgen -source=rollup_scheduler.go -destination=./mocks/rollup_scheduler_mock.go -package=mocks
type RollupScheduler interface {
	// Start registers the cron jobs and starts running them.
	Start(ctx context.Context) error
	// Stop waits for running jobs to finish.
	Stop()
	// Trigger rolls up the period of the given type that contains yesterday.
	Trigger(ctx context.Context, periodType, scope string) (*aggregators.RollupResult, error)
}

type rollupScheduler struct {
	rollupService aggregators.RollupService
	schedules     Schedules
	clock         quartz.Clock
	location      *time.Location

	cron     *cron.Cron
	stopOnce sync.Once

	logger loggers.Logger
}

func NewRollupScheduler(rollupService aggregators.RollupService, schedules Schedules, clock quartz.Clock, location *time.Location, logger loggers.Logger) RollupScheduler {
	return &rollupScheduler{
		rollupService: rollupService,
		schedules:     schedules,
		clock:         clock,
		location:      location,
		cron:          cron.New(cron.WithLocation(location)),
		logger:        logger,
	}
}

func (s *rollupScheduler) Start(ctx context.Context) error {
	for _, periodType := range models.PeriodTypes {
		spec := s.schedules.byPeriod()[periodType]
		if spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(spec, func() { s.runJob(ctx, periodType) }); err != nil {
			return errInvalidSchedule(string(periodType), spec, err)
		}
		s.logger.Info().Str(loggers.FieldJob, string(periodType)).Msgf("scheduled rollup job at %q", spec)
	}
	s.cron.Start()
	return nil
}

func (s *rollupScheduler) Stop() {
	s.stopOnce.Do(func() {
		<-s.cron.Stop().Done()
	})
}

func (s *rollupScheduler) Trigger(ctx context.Context, periodType, scope string) (*aggregators.RollupResult, error) {
	if _, err := models.NewPeriodTypeFromString(periodType); err != nil {
		return nil, errValidationFailed(err.Error(), err)
	}
	return s.rollupService.Rollup(ctx, aggregators.RollupRequest{
		PeriodType: periodType,
		Scope:      scope,
		Date:       models.Yesterday(s.clock.Now(), s.location),
	})
}

// runJob rolls up every scope for the period containing yesterday. A period
// computed earlier is not a failure.
func (s *rollupScheduler) runJob(ctx context.Context, periodType models.PeriodType) {
	job := string(periodType)
	ctx = s.logger.With().
		Str(loggers.FieldJob, job).
		Str(loggers.FieldRequestID, ulid.New()).
		Logger().WithContext(ctx)
	logger := loggers.Ctx(ctx)

	// Handle panic recovery to keep the cron goroutine alive
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("rollup job panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricJobTotal.WithLabelValues(job, svcErr.Code).Inc()
		}
	}()

	for _, scope := range models.Scopes {
		_, err := s.Trigger(ctx, job, string(scope))
		switch {
		case err == nil:
			metricJobTotal.WithLabelValues(job, metrics.ValueNoError).Inc()
		case aggregators.IsAlreadyComputed(err):
			logger.Info().Msgf("skipped %s %s rollup: %s", job, scope, err)
			metricJobTotal.WithLabelValues(job, metrics.ValueNoError).Inc()
		default:
			svcErr, ok := svcerrors.AsServiceError(err)
			if !ok {
				svcErr = svcerrors.NewInternalErrorUndefined(err)
			}
			logger.Error().Err(err).Str(loggers.FieldErrorCode, svcErr.Code).Msgf("%s %s rollup failed", job, scope)
			metricJobTotal.WithLabelValues(job, svcErr.Code).Inc()
		}
	}
}
