package recorders

import (
	"context"
	"errors"
	"time"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/shared/metrics"
	"usage-analytics/internal/shared/validators"
	"usage-analytics/internal/stores"

	"github.com/coder/quartz"
)

// SessionWindow is the longest gap between two pings of the same session.
const SessionWindow = 30 * time.Minute

// RecordResult reports whether the ping opened a new session.
type RecordResult struct {
	Created bool
}

//go:generate mockgen -source=session_recorder.go -destination=./mocks/session_recorder_mock.go -package=mocks
type SessionRecorder interface {
	// Record marks the app active for the client-local day and opens or
	// extends its session. tzOffsetMinutes is minutes east of UTC.
	Record(ctx context.Context, appID string, tzOffsetMinutes int) (*RecordResult, error)
}

// ping bounds the app id and the client offset (±14h).
type ping struct {
	AppID           string `json:"aid" validate:"required,max=256"`
	TZOffsetMinutes int    `json:"tz" validate:"min=-840,max=840"`
}

type sessionRecorder struct {
	activityStore stores.ActivityStore
	validate      *validators.Validate
	clock         quartz.Clock
}

func NewSessionRecorder(activityStore stores.ActivityStore, clock quartz.Clock) SessionRecorder {
	return &sessionRecorder{
		activityStore: activityStore,
		validate:      validators.New(),
		clock:         clock,
	}
}

func (r *sessionRecorder) Record(ctx context.Context, appID string, tzOffsetMinutes int) (*RecordResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started recording ping with app ID: %s, tz offset: %d", appID, tzOffsetMinutes)

	in := ping{AppID: appID, TZOffsetMinutes: tzOffsetMinutes}
	if err := r.validate.Struct(in); err != nil {
		svcErr := errValidationFailed(validators.Describe(err), err)
		metricPingTotal.WithLabelValues(outcomeFailed, svcErr.Code).Inc()
		return nil, svcErr
	}

	effective := r.clock.Now().Add(time.Duration(tzOffsetMinutes) * time.Minute).UnixMilli()

	if _, err := r.activityStore.CreateUserActivity(ctx, &models.UserActivity{AppID: appID, Day: effective}); err != nil {
		svcErr := errInternalActivityStoreFailed(err)
		metricPingTotal.WithLabelValues(outcomeFailed, svcErr.Code).Inc()
		return nil, svcErr
	}

	created, err := r.touchSession(ctx, appID, effective)
	if err != nil {
		svcErr := errInternalActivityStoreFailed(err)
		metricPingTotal.WithLabelValues(outcomeFailed, svcErr.Code).Inc()
		return nil, svcErr
	}

	outcome := outcomeContinuedSession
	if created {
		outcome = outcomeNewSession
	}
	metricPingTotal.WithLabelValues(outcome, metrics.ValueNoError).Inc()
	return &RecordResult{Created: created}, nil
}

// touchSession extends the app's open session or starts a new one.
func (r *sessionRecorder) touchSession(ctx context.Context, appID string, effective int64) (bool, error) {
	session, err := r.activityStore.FindLatestSession(ctx, appID, effective-SessionWindow.Milliseconds())
	if err == nil {
		session.LastActive = effective
		return false, r.activityStore.UpdateSession(ctx, session)
	}
	if !errors.Is(err, stores.ErrSessionNotFound) {
		return false, err
	}
	return true, r.activityStore.InsertSession(ctx, &models.Session{
		AppID:      appID,
		Day:        effective,
		LastActive: effective,
	})
}
