package recorders

import (
	"usage-analytics/internal/shared/metrics"
)

const (
	outcomeNewSession       = "new_session"
	outcomeContinuedSession = "continued_session"
	outcomeFailed           = "failed"
)

var (
	metricPingTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRecorder,
			Name:      "ping_total",
		},
		[]string{"outcome", metrics.FieldErrorCode},
	)
)
