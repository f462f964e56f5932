package schedulers

import (
	"usage-analytics/internal/shared/metrics"
)

var (
	metricJobTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "job_total",
		},
		[]string{"job", metrics.FieldErrorCode},
	)
)
