package messages

import (
	"usage-analytics/internal/shared/metrics"
)

const (
	operationList = "list"
	operationPost = "post"
)

var (
	metricMessageTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubMessages,
			Name:      "total",
		},
		[]string{"operation", metrics.FieldErrorCode},
	)
)
