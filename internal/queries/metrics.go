package queries

import (
	"usage-analytics/internal/shared/metrics"
)

const (
	valueCacheHit  = "hit"
	valueCacheMiss = "miss"
)

var (
	metricQueryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "total",
		},
		[]string{"cache", metrics.FieldErrorCode},
	)
)
