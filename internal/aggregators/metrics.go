package aggregators

import (
	"usage-analytics/internal/shared/metrics"
)

// metricRollupTotal counts rollup attempts per aggregate group.
//
// error_code is empty for a computed period, AGG_1001 when the period was
// already computed (including a lost race on the final write), and the
// internal code otherwise. Validation failures are counted under group="".
var (
	metricRollupTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRollup,
			Name:      "total",
		},
		[]string{"group", metrics.FieldErrorCode},
	)

	metricRollupScannedKeys = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRollup,
			Name:      "scanned_keys",
			Buckets:   metrics.ExponentialBuckets(10, 4, 8),
		},
		[]string{"group"},
	)
)
