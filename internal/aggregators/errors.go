package aggregators

import (
	"errors"
	"fmt"

	"usage-analytics/internal/shared/svcerrors"
)

const (
	codeValidationFailed = "AGG_1000"
	codeAlreadyComputed  = "AGG_1001"

	codeInternalRangeScanFailed            = "AGG_9000"
	codeInternalAggregateRecordStoreFailed = "AGG_9001"
	codeInternalStrategyNotImplemented     = "AGG_9002"
)

// errValidationFailed returns an error for invalid rollup requests.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errAlreadyComputed returns an error when the aggregate record for the period already exists.
func errAlreadyComputed(group, key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewAlreadyComputedError(codeAlreadyComputed, fmt.Sprintf("%s %s already computed", group, key), cause)
}

// errInternalRangeScanFailed returns an error when scanning the raw events fails.
func errInternalRangeScanFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRangeScanFailed, fmt.Errorf("rangeScanFailed: %w", cause))
}

// errInternalAggregateRecordStoreFailed returns an error when an aggregate record store operation fails.
func errInternalAggregateRecordStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregateRecordStoreFailed, fmt.Errorf("aggregateRecordStoreFailed: %w", cause))
}

func errInternalStrategyNotImplemented(scope string) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStrategyNotImplemented, fmt.Errorf("strategyNotImplemented: no computation strategy for scope %q", scope))
}

// IsAlreadyComputed reports whether err says the period was computed before.
func IsAlreadyComputed(err error) bool {
	var svcErr *svcerrors.ServiceError
	return errors.As(err, &svcErr) && svcErr.Code == codeAlreadyComputed
}
