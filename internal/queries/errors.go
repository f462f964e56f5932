package queries

import (
	"fmt"

	"usage-analytics/internal/shared/svcerrors"
)

// QueryService errors
const (
	codeValidationFailed = "QRY_1000"
	codeNotYetComputed   = "QRY_1001"

	codeInternalAggregateRecordStoreFailed = "QRY_9000"
)

// errValidationFailed returns an error for invalid query requests.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errNotYetComputed returns an error when the period has no aggregate record yet.
func errNotYetComputed(group, key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNotYetComputed, fmt.Sprintf("%s %s not yet computed", group, key), cause)
}

// errInternalAggregateRecordStoreFailed returns an error when an aggregate record store operation fails.
func errInternalAggregateRecordStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregateRecordStoreFailed, fmt.Errorf("aggregateRecordStoreFailed: %w", cause))
}
