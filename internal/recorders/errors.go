package recorders

import (
	"fmt"

	"usage-analytics/internal/shared/svcerrors"
)

// SessionRecorder errors
const (
	codeValidationFailed = "REC_1000"

	codeInternalActivityStoreFailed = "REC_9000"
)

// errValidationFailed returns an error for invalid pings.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInternalActivityStoreFailed returns an error when an activity store operation fails.
func errInternalActivityStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalActivityStoreFailed, fmt.Errorf("activityStoreFailed: %w", cause))
}
