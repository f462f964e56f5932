package messages

import (
	"fmt"

	"usage-analytics/internal/shared/svcerrors"
)

// MessageService errors
const (
	codeValidationFailed = "MSG_1000"
	codeInvalidCursor    = "MSG_1001"

	codeInternalMessageStoreFailed = "MSG_9000"
)

// errValidationFailed returns an error for invalid feed requests or messages.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInvalidCursor returns an error when a page cursor cannot be decoded.
func errInvalidCursor(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidCursor, "invalid cursor", cause)
}

// errInternalMessageStoreFailed returns an error when a message store operation fails.
func errInternalMessageStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalMessageStoreFailed, fmt.Errorf("messageStoreFailed: %w", cause))
}
