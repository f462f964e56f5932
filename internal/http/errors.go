package http

import (
	"usage-analytics/internal/shared/svcerrors"
)

// Transport errors
const (
	codeInvalidBody = "HTTP_1000"
	codeRateLimited = "HTTP_1001"
)

// errInvalidBody returns an error when the request body cannot be decoded.
func errInvalidBody(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidBody, msg, cause)
}

// errRateLimited returns an error when a client exceeds the request rate.
func errRateLimited() *svcerrors.ServiceError {
	return svcerrors.NewRateLimitedError(codeRateLimited, "too many requests, retry later")
}
