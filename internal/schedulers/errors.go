package schedulers

import (
	"fmt"

	"usage-analytics/internal/shared/svcerrors"
)

// RollupScheduler errors
const (
	codeValidationFailed = "SCH_1000"
)

// errValidationFailed returns an error for an unknown task.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errInvalidSchedule(job, spec string, cause error) error {
	return fmt.Errorf("invalid %s schedule %q: %w", job, spec, cause)
}
