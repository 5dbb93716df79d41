package repository

import (
	"errors"

	"github.com/lib/pq"

	"tourbook/shared/constant"
	"tourbook/shared/retry"
)

// ErrPreconditionFailed is returned by a conditional update that matched no row:
// the row is gone or its guarded column no longer holds the expected value.
var ErrPreconditionFailed = errors.New("precondition failed")

// Classify is the store classifier for the retry engine. Constraint violations
// and failed preconditions will fail the same way again. Anything else, such as
// a dropped connection, is worth retrying.
func Classify(err error) retry.Class {
	if errors.Is(err, ErrPreconditionFailed) || errors.Is(err, errRequiredFilter) {
		return retry.Terminal
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeUniqueViolation,
			constant.PqErrorCodeFkViolation,
			constant.PqErrorCodeCheckViolation,
			constant.PqErrorCodeNotNull:
			return retry.Terminal
		}

		// class 22 is data exception, 42 is syntax or access rule violation
		if class := pqErr.Code.Class(); class == "22" || class == "42" {
			return retry.Terminal
		}
	}

	return retry.Retryable
}
