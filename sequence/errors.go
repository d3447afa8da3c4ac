package sequence

import (
	"errors"
	"fmt"
)

// IsUnavailable returns true if err is caused by [UnavailableError].
func IsUnavailable(err error) bool {
	var target interface {
		isUnavailableError()
	}

	return errors.As(err, &target)
}

// UnavailableError is returned by sequence operations when the underlying
// store cannot be reached, typically due to a connection failure or timeout.
//
// It is transient: the operation had no observable effect and may be retried.
// Callers that allocate identifiers for new records must abort the dependent
// record creation rather than substitute a fallback value.
type UnavailableError struct {
	// Sequence is the name of the sequence on which the operation failed.
	Sequence string

	// Cause is the underlying store error.
	Cause error
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf(
		"the %q sequence is unavailable: %s",
		e.Sequence,
		e.Cause,
	)
}

func (e UnavailableError) Unwrap() error {
	return e.Cause
}

func (UnavailableError) isUnavailableError() {}
