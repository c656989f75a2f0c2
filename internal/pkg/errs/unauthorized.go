package errs

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is the sentinel matched with errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// UnauthorizedError reports a caller that may not perform a mutation.
type UnauthorizedError struct {
	Caller string
	Cause  error
}

func NewUnauthorizedError(caller string) *UnauthorizedError {
	return &UnauthorizedError{
		Caller: caller,
	}
}

// NewUnauthorizedErrorWithCause keeps cause in the message.
// errors.Is still matches ErrUnauthorized.
func NewUnauthorizedErrorWithCause(caller string, cause error) *UnauthorizedError {
	return &UnauthorizedError{
		Caller: caller,
		Cause:  cause,
	}
}

func (e *UnauthorizedError) Error() string {
	caller := e.Caller
	if caller == "" {
		caller = "anonymous"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: caller %s (cause: %v)", ErrUnauthorized, caller, e.Cause)
	}
	return fmt.Sprintf("%s: caller %s", ErrUnauthorized, caller)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}
