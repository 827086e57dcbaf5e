package domain

import "fmt"

// ValidationError wraps a sentinel error with detail identifying which
// precondition failed, so callers can correct the input and resubmit.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid builds a ValidationError around a sentinel error.
func Invalid(err error, format string, args ...any) error {
	return &ValidationError{
		Err:     err,
		Details: fmt.Sprintf(format, args...),
	}
}
