package errors

import (
	"errors"
	"fmt"
)

// Error kinds for the frontend proxy layer
var (
	// Configuration errors - required server configuration is missing.
	// Always a 500, never retried.
	ErrConfiguration = errors.New("configuration error")

	// Authorization errors - missing or malformed bearer token.
	ErrAuthorization = errors.New("authorization required")

	// Validation errors - missing or malformed request fields.
	ErrValidation = errors.New("validation error")

	// Backend errors - the aegis backend returned a failure outcome.
	// Status code and message pass through to the caller.
	ErrBackend = errors.New("backend error")

	// Transport errors - the backend could not be reached or its
	// response could not be parsed. Surfaced as a generic 500.
	ErrTransport = errors.New("transport error")

	// Session errors
	ErrSessionAbsent  = errors.New("session absent")
	ErrSessionInvalid = errors.New("session invalid")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
