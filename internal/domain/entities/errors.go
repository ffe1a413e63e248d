package entities

import (
	"errors"
	"fmt"
)

// Domain failure values. Messages are deliberately minimal: authentication
// errors never reveal which field was wrong, and not-found carries no
// internal detail.
var (
	// ErrBadCredentials is returned when token issuance fails, for an
	// unknown user or a wrong password alike.
	ErrBadCredentials = errors.New("incorrect username or password")

	// ErrInvalidToken is returned for any token verification failure:
	// bad signature, malformed structure, or expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoRecords is returned when a query's filtered result is empty.
	ErrNoRecords = errors.New("no records found for the given parameters")

	// ErrInvalidCriteria is returned when the time range is inverted.
	ErrInvalidCriteria = errors.New("start must not be after end")
)

// BackendError wraps an adapter-level connectivity or query failure.
// It is never retried by this core.
type BackendError struct {
	Driver string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Driver, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
