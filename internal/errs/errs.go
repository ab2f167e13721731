package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Handlers pick HTTP status codes with errors.Is against
// these, so everything raised inside the core must wrap one of them.
var (
	// ErrValidation: malformed or missing required input (bad e-mail
	// domain, empty rejection comment, missing spreadsheet column).
	ErrValidation = errors.New("validation error")
	// ErrAuthorization: manager code mismatch.
	ErrAuthorization = errors.New("authorization error")
	// ErrNotFound: referenced document key absent.
	ErrNotFound = errors.New("not found")
	// ErrTransport: notification delivery failure. Never rolls back a
	// state transition that already reached the store.
	ErrTransport = errors.New("transport error")
	// ErrStore: document store operation failure.
	ErrStore = errors.New("store error")
)

// Wrap adds context and preserves the error chain (errors.Is/As works).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context and preserves the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	args = append(args, err)
	return fmt.Errorf(format+": %w", args...)
}

// Validationf builds a user-facing validation error.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Authorizationf builds a user-facing authorization error.
func Authorizationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrAuthorization)...)
}

// NotFoundf builds a missing-document error.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Store marks an error as coming from the document store.
func Store(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %v: %w", msg, err, ErrStore)
}

// Transport marks an error as a delivery failure.
func Transport(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %v: %w", msg, err, ErrTransport)
}

// Kind returns the sentinel an error wraps, or nil for plain errors.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrAuthorization, ErrNotFound, ErrTransport, ErrStore} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
