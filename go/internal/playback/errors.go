package playback

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when an update, register or list targets a
// session id that was never created. Callers should re-run get-or-create.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError rejects a request before any state is mutated. It carries
// the offending field so the HTTP layer can surface field-level detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
