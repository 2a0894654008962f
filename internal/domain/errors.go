package domain

import (
	"errors"
	"fmt"
)

// Every error kind here is recoverable: the engine always returns to a valid
// mode and a user-facing reply. There is no fatal category because the engine
// holds no externally persisted dialogue state to corrupt.

var (
	// ErrSessionNotFound is returned by the session registry for unknown or
	// already-evicted session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSubmissionFailed marks a failed call to the external lead endpoint.
	// Collected values are retained and the engine re-prompts for confirmation.
	ErrSubmissionFailed = errors.New("lead submission failed")

	// ErrHostUnreachable marks a directive that could not be delivered to the
	// page host before the ack timeout.
	ErrHostUnreachable = errors.New("page host unreachable")
)

// ValidationError rejects one slot answer. The session index and stored
// values are unchanged; the caller re-prompts the same field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
