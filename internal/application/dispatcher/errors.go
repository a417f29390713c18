package dispatcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExecutable marks an element that does not implement event.Event
	ErrNotExecutable = errors.New("event is not executable")

	// ErrEventPanicked marks a panic recovered from an event
	ErrEventPanicked = errors.New("event panicked")

	// ErrNoFailureHandler is returned by Run when failures are allowed but
	// nobody handles them. It aborts the run.
	ErrNoFailureHandler = errors.New("allow-failures enabled but no failure handler registered")

	// ErrUnknownPolicy is returned by ParsePolicy
	ErrUnknownPolicy = errors.New("unknown dispatch policy")
)

// ExecutionError is the error captured for a single event
type ExecutionError struct {
	// Index is the position of the event in the dispatcher
	Index int
	// Event is the identity of the event
	Event string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("event %d [%s]: %v", e.Index, e.Event, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
