// Package event defines the unit of work run by the dispatcher and the
// optional accessors an event can expose about itself.
package event

import (
	"context"
	"fmt"
)

// Event is a unit of work executed by the dispatcher
type Event interface {
	// Handle executes the event. Any result beyond the error is a side effect.
	Handle(ctx context.Context) error
}

// Identifier lets an event override its identity
type Identifier interface {
	EventClassName() string
}

// Namer is implemented by events that carry a logical name
type Namer interface {
	// EventName returns the logical name and whether one is set
	EventName() (string, bool)
}

// ClassName returns the identity of v: its EventClassName when it implements
// Identifier, otherwise its runtime type name. v need not be an Event.
func ClassName(v any) string {
	if id, ok := v.(Identifier); ok {
		return id.EventClassName()
	}
	return fmt.Sprintf("%T", v)
}

// NameOf returns the logical name of v if it has one
func NameOf(v any) (string, bool) {
	n, ok := v.(Namer)
	if !ok {
		return "", false
	}
	return n.EventName()
}

// RequireName returns the logical name of v or ErrNameNotSet
func RequireName(v any) (string, error) {
	name, ok := NameOf(v)
	if !ok {
		return "", fmt.Errorf("%w: no event name for event [%s] has been set", ErrNameNotSet, ClassName(v))
	}
	return name, nil
}
